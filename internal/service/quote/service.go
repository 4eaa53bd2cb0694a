// Package quote реализует бизнес-операции над корзиной: добавление товара, проверку позиции,
// расчёт доставки и итогов, выбор способа оплаты.
package quote

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	"github.com/vladislavdragonenkov/ordergen/internal/service/payment"
)

// Сообщения отказа корзины.
const (
	RejectNotAvailable  = "Product that you are trying to add is not available."
	RejectSpecifyOption = "Please specify the product's option(s)."
)

// Service: реализация domain.CartService.
type Service struct {
	stock    domain.StockChecker
	taxRate  decimal.Decimal
	validate *validator.Validate
	now      func() time.Time
	logger   *log.Entry
}

// NewService создаёт сервис корзины. taxRate: доля (0.0825 = 8.25%).
func NewService(stock domain.StockChecker, taxRate decimal.Decimal, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "quote")
	}
	return &Service{
		stock:    stock,
		taxRate:  taxRate,
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// AddProduct добавляет товар в корзину. Повторное добавление того же товара увеличивает qty.
func (s *Service) AddProduct(cart *domain.Cart, product domain.Product, qty int32) (domain.AddItemResult, error) {
	if cart == nil {
		return domain.AddItemResult{}, errors.New("cart is nil")
	}
	if !cart.IsActive {
		return domain.AddItemResult{}, domain.ErrCartConverted
	}
	if qty <= 0 {
		qty = 1
	}

	if !product.IsEnabled() {
		return s.reject(cart, product, RejectNotAvailable), nil
	}
	if product.Type == domain.ProductTypeConfigurable {
		return s.reject(cart, product, RejectSpecifyOption), nil
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			idx = i
			break
		}
	}
	total := qty
	if idx >= 0 {
		total += cart.Items[idx].Qty
	}

	if s.stock != nil {
		if err := s.stock.Check(product, total); err != nil {
			var kindErr *domain.KindError
			if errors.As(err, &kindErr) && errors.Is(err, domain.ErrInventoryUnavailable) {
				return s.reject(cart, product, kindErr.Msg), nil
			}
			return domain.AddItemResult{}, fmt.Errorf("check stock for %s: %w", product.SKU, err)
		}
	}

	if idx < 0 {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			Price:     product.Price,
			Virtual:   !product.IsShippable(),
		})
		idx = len(cart.Items) - 1
	}
	item := &cart.Items[idx]
	item.Qty = total
	item.RowTotal = item.Price.Mul(decimal.NewFromInt32(item.Qty))
	cart.UpdatedAt = s.now()

	return domain.AddItemResult{Item: item}, nil
}

func (s *Service) reject(cart *domain.Cart, product domain.Product, reason string) domain.AddItemResult {
	s.logger.WithFields(log.Fields{
		"cart_id":    cart.ID,
		"product_id": product.ID,
		"reason":     reason,
	}).Debug("cart rejected product")
	return domain.AddItemResult{Rejection: reason}
}

// CheckItem проверяет полноту данных позиции.
func (s *Service) CheckItem(cart *domain.Cart, item *domain.CartItem) error {
	if item == nil {
		return domain.InvalidInputError("Cart item is missing.")
	}
	if err := s.validate.Struct(item); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			parts := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				parts = append(parts, fe.Field()+" "+validationMessage(fe))
			}
			return domain.InvalidInputError("Cart item %s is incomplete: %s", item.SKU, strings.Join(parts, ", "))
		}
		return fmt.Errorf("validate cart item: %w", err)
	}
	if cart != nil && cart.ID != "" {
		for i := range cart.Items {
			if cart.Items[i].ID == item.ID {
				return nil
			}
		}
		return domain.InvalidInputError("Cart item %s does not belong to cart %s", item.ID, cart.ID)
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	}
	return "is invalid"
}

// SetPaymentMethod выбирает офлайн-метод оплаты.
func (s *Service) SetPaymentMethod(cart *domain.Cart, code string) error {
	method, err := payment.Lookup(code)
	if err != nil {
		return err
	}
	if !method.Offline {
		return domain.InvalidInputError("Payment method %s requires a payment gateway.", code)
	}
	cart.PaymentMethod = method.Code
	cart.UpdatedAt = s.now()
	return nil
}

// CollectShippingRates считает стоимость выбранного метода доставки.
// Корзина только из виртуальных товаров доставки не требует.
func (s *Service) CollectShippingRates(cart *domain.Cart) error {
	if !cart.CollectShippingRates {
		return nil
	}

	var shippableQty int32
	subtotal := decimal.Zero
	for _, item := range cart.Items {
		subtotal = subtotal.Add(item.RowTotal)
		if !item.Virtual {
			shippableQty += item.Qty
		}
	}

	if cart.ShippingMethod == "" {
		return fmt.Errorf("%w: shipping method", domain.ErrCartIncomplete)
	}
	if shippableQty > 0 && cart.ShippingAddress.IsZero() {
		return fmt.Errorf("%w: shipping address", domain.ErrCartIncomplete)
	}

	var amount decimal.Decimal
	switch cart.ShippingMethod {
	case domain.ShippingFlatRate:
		amount = flatRatePerItem.Mul(decimal.NewFromInt32(shippableQty))
	case domain.ShippingTableRate:
		amount = tableRate(subtotal)
		if shippableQty == 0 {
			amount = decimal.Zero
		}
	default:
		return domain.InvalidInputError("Shipping method is not supported.")
	}

	cart.ShippingAmount = amount
	cart.UpdatedAt = s.now()
	return nil
}

var flatRatePerItem = decimal.RequireFromString("5.00")

// tableRate: стоимость доставки по порогам subtotal.
func tableRate(subtotal decimal.Decimal) decimal.Decimal {
	switch {
	case subtotal.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return decimal.Zero
	case subtotal.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return decimal.RequireFromString("7.50")
	default:
		return decimal.RequireFromString("12.50")
	}
}

// CollectTotals пересчитывает subtotal, налог и итог корзины.
func (s *Service) CollectTotals(cart *domain.Cart) error {
	subtotal := decimal.Zero
	for i := range cart.Items {
		item := &cart.Items[i]
		item.RowTotal = item.Price.Mul(decimal.NewFromInt32(item.Qty))
		subtotal = subtotal.Add(item.RowTotal)
	}
	tax := subtotal.Mul(s.taxRate).Round(2)

	cart.Totals = domain.Totals{
		Subtotal:   subtotal,
		Shipping:   cart.ShippingAmount,
		Tax:        tax,
		GrandTotal: subtotal.Add(cart.ShippingAmount).Add(tax),
	}
	cart.UpdatedAt = s.now()

	s.logger.WithFields(log.Fields{
		"cart_id":     cart.ID,
		"subtotal":    subtotal.StringFixed(2),
		"grand_total": cart.Totals.GrandTotal.StringFixed(2),
	}).Debug("cart totals collected")
	return nil
}

var _ domain.CartService = (*Service)(nil)
