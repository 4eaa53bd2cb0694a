package domain

import (
	"errors"
	"fmt"
)

// Виды ошибок, на которые реагирует конвейер генерации заказов.
var (
	// ErrNotFound: запрошенная или случайно выбранная сущность не существует.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput: входной параметр некорректен или нарушает бизнес-ограничение.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIneligibleProduct: товар нельзя заказать отдельно (дочерний товар configurable).
	ErrIneligibleProduct = errors.New("ineligible product")
)

var (
	// ErrCustomerNotFound возвращается репозиторием клиентов.
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	// ErrProductNotFound возвращается каталогом, если подходящих товаров нет.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	// ErrStoreNotFound возвращается, если магазин (store view) не найден.
	ErrStoreNotFound = fmt.Errorf("store %w", ErrNotFound)
	// ErrCartNotFound возвращается, если корзина не найдена.
	ErrCartNotFound = fmt.Errorf("cart %w", ErrNotFound)
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
	// ErrOrderVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrOrderVersionConflict = errors.New("order version conflict")
	// ErrInventoryUnavailable: товара нет на складе или запрошенное количество недоступно.
	ErrInventoryUnavailable = errors.New("inventory unavailable")
	// ErrCartIncomplete: корзина не заполнена до конца (нет адреса, доставки, оплаты или позиций).
	ErrCartIncomplete = errors.New("cart is incomplete")
	// ErrCartConverted: корзина уже превращена в заказ и не может использоваться повторно.
	ErrCartConverted = errors.New("cart already converted to order")
	// ErrBackdateFailed: заказ создан, но перезаписать дату создания не удалось.
	ErrBackdateFailed = errors.New("order backdating failed")
)

// KindError несёт сообщение для пользователя и вид ошибки для errors.Is.
type KindError struct {
	Kind error
	Msg  string
}

func (e *KindError) Error() string {
	return e.Msg
}

func (e *KindError) Unwrap() error {
	return e.Kind
}

// NotFoundError создаёт ошибку вида ErrNotFound с заданным сообщением.
func NotFoundError(format string, args ...any) error {
	return &KindError{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// InvalidInputError создаёт ошибку вида ErrInvalidInput с заданным сообщением.
func InvalidInputError(format string, args ...any) error {
	return &KindError{Kind: ErrInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// IneligibleProductError создаёт ошибку вида ErrIneligibleProduct с заданным сообщением.
func IneligibleProductError(format string, args ...any) error {
	return &KindError{Kind: ErrIneligibleProduct, Msg: fmt.Sprintf(format, args...)}
}

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}

// ErrorKind возвращает короткое имя вида ошибки для логов и метрик.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIneligibleProduct):
		return "ineligible_product"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrBackdateFailed):
		return "backdate_failed"
	default:
		return "other"
	}
}
