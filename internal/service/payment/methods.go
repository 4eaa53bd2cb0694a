// Package payment хранит реестр офлайн-способов оплаты. Генератор никогда не обращается
// к платёжному шлюзу: заказ лишь помечается выбранным методом.
package payment

import (
	"fmt"
	"sort"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// Коды офлайн-методов оплаты.
const (
	MethodCheckMoneyOrder = "checkmo"
	MethodBankTransfer    = "banktransfer"
	MethodCashOnDelivery  = "cashondelivery"
	MethodFree            = "free"
)

// Method описывает способ оплаты.
type Method struct {
	Code    string
	Title   string
	Offline bool
}

var methods = map[string]Method{
	MethodCheckMoneyOrder: {Code: MethodCheckMoneyOrder, Title: "Check / Money order", Offline: true},
	MethodBankTransfer:    {Code: MethodBankTransfer, Title: "Bank Transfer Payment", Offline: true},
	MethodCashOnDelivery:  {Code: MethodCashOnDelivery, Title: "Cash On Delivery", Offline: true},
	MethodFree:            {Code: MethodFree, Title: "No Payment Information Required", Offline: true},
}

// Lookup возвращает метод по коду или ошибку вида ErrInvalidInput.
func Lookup(code string) (Method, error) {
	m, ok := methods[code]
	if !ok {
		return Method{}, fmt.Errorf("payment method %q: %w", code, domain.ErrInvalidInput)
	}
	return m, nil
}

// Codes возвращает отсортированный список известных кодов.
func Codes() []string {
	codes := make([]string, 0, len(methods))
	for code := range methods {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
