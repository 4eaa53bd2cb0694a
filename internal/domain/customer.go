package domain

import "strings"

// Address: адрес в корзине или заказе.
type Address struct {
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Street    []string `json:"street"`
	City      string   `json:"city"`
	RegionID  string   `json:"region_id"`
	Region    string   `json:"region"`
	Postcode  string   `json:"postcode"`
	CountryID string   `json:"country_id"`
	Telephone string   `json:"telephone"`
}

// IsZero сообщает, что адрес не заполнен.
func (a Address) IsZero() bool {
	return a.Firstname == "" && a.Lastname == "" && len(a.Street) == 0 &&
		a.City == "" && a.Postcode == "" && a.CountryID == ""
}

// Clone возвращает копию адреса с собственным срезом улиц.
func (a Address) Clone() Address {
	out := a
	if a.Street != nil {
		out.Street = append([]string(nil), a.Street...)
	}
	return out
}

// CustomerAddress: сохранённый адрес клиента.
type CustomerAddress struct {
	ID string `json:"id"`
	Address
}

// Customer описывает покупателя из внешнего репозитория.
type Customer struct {
	ID                string            `json:"id"`
	Firstname         string            `json:"firstname"`
	Lastname          string            `json:"lastname"`
	Email             string            `json:"email"`
	GroupID           int               `json:"group_id"`
	Addresses         []CustomerAddress `json:"addresses,omitempty"`
	DefaultBillingID  string            `json:"default_billing,omitempty"`
	DefaultShippingID string            `json:"default_shipping,omitempty"`
}

// Name возвращает полное имя клиента.
func (c Customer) Name() string {
	return strings.TrimSpace(c.Firstname + " " + c.Lastname)
}

// DefaultBillingAddress возвращает адрес оплаты по умолчанию, если он сохранён.
func (c Customer) DefaultBillingAddress() (Address, bool) {
	return c.addressByID(c.DefaultBillingID)
}

// DefaultShippingAddress возвращает адрес доставки по умолчанию, если он сохранён.
func (c Customer) DefaultShippingAddress() (Address, bool) {
	return c.addressByID(c.DefaultShippingID)
}

func (c Customer) addressByID(id string) (Address, bool) {
	if id == "" {
		return Address{}, false
	}
	for _, addr := range c.Addresses {
		if addr.ID == id {
			return addr.Address.Clone(), true
		}
	}
	return Address{}, false
}
