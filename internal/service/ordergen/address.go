package ordergen

import "github.com/vladislavdragonenkov/ordergen/internal/domain"

// PlaceholderAddress возвращает фиксированный адрес для клиента без сохранённых адресов.
// Это тестовая заглушка, а не правило выбора адреса по умолчанию.
func PlaceholderAddress(customer domain.Customer) domain.Address {
	return domain.Address{
		Firstname: customer.Firstname,
		Lastname:  customer.Lastname,
		Street:    []string{"123 Abc Road"},
		City:      "Los Angeles",
		RegionID:  "12",
		Region:    "California",
		Postcode:  "91201",
		CountryID: "US",
		Telephone: "888 888 8888",
	}
}

// BillingAddressFor: адрес оплаты по умолчанию, затем доставки, затем заглушка.
func BillingAddressFor(customer domain.Customer) domain.Address {
	if addr, ok := customer.DefaultBillingAddress(); ok {
		return addr
	}
	if addr, ok := customer.DefaultShippingAddress(); ok {
		return addr
	}
	return PlaceholderAddress(customer)
}

// ShippingAddressFor: адрес доставки по умолчанию, затем оплаты, затем заглушка.
func ShippingAddressFor(customer domain.Customer) domain.Address {
	if addr, ok := customer.DefaultShippingAddress(); ok {
		return addr
	}
	if addr, ok := customer.DefaultBillingAddress(); ok {
		return addr
	}
	return PlaceholderAddress(customer)
}
