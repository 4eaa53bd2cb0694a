package domain

// CartService: бизнес-операции над корзиной, которые конвейер не реализует сам.
type CartService interface {
	// AddProduct добавляет товар в корзину. Отказ корзины (нет на складе, товар
	// недоступен) возвращается в AddItemResult.Rejection, а не ошибкой.
	AddProduct(cart *Cart, product Product, qty int32) (AddItemResult, error)
	// CheckItem проверяет полноту данных позиции после добавления.
	CheckItem(cart *Cart, item *CartItem) error
	// SetPaymentMethod выбирает способ оплаты (только офлайн-методы).
	SetPaymentMethod(cart *Cart, code string) error
	// CollectShippingRates считает стоимость выбранного метода доставки.
	CollectShippingRates(cart *Cart) error
	// CollectTotals пересчитывает итоги корзины.
	CollectTotals(cart *Cart) error
}

// OrderSubmitter превращает заполненную корзину в заказ.
type OrderSubmitter interface {
	Submit(cart *Cart) (Order, error)
}

// StockChecker проверяет доступность товара на складе.
type StockChecker interface {
	// Check возвращает ошибку, обёрнутую в ErrInventoryUnavailable, с причиной для покупателя.
	Check(product Product, qty int32) error
}

// OrderEventPublisher публикует событие о созданном заказе во внешний брокер.
type OrderEventPublisher interface {
	PublishOrderCreated(order Order) error
}
