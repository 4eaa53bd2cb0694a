package domain

// CustomerRepository описывает внешний репозиторий клиентов.
type CustomerRepository interface {
	// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
	Get(id string) (Customer, error)
	// Random возвращает одного непредсказуемо выбранного клиента или ErrCustomerNotFound,
	// если клиентов нет.
	Random() (Customer, error)
}

// ProductRepository описывает каталог товаров.
type ProductRepository interface {
	// Get возвращает товар по идентификатору.
	Get(id string) (Product, error)
	// GetBySKU возвращает товар с точным совпадением SKU или ErrProductNotFound.
	GetBySKU(sku string) (Product, error)
	// Random возвращает один непредсказуемо выбранный товар. Непустой skuPattern
	// работает как SQL LIKE (% и _: маски). ErrProductNotFound, если совпадений нет.
	Random(skuPattern string) (Product, error)
}

// ConfigurableRepository отвечает за связи configurable-родитель → дочерний товар.
type ConfigurableRepository interface {
	ParentIDsByChild(childID string) ([]string, error)
}

// StoreRepository описывает иерархию website → group → store.
type StoreRepository interface {
	Get(id string) (Store, error)
	// DefaultStoreID возвращает store по умолчанию для website по умолчанию.
	DefaultStoreID() (string, error)
}

// CartRepository хранит корзины (quotes).
type CartRepository interface {
	Save(cart Cart) error
	Get(id string) (Cart, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// NextIncrementID выдаёт следующий человекочитаемый номер заказа.
	NextIncrementID() (string, error)
	// Create сохраняет новый заказ. Возвращает ошибку, если запись с таким ID уже существует.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы клиента с опциональным ограничением на количество.
	ListByCustomer(customerID string, limit int) ([]Order, error)
	// Save применяет обновления к заказу с учётом optimistic locking.
	Save(order Order) error
}
