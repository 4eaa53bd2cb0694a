package domain

// Website: верхний уровень иерархии продаж.
type Website struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	IsDefault      bool   `json:"is_default"`
	DefaultGroupID string `json:"default_group_id"`
}

// StoreGroup: группа магазинов внутри website.
type StoreGroup struct {
	ID             string `json:"id"`
	WebsiteID      string `json:"website_id"`
	DefaultStoreID string `json:"default_store_id"`
}

// Store: канал продаж (store view), к которому привязывается корзина.
type Store struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	WebsiteID string `json:"website_id"`
	GroupID   string `json:"group_id"`
	IsActive  bool   `json:"is_active"`
}
