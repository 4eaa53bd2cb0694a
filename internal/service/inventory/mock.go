package inventory

import "github.com/vladislavdragonenkov/ordergen/internal/domain"

// MockChecker: конфигурируемая заглушка StockChecker для тестов.
type MockChecker struct {
	CheckErr error

	CheckCalls int
}

// NewMockChecker возвращает mock с успешным сценарием по умолчанию.
func NewMockChecker() *MockChecker {
	return &MockChecker{}
}

// Check возвращает заранее настроенную ошибку и считает вызовы.
func (m *MockChecker) Check(product domain.Product, qty int32) error {
	m.CheckCalls++
	return m.CheckErr
}

var _ domain.StockChecker = (*MockChecker)(nil)
