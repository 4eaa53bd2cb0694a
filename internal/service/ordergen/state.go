package ordergen

import (
	"time"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// Stage: состояние одной итерации конвейера.
type Stage string

const (
	StageIdle              Stage = "idle"
	StageResolvingCustomer Stage = "resolving_customer"
	StageResolvingProduct  Stage = "resolving_product"
	StageAssemblingCart    Stage = "assembling_cart"
	StageCommitting        Stage = "committing"
	StageDone              Stage = "done"
	StageFailed            Stage = "failed"
)

// Terminal сообщает, что итерация завершена.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// State: сущности, принадлежащие одной итерации. Создаётся заново для каждой итерации
// и очищается по её завершении независимо от результата.
type State struct {
	Stage     Stage
	Customer  *domain.Customer
	Product   *domain.Product
	Cart      *domain.Cart
	CreatedAt time.Time
}

// NewState возвращает пустое состояние в StageIdle.
func NewState() *State {
	return &State{Stage: StageIdle}
}

// Reset отбрасывает все закэшированные сущности итерации.
func (s *State) Reset() {
	s.Customer = nil
	s.Product = nil
	s.Cart = nil
	s.CreatedAt = time.Time{}
}
