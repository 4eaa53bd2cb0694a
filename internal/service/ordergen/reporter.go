package ordergen

import (
	"fmt"
	"io"
	"time"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
)

// Reporter выводит пользователю ход каждой итерации.
type Reporter interface {
	Start(index int)
	Customer(customer domain.Customer)
	Product(product domain.Product)
	CreatedAt(date time.Time)
	Created(order domain.Order)
	Failed(err error)
}

// ConsoleReporter печатает строки в формате команды: "N. Using customer: ...".
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter создаёт репортер поверх w (обычно os.Stdout).
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

func (r *ConsoleReporter) Start(index int) {
	fmt.Fprintf(r.w, "%d. ", index)
}

func (r *ConsoleReporter) Customer(customer domain.Customer) {
	fmt.Fprintf(r.w, "Using customer: %s (%s)\n", customer.Name(), customer.Email)
}

func (r *ConsoleReporter) Product(product domain.Product) {
	fmt.Fprintf(r.w, "Using product: %s (%s)\n", product.Name, product.ID)
}

func (r *ConsoleReporter) CreatedAt(date time.Time) {
	fmt.Fprintf(r.w, "Using created_at date: %s\n", date.Format(DateLayout))
}

func (r *ConsoleReporter) Created(order domain.Order) {
	fmt.Fprintf(r.w, "Created order: %s\n", order.IncrementID)
}

// Failed печатает сообщение ошибки и её вид в квадратных скобках.
func (r *ConsoleReporter) Failed(err error) {
	fmt.Fprintf(r.w, "Problem creating order: %s [%s]\n", err, domain.ErrorKind(err))
}

// nopReporter ничего не выводит.
type nopReporter struct{}

func (nopReporter) Start(int)                {}
func (nopReporter) Customer(domain.Customer) {}
func (nopReporter) Product(domain.Product)   {}
func (nopReporter) CreatedAt(time.Time)      {}
func (nopReporter) Created(domain.Order)     {}
func (nopReporter) Failed(error)             {}
