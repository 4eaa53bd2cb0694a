// Package app собирает генератор тестовых заказов из конфигурации.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/ordergen/internal/health"
	"github.com/vladislavdragonenkov/ordergen/internal/metrics"
	"github.com/vladislavdragonenkov/ordergen/internal/service/checkout"
	"github.com/vladislavdragonenkov/ordergen/internal/service/inventory"
	"github.com/vladislavdragonenkov/ordergen/internal/service/ordergen"
	"github.com/vladislavdragonenkov/ordergen/internal/service/quote"
	"github.com/vladislavdragonenkov/ordergen/internal/version"
)

// App собирает конвейер, хранилище и необязательный HTTP-листенер метрик.
type App struct {
	cfg      Config
	deps     *Dependencies
	pipeline *ordergen.Pipeline
	progress *progressReporter
	health   *healthcheck.Handler
	logger   *log.Entry
}

// New инициализирует зависимости и конвейер. Вывод итераций пишется в out.
func New(ctx context.Context, cfg Config, out io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := log.WithField("component", "app")

	var rnd *rand.Rand
	if cfg.Seed != 0 {
		rnd = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	}

	deps, err := initRuntimeDependencies(ctx, cfg, rnd, logger)
	if err != nil {
		return nil, err
	}

	progress := &progressReporter{inner: ordergen.NewConsoleReporter(out)}
	pipeline, err := ordergen.NewPipeline(ordergen.Dependencies{
		Customers:     deps.Customers,
		Products:      deps.Products,
		Configurables: deps.Configurables,
		Stores:        deps.Stores,
		Carts:         deps.Carts,
		Orders:        deps.Orders,
		CartService:   quote.NewService(inventory.NewChecker(), cfg.TaxRate, logger.WithField("component", "quote")),
		Submitter:     checkout.NewSubmitter(deps.Carts, deps.Orders, logger.WithField("component", "checkout")),
		Publisher:     deps.Publisher(),
		Metrics:       metrics.NewPipelineMetrics(),
		Reporter:      progress,
		Logger:        logger.WithField("component", "ordergen"),
		Rand:          rnd,
		MaxDaysAgo:    cfg.MaxDaysAgo,
	})
	if err != nil {
		return nil, multierr.Append(err, deps.Close())
	}

	health := healthcheck.NewHandler(version.GetVersion())
	health.RegisterChecker("batch", healthcheck.FuncChecker(progress.check))
	if deps.Store != nil {
		health.RegisterChecker("postgres", healthcheck.NewPingChecker("postgres", 2*time.Second, deps.Store.Ping))
	}

	return &App{
		cfg:      cfg,
		deps:     deps,
		pipeline: pipeline,
		progress: progress,
		health:   health,
		logger:   logger,
	}, nil
}

// Run выполняет партию из count заказов. Если задан MetricsAddr, на время партии
// поднимается /metrics, /healthz, /livez, /readyz.
func (a *App) Run(ctx context.Context, count int, opts ordergen.Options) ordergen.Summary {
	var metricsSrv *http.Server
	if a.cfg.MetricsAddr != "" {
		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		metricsSrv = startMetricsServer(srvCtx, a.cfg.MetricsAddr, a.logger, a.health)
	}

	a.logger.WithFields(log.Fields{
		"count":    count,
		"customer": opts.CustomerID,
		"product":  opts.Product,
		"store":    opts.StoreID,
		"shipping": opts.Shipping,
		"storage":  a.cfg.StorageDriver,
	}).Info("starting batch")

	summary := a.pipeline.RunContext(ctx, count, opts)

	if metricsSrv != nil && a.cfg.MetricsLinger > 0 {
		a.logger.WithField("linger", a.cfg.MetricsLinger).Info("keeping metrics listener up")
		select {
		case <-ctx.Done():
		case <-time.After(a.cfg.MetricsLinger):
		}
	}
	shutdownHTTP(metricsSrv, a.logger)
	return summary
}

// Close освобождает ресурсы приложения.
// CustomerOrderCount возвращает число заказов клиента в хранилище, включая созданные ранее.
func (a *App) CustomerOrderCount(customerID string) (int, error) {
	orders, err := a.deps.Orders.ListByCustomer(customerID, 0)
	if err != nil {
		return 0, fmt.Errorf("list orders of customer %s: %w", customerID, err)
	}
	return len(orders), nil
}

func (a *App) Close() error {
	if a == nil {
		return nil
	}
	return a.deps.Close()
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}

// progressReporter считает исходы итераций для /healthz и передаёт вывод дальше.
type progressReporter struct {
	inner   ordergen.Reporter
	created atomic.Int64
	failed  atomic.Int64
}

func (p *progressReporter) Start(i int) { p.inner.Start(i) }
func (p *progressReporter) Customer(c domain.Customer) { p.inner.Customer(c) }
func (p *progressReporter) Product(pr domain.Product) { p.inner.Product(pr) }
func (p *progressReporter) CreatedAt(date time.Time) { p.inner.CreatedAt(date) }

func (p *progressReporter) Created(order domain.Order) {
	p.created.Add(1)
	p.inner.Created(order)
}

func (p *progressReporter) Failed(err error) {
	p.failed.Add(1)
	p.inner.Failed(err)
}

// check сообщает unhealthy, если были только ошибки, и degraded при смешанном исходе.
func (p *progressReporter) check() healthcheck.Check {
	created, failed := p.created.Load(), p.failed.Load()
	check := healthcheck.Check{
		Name:    "batch",
		Status:  healthcheck.StatusHealthy,
		Message: fmt.Sprintf("%d created, %d failed", created, failed),
	}
	switch {
	case failed > 0 && created == 0:
		check.Status = healthcheck.StatusUnhealthy
	case failed > 0:
		check.Status = healthcheck.StatusDegraded
	}
	return check
}
