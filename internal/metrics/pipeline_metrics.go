// Package metrics содержит Prometheus-метрики генератора заказов.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты итерации для метки result.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// PipelineMetrics содержит метрики конвейера генерации заказов.
type PipelineMetrics struct {
	iterations *prometheus.CounterVec
	failures   *prometheus.CounterVec

	iterationDuration prometheus.Histogram
	stepDuration      *prometheus.HistogramVec
	backdatedDays     prometheus.Histogram

	// Размер текущей партии (сколько итераций запрошено).
	batchSize prometheus.Gauge
}

// NewPipelineMetrics регистрирует метрики в prometheus.DefaultRegisterer.
func NewPipelineMetrics() *PipelineMetrics {
	return NewPipelineMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewPipelineMetricsWithRegisterer регистрирует метрики в указанном реестре.
// Повторная регистрация возвращает уже существующие коллекторы.
func NewPipelineMetricsWithRegisterer(registerer prometheus.Registerer) *PipelineMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PipelineMetrics{
		iterations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "ordergen_iterations_total",
			Help: "Total number of order generation iterations by result",
		}, []string{"result"}),
		failures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "ordergen_iteration_failures_total",
			Help: "Total number of failed iterations by error kind",
		}, []string{"kind"}),
		iterationDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "ordergen_iteration_duration_seconds",
			Help:    "Duration of a single order generation iteration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		stepDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "ordergen_step_duration_seconds",
			Help:    "Duration of individual pipeline steps in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"step"}),
		backdatedDays: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "ordergen_orders_backdated_days",
			Help:    "How many days into the past generated orders were backdated",
			Buckets: []float64{7, 30, 90, 180, 365, 545, 730},
		}),
		batchSize: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "ordergen_batch_size",
			Help: "Number of iterations requested by the current batch",
		}),
	}
}

// RecordBatchStarted фиксирует размер запущенной партии.
func (m *PipelineMetrics) RecordBatchStarted(count int) {
	m.batchSize.Set(float64(count))
}

// RecordIterationSucceeded увеличивает счётчик успешных итераций.
func (m *PipelineMetrics) RecordIterationSucceeded() {
	m.iterations.WithLabelValues(ResultSuccess).Inc()
}

// RecordIterationFailed увеличивает счётчики неудачных итераций с разбивкой по виду ошибки.
func (m *PipelineMetrics) RecordIterationFailed(kind string) {
	m.iterations.WithLabelValues(ResultFailure).Inc()
	m.failures.WithLabelValues(kind).Inc()
}

// RecordIterationDuration записывает время выполнения итерации.
func (m *PipelineMetrics) RecordIterationDuration(duration time.Duration) {
	m.iterationDuration.Observe(duration.Seconds())
}

// RecordStepDuration записывает время выполнения шага конвейера.
func (m *PipelineMetrics) RecordStepDuration(step string, duration time.Duration) {
	m.stepDuration.WithLabelValues(step).Observe(duration.Seconds())
}

// RecordBackdatedDays записывает, на сколько дней назад сдвинута дата заказа.
func (m *PipelineMetrics) RecordBackdatedDays(days int) {
	m.backdatedDays.Observe(float64(days))
}
