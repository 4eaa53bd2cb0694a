package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, label string) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := vec.WithLabelValues(label).Write(m); err != nil {
		t.Fatalf("failed to read metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	m := &dto.Metric{}
	if err := h.Write(m); err != nil {
		t.Fatalf("failed to read metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestNewPipelineMetrics(t *testing.T) {
	metrics := NewPipelineMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics.iterations == nil || metrics.failures == nil {
		t.Fatal("counters should not be nil")
	}
	if metrics.iterationDuration == nil || metrics.stepDuration == nil || metrics.backdatedDays == nil {
		t.Fatal("histograms should not be nil")
	}
	if metrics.batchSize == nil {
		t.Fatal("batch size gauge should not be nil")
	}
}

func TestNewPipelineMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewPipelineMetricsWithRegisterer(reg)
	second := NewPipelineMetricsWithRegisterer(reg)

	first.RecordIterationSucceeded()
	second.RecordIterationSucceeded()

	if got := counterValue(t, first.iterations, ResultSuccess); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestRecordIterations(t *testing.T) {
	metrics := NewPipelineMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordIterationSucceeded()
	metrics.RecordIterationFailed("not_found")
	metrics.RecordIterationFailed("not_found")
	metrics.RecordIterationFailed("invalid_input")

	if got := counterValue(t, metrics.iterations, ResultSuccess); got != 1 {
		t.Errorf("expected 1 success, got %v", got)
	}
	if got := counterValue(t, metrics.iterations, ResultFailure); got != 3 {
		t.Errorf("expected 3 failures, got %v", got)
	}
	if got := counterValue(t, metrics.failures, "not_found"); got != 2 {
		t.Errorf("expected 2 not_found failures, got %v", got)
	}
	if got := counterValue(t, metrics.failures, "invalid_input"); got != 1 {
		t.Errorf("expected 1 invalid_input failure, got %v", got)
	}
}

func TestRecordDurations(t *testing.T) {
	metrics := NewPipelineMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordIterationDuration(150 * time.Millisecond)
	metrics.RecordStepDuration("commit", 20*time.Millisecond)
	metrics.RecordStepDuration("commit", 30*time.Millisecond)
	metrics.RecordBackdatedDays(400)
	metrics.RecordBatchStarted(5)

	if got := histogramCount(t, metrics.iterationDuration); got != 1 {
		t.Errorf("expected 1 iteration sample, got %d", got)
	}
	step, err := metrics.stepDuration.GetMetricWithLabelValues("commit")
	if err != nil {
		t.Fatalf("step metric: %v", err)
	}
	m := &dto.Metric{}
	if err := step.(prometheus.Histogram).Write(m); err != nil {
		t.Fatalf("failed to read metric: %v", err)
	}
	if got := m.GetHistogram().GetSampleCount(); got != 2 {
		t.Errorf("expected 2 step samples, got %d", got)
	}
	if got := histogramCount(t, metrics.backdatedDays); got != 1 {
		t.Errorf("expected 1 backdate sample, got %d", got)
	}

	gauge := &dto.Metric{}
	if err := metrics.batchSize.Write(gauge); err != nil {
		t.Fatalf("failed to read gauge: %v", err)
	}
	if gauge.GetGauge().GetValue() != 5 {
		t.Errorf("expected batch size 5, got %v", gauge.GetGauge().GetValue())
	}
}
