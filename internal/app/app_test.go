package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vladislavdragonenkov/ordergen/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/ordergen/internal/health"
	"github.com/vladislavdragonenkov/ordergen/internal/service/ordergen"
)

func TestApp_RunOnDemoCatalog(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1

	var out bytes.Buffer
	a, err := New(context.Background(), cfg, &out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	summary := a.Run(context.Background(), 2, ordergen.Options{CustomerID: "1", Product: "ABC-123"})
	if summary.Created != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary %+v\n%s", summary, out.String())
	}

	text := out.String()
	for _, want := range []string{
		"1. Using customer: Veronica Costello (roni_cost@example.com)",
		"Using product: Joust Duffle Bag (1)",
		"Created order: 100000001",
		"2. Using customer:",
		"Created order: 100000002",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output misses %q:\n%s", want, text)
		}
	}

	if check := a.progress.check(); check.Status != healthcheck.StatusHealthy {
		t.Errorf("expected healthy batch check, got %+v", check)
	}
	if n, err := a.CustomerOrderCount("1"); err != nil || n != 2 {
		t.Errorf("expected 2 orders of customer 1, got %d (%v)", n, err)
	}
	if n, err := a.CustomerOrderCount("2"); err != nil || n != 0 {
		t.Errorf("expected no orders of customer 2, got %d (%v)", n, err)
	}
}

func TestApp_RunWithMetricsListener(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsAddr = "127.0.0.1:0"

	var out bytes.Buffer
	a, err := New(context.Background(), cfg, &out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer a.Close()

	summary := a.Run(context.Background(), 1, ordergen.Options{Product: "NOPE-1"})
	if summary.Failed != 1 {
		t.Fatalf("expected one failure, got %+v", summary)
	}
	if !strings.Contains(out.String(), "Problem creating order: Couldn't find product by SKU: NOPE-1") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestApp_NewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = "sqlite"

	if _, err := New(context.Background(), cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestProgressReporter_Check(t *testing.T) {
	p := &progressReporter{inner: ordergen.NewConsoleReporter(&bytes.Buffer{})}

	if got := p.check().Status; got != healthcheck.StatusHealthy {
		t.Fatalf("empty batch must be healthy, got %s", got)
	}

	p.Failed(errors.New("boom"))
	if got := p.check().Status; got != healthcheck.StatusUnhealthy {
		t.Fatalf("only failures must be unhealthy, got %s", got)
	}

	p.Created(domain.Order{IncrementID: "100000001"})
	check := p.check()
	if check.Status != healthcheck.StatusDegraded || check.Message != "1 created, 1 failed" {
		t.Fatalf("mixed outcome must be degraded, got %+v", check)
	}
}
