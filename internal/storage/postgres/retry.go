package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// errEmptyDSN не лечится повтором.
var errEmptyDSN = errors.New("postgres dsn is empty")

// RetryConfig: параметры повторных попыток подключения.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig возвращает конфигурацию по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  250 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}
}

func (c RetryConfig) withDefaults() RetryConfig {
	def := DefaultRetryConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = def.InitialDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = def.MaxDelay
	}
	if c.BackoffFactor < 1 {
		c.BackoffFactor = def.BackoffFactor
	}
	return c
}

// OpenWithRetry открывает подключение, повторяя попытки с экспоненциальной задержкой.
// Нужен, когда генератор стартует вместе с базой (docker compose) и та ещё не готова.
func OpenWithRetry(ctx context.Context, dsn string, cfg RetryConfig, logger *log.Entry) (*Store, error) {
	if logger == nil {
		logger = log.New().WithField("component", "postgres")
	}
	var store *Store
	err := withRetry(ctx, cfg, logger, "open", func(ctx context.Context) error {
		var err error
		store, err = Open(ctx, dsn)
		return err
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func withRetry(ctx context.Context, cfg RetryConfig, logger *log.Entry, operation string, fn func(context.Context) error) error {
	cfg = cfg.withDefaults()
	delay := cfg.InitialDelay

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				logger.WithFields(log.Fields{"operation": operation, "attempt": attempt}).Info("postgres operation succeeded after retry")
			}
			return nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w (last error: %v)", operation, ctx.Err(), err)
		}
		if !shouldRetry(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		logger.WithFields(log.Fields{
			"operation": operation,
			"attempt":   attempt,
			"delay":     delay,
		}).WithError(err).Warn("postgres operation failed, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w (last error: %v)", operation, ctx.Err(), lastErr)
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operation, cfg.MaxAttempts, lastErr)
}

// shouldRetry: таймаут отдельного ping повторяется.
func shouldRetry(err error) bool {
	return !errors.Is(err, errEmptyDSN)
}
