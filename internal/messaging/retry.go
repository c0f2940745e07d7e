// Package messaging содержит общие обёртки над транспортами событий заказов.
package messaging

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// RetryConfig конфигурация для retry логики.
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
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
	}
}

// RetryingPublisher повторяет публикацию события с экспоненциальной задержкой.
type RetryingPublisher struct {
	next   domain.EventPublisher
	config RetryConfig
	logger *log.Entry
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetryingPublisher оборачивает publisher retry логикой.
func NewRetryingPublisher(next domain.EventPublisher, config RetryConfig, logger *log.Entry) *RetryingPublisher {
	if logger == nil {
		logger = log.WithField("component", "retrying-publisher")
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	if config.BackoffFactor < 1 {
		config.BackoffFactor = 1
	}
	return &RetryingPublisher{
		next:   next,
		config: config,
		logger: logger,
		sleep:  sleepContext,
	}
}

// Publish возвращает последнюю ошибку, если все попытки исчерпаны.
func (p *RetryingPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	var lastErr error
	delay := p.config.InitialDelay

	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		err := p.next.Publish(ctx, event)
		if err == nil {
			if attempt > 1 {
				p.logger.WithFields(log.Fields{
					"event_id": event.ID,
					"attempt":  attempt,
				}).Info("event published after retry")
			}
			return nil
		}
		lastErr = err

		if !shouldRetry(err) || attempt == p.config.MaxAttempts {
			break
		}

		p.logger.WithFields(log.Fields{
			"event_id": event.ID,
			"attempt":  attempt,
			"delay":    delay,
			"error":    err,
		}).Warn("event publish failed, retrying")

		if err := p.sleep(ctx, delay); err != nil {
			return errors.Join(lastErr, err)
		}

		delay = time.Duration(float64(delay) * p.config.BackoffFactor)
		if p.config.MaxDelay > 0 && delay > p.config.MaxDelay {
			delay = p.config.MaxDelay
		}
	}

	return lastErr
}

// Close закрывает вложенный publisher, если он владеет подключением.
func (p *RetryingPublisher) Close() error {
	if closer, ok := p.next.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// shouldRetry не повторяет отменённые операции.
func shouldRetry(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ domain.EventPublisher = (*RetryingPublisher)(nil)
