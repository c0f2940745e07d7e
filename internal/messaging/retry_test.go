package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type flakyPublisher struct {
	failures int
	err      error
	calls    int
	closed   bool
}

func (f *flakyPublisher) Publish(context.Context, domain.OrderEvent) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return nil
}

func (f *flakyPublisher) Close() error {
	f.closed = true
	return nil
}

func newTestPublisher(next domain.EventPublisher, cfg RetryConfig) (*RetryingPublisher, *[]time.Duration) {
	p := NewRetryingPublisher(next, cfg, nil)
	var delays []time.Duration
	p.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return p, &delays
}

func TestRetryingPublisher_SucceedsAfterRetries(t *testing.T) {
	next := &flakyPublisher{failures: 2, err: errors.New("broker unavailable")}
	p, delays := newTestPublisher(next, RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  10 * time.Millisecond,
		MaxDelay:      15 * time.Millisecond,
		BackoffFactor: 2,
	})

	err := p.Publish(context.Background(), domain.OrderEvent{ID: "evt-1"})
	require.NoError(t, err)
	assert.Equal(t, 3, next.calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 15 * time.Millisecond}, *delays)
}

func TestRetryingPublisher_ExhaustsAttempts(t *testing.T) {
	brokerErr := errors.New("broker unavailable")
	next := &flakyPublisher{failures: 10, err: brokerErr}
	p, delays := newTestPublisher(next, DefaultRetryConfig())

	err := p.Publish(context.Background(), domain.OrderEvent{ID: "evt-2"})
	require.ErrorIs(t, err, brokerErr)
	assert.Equal(t, 3, next.calls)
	assert.Len(t, *delays, 2)
}

func TestRetryingPublisher_DoesNotRetryCanceled(t *testing.T) {
	next := &flakyPublisher{failures: 10, err: context.Canceled}
	p, delays := newTestPublisher(next, DefaultRetryConfig())

	err := p.Publish(context.Background(), domain.OrderEvent{ID: "evt-3"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, next.calls)
	assert.Empty(t, *delays)
}

func TestRetryingPublisher_StopsWhenContextDone(t *testing.T) {
	brokerErr := errors.New("broker unavailable")
	next := &flakyPublisher{failures: 10, err: brokerErr}
	p := NewRetryingPublisher(next, RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Publish(ctx, domain.OrderEvent{ID: "evt-4"})
	require.ErrorIs(t, err, brokerErr)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, next.calls)
}

func TestRetryingPublisher_NormalizesConfigAndCloses(t *testing.T) {
	next := &flakyPublisher{failures: 1, err: errors.New("boom")}
	p, _ := newTestPublisher(next, RetryConfig{})

	require.Error(t, p.Publish(context.Background(), domain.OrderEvent{}))
	assert.Equal(t, 1, next.calls)

	require.NoError(t, p.Close())
	assert.True(t, next.closed)

	assert.NoError(t, NewRetryingPublisher(domain.NopPublisher{}, RetryConfig{}, nil).Close())
}
