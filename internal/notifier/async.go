package notifier

import (
	"context"
	"sync"
	"time"

	"crossfit-api/internal/data/entity"

	"go.uber.org/zap"
)

const defaultSendTimeout = 30 * time.Second

// Async runs the inner notifier on its own goroutine and timeout.
// SendLink always returns nil; delivery errors are only logged.
type Async struct {
	inner   Notifier
	timeout time.Duration
	log     *zap.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewAsync(inner Notifier, log *zap.Logger) *Async {
	return &Async{
		inner:   inner,
		timeout: defaultSendTimeout,
		log:     log.With(zap.String("notifier", "async")),
	}
}

func (a *Async) SendLink(_ context.Context, kind entity.TokenKind, email, token string) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.log.Warn("Mail link dropped after shutdown",
			zap.String("email", email),
			zap.String("kind", string(kind)),
		)
		return nil
	}
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()

		// detached from the request so a finished response does not cancel delivery
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.inner.SendLink(ctx, kind, email, token); err != nil {
			a.log.Error("Failed to send mail link",
				zap.Error(err),
				zap.String("email", email),
				zap.String("kind", string(kind)),
			)
		}
	}()
	return nil
}

// Close stops accepting links, waits up to one send timeout for in-flight
// deliveries, then closes the inner notifier.
func (a *Async) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(a.timeout):
		a.log.Warn("Closing with mail links still in flight")
	}

	if c, ok := a.inner.(Closer); ok {
		return c.Close()
	}
	return nil
}
