package audit

import (
	"context"
	"errors"
	"log/slog"

	"github.com/illustspace/gsr/pkg/platform/circuit"
)

// ErrSinkUnavailable is returned while a guarded sink's breaker is open.
var ErrSinkUnavailable = errors.New("audit sink unavailable")

// Guarded protects an optional sink with a circuit breaker so a dead broker
// costs one failed call per cooldown instead of one per event.
type Guarded struct {
	store   Store
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuarded(store Store, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guarded{store: store, breaker: breaker, logger: logger}
}

func (g *Guarded) Append(ctx context.Context, event Event) error {
	if !g.breaker.Allow() {
		return ErrSinkUnavailable
	}
	if err := g.store.Append(ctx, event); err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "audit sink circuit opened", "sink", g.breaker.Name(), "error", err)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "audit sink circuit closed", "sink", g.breaker.Name())
	}
	return nil
}
