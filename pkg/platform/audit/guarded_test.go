package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/illustspace/gsr/pkg/platform/circuit"
)

type flakyStore struct {
	err   error
	calls int
}

func (s *flakyStore) Append(context.Context, Event) error {
	s.calls++
	return s.err
}

func TestGuardedStopsCallingOpenSink(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sink := &flakyStore{err: errors.New("broker down")}
	g := NewGuarded(sink, circuit.New("kafka",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	), nil)
	ctx := context.Background()

	assert.Error(t, g.Append(ctx, Event{}))
	assert.Error(t, g.Append(ctx, Event{}))
	assert.ErrorIs(t, g.Append(ctx, Event{}), ErrSinkUnavailable)
	assert.Equal(t, 2, sink.calls)

	now = now.Add(time.Minute)
	sink.err = nil
	assert.NoError(t, g.Append(ctx, Event{}))
	assert.NoError(t, g.Append(ctx, Event{}))
	assert.Equal(t, 4, sink.calls)
}
