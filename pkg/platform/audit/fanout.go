package audit

import (
	"context"
	"errors"
)

// Fanout appends every event to each of its stores. All stores are tried;
// the returned error joins the individual failures.
type Fanout []Store

func (f Fanout) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ErrNoReadableStore is returned by ListBySubject when no store can query.
var ErrNoReadableStore = errors.New("no audit store supports listing")

// ListBySubject reads from the first store that can list by subject. Write-only
// sinks such as Kafka are skipped.
func (f Fanout) ListBySubject(ctx context.Context, subject string) ([]Event, error) {
	for _, s := range f {
		if lister, ok := s.(interface {
			ListBySubject(ctx context.Context, subject string) ([]Event, error)
		}); ok {
			return lister.ListBySubject(ctx, subject)
		}
	}
	return nil, ErrNoReadableStore
}
