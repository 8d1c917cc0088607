package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "github.com/illustspace/gsr/pkg/platform/audit"
	"github.com/illustspace/gsr/pkg/platform/audit/store/memory"
)

const (
	subjectA = "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"
	subjectB = "tz1aSkwEot3L2kmUvcoxzjMomb9mvBNuzFK6"
)

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Event{
		Subject: subjectA,
		Action:  string(audit.EventAliasMinted),
		TokenID: 1,
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), subjectA)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventAliasMinted), events[0].Action)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
	assert.Equal(t, uint64(1), events[0].TokenID)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for i := range 10 {
		err := pub.Emit(context.Background(), audit.Event{
			Subject: subjectA,
			Action:  string(audit.EventAliasMinted),
			TokenID: uint64(i + 1),
		})
		require.NoError(t, err)
	}

	pub.Close()

	events, err := store.ListBySubject(context.Background(), subjectA)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_EmitAfterCloseAppendsInline(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(4))
	pub.Close()
	pub.Close()

	err := pub.Emit(context.Background(), audit.Event{
		Subject: subjectA,
		Action:  string(audit.EventAdministratorChanged),
	})
	require.NoError(t, err)

	events, err := store.ListBySubject(context.Background(), subjectA)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestPublisher_BufferFull_DoesNotPanic(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), audit.Event{
				Subject: subjectA,
				Action:  string(audit.EventAliasMinted),
			})
			if err != nil {
				assert.ErrorIs(t, err, ErrBufferFull)
			}
		}()
	}
	wg.Wait()
	pub.Close()

	events, err := store.ListBySubject(context.Background(), subjectA)
	require.NoError(t, err)
	assert.NotEmpty(t, events)
	assert.LessOrEqual(t, len(events), 10)
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithClock(func() time.Time { return fixed }))
	defer pub.Close()

	err := pub.Emit(context.Background(), audit.Event{
		Subject: subjectA,
		Action:  string(audit.EventAliasMinted),
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), subjectA)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	customTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	err := pub.Emit(context.Background(), audit.Event{
		Subject:   subjectA,
		Action:    string(audit.EventAliasMinted),
		Timestamp: customTime,
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), subjectA)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_DifferentSubjects(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		Subject: subjectA,
		Action:  string(audit.EventAliasMinted),
	}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		Subject: subjectB,
		Action:  string(audit.EventMintDenied),
	}))

	eventsA, err := pub.List(context.Background(), subjectA)
	require.NoError(t, err)
	require.Len(t, eventsA, 1)
	assert.Equal(t, string(audit.EventAliasMinted), eventsA[0].Action)

	eventsB, err := pub.List(context.Background(), subjectB)
	require.NoError(t, err)
	require.Len(t, eventsB, 1)
	assert.Equal(t, audit.CategorySecurity, eventsB[0].Category)
}

type appendOnly struct{ n int }

func (a *appendOnly) Append(context.Context, audit.Event) error {
	a.n++
	return nil
}

func TestPublisher_ListUnsupported(t *testing.T) {
	pub := NewPublisher(&appendOnly{})
	_, err := pub.List(context.Background(), subjectA)
	assert.ErrorIs(t, err, ErrListUnsupported)
}

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("sink down")
}

func TestFanout_AppendsToEveryStore(t *testing.T) {
	first := memory.NewInMemoryStore()
	second := &appendOnly{}
	fan := audit.Fanout{first, failingStore{}, second, nil}

	err := fan.Append(context.Background(), audit.Event{Subject: subjectA, Action: string(audit.EventAliasMinted)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")

	events, listErr := first.ListBySubject(context.Background(), subjectA)
	require.NoError(t, listErr)
	assert.Len(t, events, 1)
	assert.Equal(t, 1, second.n)
}
