package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/illustspace/gsr/internal/registry/models"
	"github.com/illustspace/gsr/internal/registry/ports"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
)

const (
	alice = id.PrimaryAddress("tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb")
	bob   = id.PrimaryAddress("tz1aSkwEot3L2kmUvcoxzjMomb9mvBNuzFK6")
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

// issue writes one complete token inside an open transaction.
func issue(ctx context.Context, st ports.Store, owner id.PrimaryAddress, secondary id.SecondaryAddress) (id.TokenID, error) {
	last, err := st.LastTokenID(ctx)
	if err != nil {
		return 0, err
	}
	next := last.Next()
	if err := st.SetLastTokenID(ctx, next); err != nil {
		return 0, err
	}
	if err := st.SaveAlias(ctx, owner, secondary); err != nil {
		return 0, err
	}
	md, err := models.NewTokenMetadata(next)
	if err != nil {
		return 0, err
	}
	if err := st.SaveTokenMetadata(ctx, md); err != nil {
		return 0, err
	}
	return next, st.SaveOwner(ctx, next, owner)
}

func (s *InMemoryStoreSuite) TestEmptyRegistry() {
	last, err := s.store.LastTokenID(s.ctx)
	s.Require().NoError(err)
	s.Equal(id.TokenID(0), last)

	_, err = s.store.FindAlias(s.ctx, alice)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindTokenMetadata(s.ctx, 1)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindOwner(s.ctx, 1)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestCommit() {
	err := s.store.RunInTx(s.ctx, func(ctx context.Context, st ports.Store) error {
		if _, err := issue(ctx, st, alice, "0xA1"); err != nil {
			return err
		}
		_, err := issue(ctx, st, alice, "0xA2")
		return err
	})
	s.Require().NoError(err)

	last, err := s.store.LastTokenID(s.ctx)
	s.Require().NoError(err)
	s.Equal(id.TokenID(2), last)

	alias, err := s.store.FindAlias(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(id.SecondaryAddress("0xA2"), alias)

	for _, tid := range []id.TokenID{1, 2} {
		owner, err := s.store.FindOwner(s.ctx, tid)
		s.Require().NoError(err)
		s.Equal(alice, owner)

		md, err := s.store.FindTokenMetadata(s.ctx, tid)
		s.Require().NoError(err)
		s.Equal(tid, md.TokenID)
		s.Equal(models.FixedTokenInfo(), md.TokenInfo)
	}
}

func (s *InMemoryStoreSuite) TestRollback() {
	s.Require().NoError(s.store.RunInTx(s.ctx, func(ctx context.Context, st ports.Store) error {
		_, err := issue(ctx, st, alice, "0xA1")
		return err
	}))
	before := s.store.Snapshot()

	s.Run("callback error discards staged writes", func() {
		boom := errors.New("boom")
		err := s.store.RunInTx(s.ctx, func(ctx context.Context, st ports.Store) error {
			if _, err := issue(ctx, st, bob, "0xB1"); err != nil {
				return err
			}
			return boom
		})
		s.ErrorIs(err, boom)
		s.Equal(before, s.store.Snapshot())
	})

	s.Run("incomplete token is rejected at commit", func() {
		err := s.store.RunInTx(s.ctx, func(ctx context.Context, st ports.Store) error {
			return st.SetLastTokenID(ctx, 2)
		})
		s.ErrorIs(err, sentinel.ErrInvalidState)
		s.Equal(before, s.store.Snapshot())
	})

	s.Run("cancelled context aborts before locking", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		called := false
		err := s.store.RunInTx(ctx, func(context.Context, ports.Store) error {
			called = true
			return nil
		})
		s.ErrorIs(err, context.Canceled)
		s.False(called)
		s.Equal(before, s.store.Snapshot())
	})

	s.Run("context cancelled inside callback aborts commit", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		err := s.store.RunInTx(ctx, func(ctx context.Context, st ports.Store) error {
			_, err := issue(ctx, st, bob, "0xB2")
			cancel()
			return err
		})
		s.ErrorIs(err, context.Canceled)
		s.Equal(before, s.store.Snapshot())
	})
}

func (s *InMemoryStoreSuite) TestStagedReadsSeeOwnWrites() {
	err := s.store.RunInTx(s.ctx, func(ctx context.Context, st ports.Store) error {
		tid, err := issue(ctx, st, bob, "0xB1")
		s.Require().NoError(err)

		alias, err := st.FindAlias(ctx, bob)
		s.Require().NoError(err)
		s.Equal(id.SecondaryAddress("0xB1"), alias)

		owner, err := st.FindOwner(ctx, tid)
		s.Require().NoError(err)
		s.Equal(bob, owner)

		// Not yet visible outside the transaction.
		_, err = s.store.unlocked().FindAlias(ctx, bob)
		s.ErrorIs(err, sentinel.ErrNotFound)
		return nil
	})
	s.Require().NoError(err)
}

func (s *InMemoryStoreSuite) TestConcurrentTransactionsSerialize() {
	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
			defer cancel()
			err := s.store.RunInTx(ctx, func(ctx context.Context, st ports.Store) error {
				_, err := issue(ctx, st, alice, "0xA")
				return err
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	snap := s.store.Snapshot()
	s.Equal(id.TokenID(workers), snap.LastTokenID)
	s.Len(snap.Owners, workers)
	s.Len(snap.TokenInfo, workers)
}

func (s *InMemoryStoreSuite) TestReturnedMetadataIsACopy() {
	s.Require().NoError(s.store.RunInTx(s.ctx, func(ctx context.Context, st ports.Store) error {
		_, err := issue(ctx, st, alice, "0xA1")
		return err
	}))
	md, err := s.store.FindTokenMetadata(s.ctx, 1)
	s.Require().NoError(err)
	md.TokenInfo[models.TokenInfoName][0] = 'X'

	again, err := s.store.FindTokenMetadata(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(models.TokenName, string(again.TokenInfo[models.TokenInfoName]))
}
