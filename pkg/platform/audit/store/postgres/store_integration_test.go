//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	audit "github.com/illustspace/gsr/pkg/platform/audit"
	"github.com/illustspace/gsr/pkg/platform/audit/store/postgres"
	txcontext "github.com/illustspace/gsr/pkg/platform/tx"
	"github.com/illustspace/gsr/pkg/testutil/containers"
)

const holder = "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"

type AuditStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *postgres.Store
}

func TestAuditStoreSuite(t *testing.T) {
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = postgres.New(s.pg.DB)
}

func (s *AuditStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "audit_events"))
}

func (s *AuditStoreSuite) TestAppendAndListOldestFirst() {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: at.Add(time.Second),
		Subject:   holder,
		Action:    string(audit.EventAliasMinted),
		TokenID:   2,
		Detail:    "0xBBB",
	}))
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: at,
		Subject:   holder,
		Action:    string(audit.EventAliasMinted),
		TokenID:   1,
		Detail:    "0xAAA",
		RequestID: "req-1",
	}))
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: at,
		Subject:   "tz1other",
		Action:    string(audit.EventAdministratorChanged),
	}))

	events, err := s.store.ListBySubject(ctx, holder)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(uint64(1), events[0].TokenID)
	s.Equal("0xAAA", events[0].Detail)
	s.Equal("req-1", events[0].RequestID)
	s.Equal(audit.CategoryCompliance, events[0].Category)
	s.Equal(uint64(2), events[1].TokenID)
}

func (s *AuditStoreSuite) TestAppendJoinsTransaction() {
	ctx := context.Background()
	tx, err := s.pg.DB.BeginTx(ctx, &sql.TxOptions{})
	s.Require().NoError(err)

	txCtx := txcontext.WithTx(ctx, tx)
	s.Require().NoError(s.store.Append(txCtx, audit.Event{
		Timestamp: time.Now(),
		Subject:   holder,
		Action:    string(audit.EventAliasMinted),
	}))
	s.Require().NoError(tx.Rollback())

	events, err := s.store.ListBySubject(ctx, holder)
	s.Require().NoError(err)
	s.Empty(events)
}
