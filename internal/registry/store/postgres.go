package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/illustspace/gsr/internal/registry/models"
	"github.com/illustspace/gsr/internal/registry/ports"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
	txcontext "github.com/illustspace/gsr/pkg/platform/tx"
)

const pqUniqueViolation = "23505"

// Postgres persists the registry in PostgreSQL. A transaction locks the
// counter row, stages writes, and flushes them before COMMIT.
type Postgres struct {
	db        *sql.DB
	txTimeout time.Duration
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, txTimeout: DefaultTxTimeout}
}

// SetTxTimeout overrides DefaultTxTimeout. Zero disables the bound.
func (s *Postgres) SetTxTimeout(d time.Duration) {
	s.txTimeout = d
}

func (s *Postgres) view(ctx context.Context, lockCounter bool) postgresView {
	return postgresView{exec: txcontext.ExecutorFrom(ctx, s.db), lockCounter: lockCounter}
}

func (s *Postgres) LastTokenID(ctx context.Context) (id.TokenID, error) {
	return s.view(ctx, false).LastTokenID(ctx)
}

func (s *Postgres) FindAlias(ctx context.Context, primary id.PrimaryAddress) (id.SecondaryAddress, error) {
	return s.view(ctx, false).FindAlias(ctx, primary)
}

func (s *Postgres) FindTokenMetadata(ctx context.Context, tokenID id.TokenID) (*models.TokenMetadata, error) {
	return s.view(ctx, false).FindTokenMetadata(ctx, tokenID)
}

func (s *Postgres) FindOwner(ctx context.Context, tokenID id.TokenID) (id.PrimaryAddress, error) {
	return s.view(ctx, false).FindOwner(ctx, tokenID)
}

func (s *Postgres) RunInTx(ctx context.Context, fn func(ctx context.Context, store ports.Store) error) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("transaction aborted: %w", err)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()
	txCtx := txcontext.WithTx(ctx, sqlTx)

	staged, err := NewStaged(txCtx, s.view(txCtx, true))
	if err != nil {
		return err
	}
	if err = fn(txCtx, staged); err != nil {
		return err
	}
	changes, err := staged.Changes()
	if err != nil {
		return err
	}
	if err = s.flush(txCtx, sqlTx, changes); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Postgres) flush(ctx context.Context, tx *sql.Tx, c *Changes) error {
	for primary, secondary := range c.Aliases {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO alias_accounts (primary_address, secondary_address, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (primary_address)
			DO UPDATE SET secondary_address = EXCLUDED.secondary_address, updated_at = NOW()
		`, string(primary), string(secondary))
		if err != nil {
			return fmt.Errorf("upsert alias: %w", err)
		}
	}

	for _, tok := range c.Tokens {
		tid := int64(tok.Metadata.TokenID)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO token_metadata (token_id) VALUES ($1)`, tid); err != nil {
			return translatePQ(err, "insert token metadata")
		}
		keys := make([]string, 0, len(tok.Metadata.TokenInfo))
		values := make([][]byte, 0, len(tok.Metadata.TokenInfo))
		for k, v := range tok.Metadata.TokenInfo {
			keys = append(keys, k)
			values = append(values, v)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO token_info (token_id, info_key, info_value)
			SELECT $1, k, v FROM unnest($2::text[], $3::bytea[]) AS t(k, v)
		`, tid, pq.Array(keys), pq.Array(values)); err != nil {
			return translatePQ(err, "insert token info")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ledger (token_id, owner) VALUES ($1, $2)`, tid, string(tok.Owner)); err != nil {
			return translatePQ(err, "insert ledger entry")
		}
	}

	if c.LastTokenID != c.PreviousLastTokenID {
		res, err := tx.ExecContext(ctx, `
			UPDATE registry_counter SET last_token_id = $1
			WHERE id = 1 AND last_token_id = $2
		`, int64(c.LastTokenID), int64(c.PreviousLastTokenID))
		if err != nil {
			return fmt.Errorf("update counter: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update counter rows: %w", err)
		}
		if n != 1 {
			return fmt.Errorf("counter moved during transaction: %w", sentinel.ErrConflict)
		}
	}
	return nil
}

func translatePQ(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

type postgresView struct {
	exec        txcontext.Executor
	lockCounter bool
}

func (v postgresView) LastTokenID(ctx context.Context) (id.TokenID, error) {
	query := `SELECT last_token_id FROM registry_counter WHERE id = 1`
	if v.lockCounter {
		query += ` FOR UPDATE`
	}
	var last int64
	err := v.exec.QueryRowContext(ctx, query).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("registry counter row missing: %w", sentinel.ErrInvalidState)
	}
	if err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}
	return id.TokenID(last), nil
}

func (v postgresView) FindAlias(ctx context.Context, primary id.PrimaryAddress) (id.SecondaryAddress, error) {
	var secondary string
	err := v.exec.QueryRowContext(ctx,
		`SELECT secondary_address FROM alias_accounts WHERE primary_address = $1`,
		string(primary)).Scan(&secondary)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find alias: %w", err)
	}
	return id.SecondaryAddress(secondary), nil
}

func (v postgresView) FindTokenMetadata(ctx context.Context, tokenID id.TokenID) (*models.TokenMetadata, error) {
	var exists bool
	if err := v.exec.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM token_metadata WHERE token_id = $1)`,
		int64(tokenID)).Scan(&exists); err != nil {
		return nil, fmt.Errorf("find token metadata: %w", err)
	}
	if !exists {
		return nil, sentinel.ErrNotFound
	}

	rows, err := v.exec.QueryContext(ctx,
		`SELECT info_key, info_value FROM token_info WHERE token_id = $1`, int64(tokenID))
	if err != nil {
		return nil, fmt.Errorf("query token info: %w", err)
	}
	defer rows.Close()

	info := models.TokenInfo{}
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan token info: %w", err)
		}
		info[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token info: %w", err)
	}
	return &models.TokenMetadata{TokenID: tokenID, TokenInfo: info}, nil
}

func (v postgresView) FindOwner(ctx context.Context, tokenID id.TokenID) (id.PrimaryAddress, error) {
	var owner string
	err := v.exec.QueryRowContext(ctx,
		`SELECT owner FROM ledger WHERE token_id = $1`, int64(tokenID)).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find owner: %w", err)
	}
	return id.PrimaryAddress(owner), nil
}
