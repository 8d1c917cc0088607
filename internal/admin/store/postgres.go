package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/illustspace/gsr/internal/admin/models"
	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/platform/sentinel"
	txcontext "github.com/illustspace/gsr/pkg/platform/tx"
)

// PostgresStore keeps the administrator in a singleton row and metadata in a
// key/value table. Reads join a transaction carried by ctx.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Administrator(ctx context.Context) (id.PrimaryAddress, error) {
	var admin string
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT administrator FROM contract_admin WHERE id = 1`).Scan(&admin)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find administrator: %w", err)
	}
	return id.PrimaryAddress(admin), nil
}

func (s *PostgresStore) EnsureAdministrator(ctx context.Context, admin id.PrimaryAddress) error {
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO contract_admin (id, administrator) VALUES (1, $1)
		ON CONFLICT (id) DO NOTHING
	`, string(admin))
	if err != nil {
		return fmt.Errorf("ensure administrator: %w", err)
	}
	return nil
}

func (s *PostgresStore) ReplaceAdministrator(ctx context.Context, expected, next id.PrimaryAddress) error {
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		UPDATE contract_admin SET administrator = $2, updated_at = NOW()
		WHERE id = 1 AND administrator = $1
	`, string(expected), string(next))
	if err != nil {
		return fmt.Errorf("replace administrator: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace administrator rows: %w", err)
	}
	if n == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) Metadata(ctx context.Context) (models.ContractMetadata, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx,
		`SELECT meta_key, meta_value FROM contract_metadata`)
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	defer rows.Close()

	md := models.ContractMetadata{}
	for rows.Next() {
		var (
			key   string
			value []byte
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan metadata: %w", err)
		}
		md[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metadata: %w", err)
	}
	return md, nil
}

func (s *PostgresStore) SetMetadata(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO contract_metadata (meta_key, meta_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (meta_key)
		DO UPDATE SET meta_value = EXCLUDED.meta_value, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}
	return nil
}
