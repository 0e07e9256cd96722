package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"profitScope/internal/model"
	"profitScope/internal/storage"
)

// Store reads the pool snapshot that a companion indexer maintains in
// the pool_snapshot table.
type Store struct {
	pool   *pgxpool.Pool
	filter storage.PoolFilter
}

func NewStore(ctx context.Context, dsn string, filter storage.PoolFilter) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, filter: filter}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// LoadPools returns snapshot rows in insertion order so downstream tie
// breaking matches the file source. NULL columns surface as absent
// fields and are left for record validation to reject.
func (s *Store) LoadPools(ctx context.Context) ([]model.PoolRecord, error) {
	query := `
		SELECT COALESCE(pool_address, ''), COALESCE(token0_symbol, ''), COALESCE(token1_symbol, ''), apr
		FROM pool_snapshot
		ORDER BY id
	`
	args := []any{}
	if addrs := s.filter.Addresses(); len(addrs) > 0 {
		query = `
		SELECT COALESCE(pool_address, ''), COALESCE(token0_symbol, ''), COALESCE(token1_symbol, ''), apr
		FROM pool_snapshot
		WHERE lower(pool_address) = ANY($1)
		ORDER BY id
	`
		args = append(args, addrs)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pool snapshot: %w", err)
	}
	defer rows.Close()

	var records []model.PoolRecord
	for rows.Next() {
		var (
			address, symbol0, symbol1 string
			apr                       *float64
		)
		if err := rows.Scan(&address, &symbol0, &symbol1, &apr); err != nil {
			return nil, fmt.Errorf("scan pool snapshot row: %w", err)
		}

		var aprValue float64
		if apr != nil {
			aprValue = *apr
		}
		rec := model.NewPoolRecord(address, symbol0, symbol1, aprValue)
		if apr == nil {
			rec.APR = nil
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read pool snapshot: %w", err)
	}
	return records, nil
}
