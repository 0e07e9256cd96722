package storage

import (
	"context"

	"profitScope/internal/model"
)

// PoolSource yields the pool snapshot a projection run consumes.
type PoolSource interface {
	LoadPools(ctx context.Context) ([]model.PoolRecord, error)
}
