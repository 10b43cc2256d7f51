package batchops

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pticevod/poultry-ledger/internal/domain/activities"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/domain/products"
	"github.com/pticevod/poultry-ledger/internal/infra/db"
)

// PgDB binds the store interfaces to postgres: each InTx call opens one
// pgx transaction and hands fn repos built over it.
type PgDB struct {
	pool *pgxpool.Pool
}

func NewPgDB(pool *pgxpool.Pool) *PgDB { return &PgDB{pool: pool} }

func (d *PgDB) InTx(ctx context.Context, fn func(Stores) error) error {
	return db.InTx(ctx, d.pool, func(tx pgx.Tx) error {
		return fn(Stores{
			Batches:    batches.NewRepo(tx),
			Products:   products.NewRepo(tx),
			Activities: activities.NewRepo(tx),
		})
	})
}
