package batchops

import (
	"context"

	"github.com/pticevod/poultry-ledger/internal/domain/activities"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/domain/products"
)

// Store interfaces the command handlers consume. The pgx repos implement
// them; tests plug in in-memory fakes. Any read that precedes a write in
// the same command takes forUpdate=true so the row stays locked until the
// transaction commits.

type BatchStore interface {
	Create(ctx context.Context, b *batches.Batch) error
	GetByID(ctx context.Context, id int64, forUpdate bool) (*batches.Batch, error)
	GetByName(ctx context.Context, name string) (*batches.Batch, error)
	UpdateName(ctx context.Context, id int64, name string) (*batches.Batch, error)
	UpdateCounts(ctx context.Context, id int64, male, female, unsexed int) error
	UpdateStatus(ctx context.Context, id int64, status batches.Status) error
}

type ProductStore interface {
	GetByID(ctx context.Context, id int64, forUpdate bool) (*products.Product, error)
	UpdateStock(ctx context.Context, id int64, stock float64) error
}

type ActivityStore interface {
	Insert(ctx context.Context, a *activities.Activity) error
}

type Stores struct {
	Batches    BatchStore
	Products   ProductStore
	Activities ActivityStore
}

// DB runs fn inside one transaction: every store call in fn sees the same
// snapshot, and either everything commits or nothing does.
type DB interface {
	InTx(ctx context.Context, fn func(Stores) error) error
}
