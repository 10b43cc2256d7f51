package products

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pticevod/poultry-ledger/internal/domain/units"
	"github.com/pticevod/poultry-ledger/internal/infra/db"
)

type Repo struct{ q db.Querier }

func NewRepo(q db.Querier) *Repo { return &Repo{q: q} }

func (r *Repo) Create(ctx context.Context, name string, unit units.Unit, stock float64) (*Product, error) {
	row := r.q.QueryRow(ctx, `
		INSERT INTO products (name, unit, stock, active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, name, unit, stock, active, created_at
	`, name, string(unit), stock)
	return scanProduct(row)
}

// GetByID returns nil without error when the product does not exist.
// forUpdate locks the row when the caller is about to move the stock.
func (r *Repo) GetByID(ctx context.Context, id int64, forUpdate bool) (*Product, error) {
	q := `SELECT id, name, unit, stock, active, created_at FROM products WHERE id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	return scanProduct(r.q.QueryRow(ctx, q, id))
}

func (r *Repo) GetByName(ctx context.Context, name string) (*Product, error) {
	return scanProduct(r.q.QueryRow(ctx,
		`SELECT id, name, unit, stock, active, created_at FROM products WHERE name = $1`, name))
}

func (r *Repo) List(ctx context.Context, onlyActive bool) ([]Product, error) {
	q := `SELECT id, name, unit, stock, active, created_at FROM products`
	if onlyActive {
		q += ` WHERE active = TRUE`
	}
	q += ` ORDER BY name`

	rows, err := r.q.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Unit, &p.Stock, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateStock sets the balance to an absolute value, in the native unit.
func (r *Repo) UpdateStock(ctx context.Context, id int64, stock float64) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET stock=$2 WHERE id=$1`, id, stock)
	return err
}

// AddStock applies a positive receipt to the balance, in the native unit.
func (r *Repo) AddStock(ctx context.Context, id int64, qty float64) (*Product, error) {
	return scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET stock = stock + $2 WHERE id=$1
		RETURNING id, name, unit, stock, active, created_at
	`, id, qty))
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (*Product, error) {
	return scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET active=$2 WHERE id=$1
		RETURNING id, name, unit, stock, active, created_at
	`, id, active))
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.Unit, &p.Stock, &p.Active, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
