package batches

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pticevod/poultry-ledger/internal/infra/db"
)

type Repo struct{ q db.Querier }

func NewRepo(q db.Querier) *Repo { return &Repo{q: q} }

const batchColumns = `id, name, COALESCE(breed,''), COALESCE(shed,''), start_date, status,
		initial_population, male_count, female_count, unsexed_count, created_at`

func scanBatch(row pgx.Row) (*Batch, error) {
	var b Batch
	if err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Breed,
		&b.Shed,
		&b.StartDate,
		&b.Status,
		&b.InitialPopulation,
		&b.MaleCount,
		&b.FemaleCount,
		&b.UnsexedCount,
		&b.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repo) Create(ctx context.Context, b *Batch) error {
	row := r.q.QueryRow(ctx, `
		INSERT INTO batches (name, breed, shed, start_date, status,
			initial_population, male_count, female_count, unsexed_count)
		VALUES ($1, NULLIF($2,''), NULLIF($3,''), $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, b.Name, b.Breed, b.Shed, b.StartDate, string(b.Status),
		b.InitialPopulation, b.MaleCount, b.FemaleCount, b.UnsexedCount)
	return row.Scan(&b.ID, &b.CreatedAt)
}

// GetByID returns nil without error when the batch does not exist.
// forUpdate locks the row for the rest of the transaction, so concurrent
// mutations of the same batch serialize instead of reading stale counts.
func (r *Repo) GetByID(ctx context.Context, id int64, forUpdate bool) (*Batch, error) {
	q := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	return scanBatch(r.q.QueryRow(ctx, q, id))
}

func (r *Repo) GetByName(ctx context.Context, name string) (*Batch, error) {
	return scanBatch(r.q.QueryRow(ctx,
		`SELECT `+batchColumns+` FROM batches WHERE name = $1`, name))
}

func (r *Repo) List(ctx context.Context) ([]Batch, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+batchColumns+` FROM batches ORDER BY start_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Breed, &b.Shed, &b.StartDate, &b.Status,
			&b.InitialPopulation, &b.MaleCount, &b.FemaleCount, &b.UnsexedCount, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateName(ctx context.Context, id int64, name string) (*Batch, error) {
	return scanBatch(r.q.QueryRow(ctx, `
		UPDATE batches SET name=$2 WHERE id=$1
		RETURNING `+batchColumns+`
	`, id, name))
}

func (r *Repo) UpdateCounts(ctx context.Context, id int64, male, female, unsexed int) error {
	_, err := r.q.Exec(ctx, `
		UPDATE batches SET male_count=$2, female_count=$3, unsexed_count=$4
		WHERE id=$1
	`, id, male, female, unsexed)
	return err
}

func (r *Repo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	_, err := r.q.Exec(ctx, `UPDATE batches SET status=$2 WHERE id=$1`, id, string(status))
	return err
}
