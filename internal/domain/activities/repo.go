package activities

import (
	"context"
	"fmt"
	"sort"

	"github.com/pticevod/poultry-ledger/internal/infra/db"
)

// Repo appends to and reads the ledger. One table per variant, each with
// the envelope columns; there is deliberately no update or delete.
type Repo struct{ q db.Querier }

func NewRepo(q db.Querier) *Repo { return &Repo{q: q} }

func (r *Repo) Insert(ctx context.Context, a *Activity) error {
	switch p := a.Payload.(type) {
	case Mortality:
		a.Type = TypeMortality
		return r.q.QueryRow(ctx, `
			INSERT INTO mortality_registrations (batch_id, date, notes, number_of_deaths, sex)
			VALUES ($1,$2,NULLIF($3,''),$4,$5)
			RETURNING id, created_at
		`, a.BatchID, a.Date, a.Notes, p.NumberOfDeaths, string(p.Sex)).Scan(&a.ID, &a.CreatedAt)
	case StatusSwitch:
		a.Type = TypeStatusSwitch
		return r.q.QueryRow(ctx, `
			INSERT INTO status_switches (batch_id, date, notes, new_status)
			VALUES ($1,$2,NULLIF($3,''),$4)
			RETURNING id, created_at
		`, a.BatchID, a.Date, a.Notes, string(p.NewStatus)).Scan(&a.ID, &a.CreatedAt)
	case ProductConsumption:
		a.Type = TypeProductConsumption
		return r.q.QueryRow(ctx, `
			INSERT INTO product_consumptions (batch_id, date, notes, product_id, quantity, unit)
			VALUES ($1,$2,NULLIF($3,''),$4,$5,$6)
			RETURNING id, created_at
		`, a.BatchID, a.Date, a.Notes, p.ProductID, p.Quantity, string(p.Unit)).Scan(&a.ID, &a.CreatedAt)
	case WeightMeasurement:
		a.Type = TypeWeightMeasurement
		return r.q.QueryRow(ctx, `
			INSERT INTO weight_measurements (batch_id, date, notes, average_weight, sample_size, unit)
			VALUES ($1,$2,NULLIF($3,''),$4,$5,$6)
			RETURNING id, created_at
		`, a.BatchID, a.Date, a.Notes, p.AverageWeight, p.SampleSize, string(p.Unit)).Scan(&a.ID, &a.CreatedAt)
	default:
		return fmt.Errorf("unknown activity payload %T", a.Payload)
	}
}

// ListByBatch merges all four variant tables, newest event first.
func (r *Repo) ListByBatch(ctx context.Context, batchID int64) ([]Activity, error) {
	var out []Activity
	for _, list := range []func(context.Context, int64) ([]Activity, error){
		r.listMortality,
		r.listStatusSwitches,
		r.listConsumptions,
		r.listWeights,
	} {
		part, err := list(ctx, batchID)
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Repo) listMortality(ctx context.Context, batchID int64) ([]Activity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, date, COALESCE(notes,''), created_at, number_of_deaths, sex
		FROM mortality_registrations WHERE batch_id = $1
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		a := Activity{BatchID: batchID, Type: TypeMortality}
		var p Mortality
		if err := rows.Scan(&a.ID, &a.Date, &a.Notes, &a.CreatedAt, &p.NumberOfDeaths, &p.Sex); err != nil {
			return nil, err
		}
		a.Payload = p
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) listStatusSwitches(ctx context.Context, batchID int64) ([]Activity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, date, COALESCE(notes,''), created_at, new_status
		FROM status_switches WHERE batch_id = $1
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		a := Activity{BatchID: batchID, Type: TypeStatusSwitch}
		var p StatusSwitch
		if err := rows.Scan(&a.ID, &a.Date, &a.Notes, &a.CreatedAt, &p.NewStatus); err != nil {
			return nil, err
		}
		a.Payload = p
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) listConsumptions(ctx context.Context, batchID int64) ([]Activity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, date, COALESCE(notes,''), created_at, product_id, quantity, unit
		FROM product_consumptions WHERE batch_id = $1
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		a := Activity{BatchID: batchID, Type: TypeProductConsumption}
		var p ProductConsumption
		if err := rows.Scan(&a.ID, &a.Date, &a.Notes, &a.CreatedAt, &p.ProductID, &p.Quantity, &p.Unit); err != nil {
			return nil, err
		}
		a.Payload = p
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) listWeights(ctx context.Context, batchID int64) ([]Activity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, date, COALESCE(notes,''), created_at, average_weight, sample_size, unit
		FROM weight_measurements WHERE batch_id = $1
	`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		a := Activity{BatchID: batchID, Type: TypeWeightMeasurement}
		var p WeightMeasurement
		if err := rows.Scan(&a.ID, &a.Date, &a.Notes, &a.CreatedAt, &p.AverageWeight, &p.SampleSize, &p.Unit); err != nil {
			return nil, err
		}
		a.Payload = p
		out = append(out, a)
	}
	return out, rows.Err()
}
