// Package batchops holds the command handlers that mutate batch and
// product state. Every command follows the same shape: validate against
// current aggregate state, append an immutable ledger activity, mutate the
// aggregate, all inside one transaction. Nothing persists on a rejected
// command.
package batchops

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pticevod/poultry-ledger/internal/apperr"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/infra/metrics"
	"github.com/pticevod/poultry-ledger/internal/infra/notify"
)

const (
	nameMaxLen  = 100
	notesMaxLen = 500
)

type Service struct {
	db       DB
	log      *slog.Logger
	metrics  *metrics.Metrics
	notifier notify.Notifier // may be nil
}

func New(db DB, log *slog.Logger, m *metrics.Metrics, n notify.Notifier) *Service {
	return &Service{db: db, log: log, metrics: m, notifier: n}
}

type CreateBatchInput struct {
	Name         string
	Breed        string
	Shed         string
	StartDate    time.Time
	MaleCount    int
	FemaleCount  int
	UnsexedCount int
}

func (s *Service) CreateBatch(ctx context.Context, in CreateBatchInput) (*batches.Batch, error) {
	v := &apperr.ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		v.Add("name", "is required")
	} else if len(name) > nameMaxLen {
		v.Add("name", "must be at most %d characters, got %d", nameMaxLen, len(name))
	}
	if len(in.Breed) > nameMaxLen {
		v.Add("breed", "must be at most %d characters, got %d", nameMaxLen, len(in.Breed))
	}
	if len(in.Shed) > nameMaxLen {
		v.Add("shed", "must be at most %d characters, got %d", nameMaxLen, len(in.Shed))
	}
	if in.StartDate.IsZero() {
		v.Add("startDate", "is required")
	}
	if in.MaleCount < 0 {
		v.Add("maleCount", "must not be negative, got %d", in.MaleCount)
	}
	if in.FemaleCount < 0 {
		v.Add("femaleCount", "must not be negative, got %d", in.FemaleCount)
	}
	if in.UnsexedCount < 0 {
		v.Add("unsexedCount", "must not be negative, got %d", in.UnsexedCount)
	}
	population := in.MaleCount + in.FemaleCount + in.UnsexedCount
	if in.MaleCount >= 0 && in.FemaleCount >= 0 && in.UnsexedCount >= 0 && population <= 0 {
		v.Add("maleCount", "population must be greater than zero, got %d", population)
	}
	if err := v.Err(); err != nil {
		return nil, s.reject(err)
	}

	b := &batches.Batch{
		Name:              name,
		Breed:             strings.TrimSpace(in.Breed),
		Shed:              strings.TrimSpace(in.Shed),
		StartDate:         in.StartDate,
		Status:            batches.InitialStatus(in.StartDate, time.Now()),
		InitialPopulation: population,
		MaleCount:         in.MaleCount,
		FemaleCount:       in.FemaleCount,
		UnsexedCount:      in.UnsexedCount,
	}

	err := s.db.InTx(ctx, func(st Stores) error {
		existing, err := st.Batches.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			v := &apperr.ValidationError{}
			v.Add("name", "batch %q already exists", name)
			return v
		}
		return st.Batches.Create(ctx, b)
	})
	if err != nil {
		return nil, s.reject(err)
	}
	s.log.Info("batch created", "id", b.ID, "name", b.Name, "population", population, "status", b.Status)
	return b, nil
}

func (s *Service) RenameBatch(ctx context.Context, id int64, newName string) (*batches.Batch, error) {
	v := &apperr.ValidationError{}
	name := strings.TrimSpace(newName)
	if name == "" {
		v.Add("name", "is required")
	} else if len(name) > nameMaxLen {
		v.Add("name", "must be at most %d characters, got %d", nameMaxLen, len(name))
	}
	if err := v.Err(); err != nil {
		return nil, s.reject(err)
	}

	var out *batches.Batch
	err := s.db.InTx(ctx, func(st Stores) error {
		b, err := st.Batches.GetByID(ctx, id, true)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.NotFound("batch", id)
		}
		existing, err := st.Batches.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			v := &apperr.ValidationError{}
			v.Add("name", "batch %q already exists", name)
			return v
		}
		out, err = st.Batches.UpdateName(ctx, id, name)
		return err
	})
	if err != nil {
		return nil, s.reject(err)
	}
	return out, nil
}

// validateEnvelope covers the fields every activity shares.
func validateEnvelope(v *apperr.ValidationError, date time.Time, notes string) {
	if date.IsZero() {
		v.Add("date", "is required")
	}
	if len(notes) > notesMaxLen {
		v.Add("notes", "must be at most %d characters, got %d", notesMaxLen, len(notes))
	}
}

// reject records why a command did not go through and passes the error on.
func (s *Service) reject(err error) error {
	switch {
	case apperr.IsNotFound(err):
		s.metrics.CommandRejected(metrics.ReasonNotFound)
		s.log.Warn("command rejected", "err", err)
	default:
		if _, ok := apperr.AsValidation(err); ok {
			s.metrics.CommandRejected(metrics.ReasonValidation)
			s.log.Warn("command rejected", "err", err)
		} else {
			s.log.Error("command failed", "err", err)
		}
	}
	return err
}

func statusTargets(s batches.Status) string {
	ts := s.NextStatuses()
	if len(ts) == 0 {
		return "none"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
