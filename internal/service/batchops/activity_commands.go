package batchops

import (
	"context"
	"errors"
	"time"

	"github.com/pticevod/poultry-ledger/internal/apperr"
	"github.com/pticevod/poultry-ledger/internal/domain/activities"
	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/domain/units"
)

// Alert thresholds in the canonical unit of each dimension.
var lowStockThresholds = map[units.Dimension]float64{
	units.Mass:   1000, // grams
	units.Volume: 1000, // milliliters
	units.Count:  10,   // pieces
}

type MortalityInput struct {
	BatchID        int64
	NumberOfDeaths int
	Sex            batches.Sex
	Date           time.Time
	Notes          string
}

func (s *Service) RegisterMortality(ctx context.Context, in MortalityInput) (*activities.Activity, error) {
	v := &apperr.ValidationError{}
	if in.NumberOfDeaths <= 0 {
		v.Add("numberOfDeaths", "must be greater than zero, got %d", in.NumberOfDeaths)
	}
	if !in.Sex.Valid() {
		v.Add("sex", "unknown sex %q", in.Sex)
	}
	validateEnvelope(v, in.Date, in.Notes)
	if err := v.Err(); err != nil {
		return nil, s.reject(err)
	}

	var (
		act        *activities.Activity
		batchName  string
		population int
	)
	err := s.db.InTx(ctx, func(st Stores) error {
		b, err := st.Batches.GetByID(ctx, in.BatchID, true)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.NotFound("batch", in.BatchID)
		}

		available := b.CountBySex(in.Sex)
		if available < in.NumberOfDeaths {
			v := &apperr.ValidationError{}
			v.Add("numberOfDeaths", "only %d %s birds available, requested %d", available, in.Sex, in.NumberOfDeaths)
			return v
		}

		act = &activities.Activity{
			BatchID: b.ID,
			Date:    in.Date,
			Notes:   in.Notes,
			Payload: activities.Mortality{NumberOfDeaths: in.NumberOfDeaths, Sex: in.Sex},
		}
		if err := st.Activities.Insert(ctx, act); err != nil {
			return err
		}

		male, female, unsexed := b.MaleCount, b.FemaleCount, b.UnsexedCount
		switch in.Sex {
		case batches.SexMale:
			male = floorZero(male - in.NumberOfDeaths)
		case batches.SexFemale:
			female = floorZero(female - in.NumberOfDeaths)
		case batches.SexUnsexed:
			unsexed = floorZero(unsexed - in.NumberOfDeaths)
		}
		if err := st.Batches.UpdateCounts(ctx, b.ID, male, female, unsexed); err != nil {
			return err
		}

		batchName = b.Name
		population = male + female + unsexed
		return nil
	})
	if err != nil {
		return nil, s.reject(err)
	}

	s.metrics.ActivityRecorded(string(activities.TypeMortality))
	s.log.Info("mortality registered", "batch", in.BatchID, "deaths", in.NumberOfDeaths, "sex", in.Sex, "population", population)
	if s.notifier != nil {
		s.notifier.MortalityRegistered(batchName, in.NumberOfDeaths, string(in.Sex), population)
	}
	return act, nil
}

type StatusSwitchInput struct {
	BatchID   int64
	NewStatus batches.Status
	Date      time.Time
	Notes     string
}

func (s *Service) SwitchStatus(ctx context.Context, in StatusSwitchInput) (*activities.Activity, error) {
	v := &apperr.ValidationError{}
	if !in.NewStatus.Valid() {
		v.Add("newStatus", "unknown status %q", in.NewStatus)
	}
	validateEnvelope(v, in.Date, in.Notes)
	if err := v.Err(); err != nil {
		return nil, s.reject(err)
	}

	var act *activities.Activity
	err := s.db.InTx(ctx, func(st Stores) error {
		b, err := st.Batches.GetByID(ctx, in.BatchID, true)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.NotFound("batch", in.BatchID)
		}

		if !b.Status.CanTransitionTo(in.NewStatus) {
			v := &apperr.ValidationError{}
			v.Add("newStatus", "cannot switch from %s to %s; valid targets: %s",
				b.Status, in.NewStatus, statusTargets(b.Status))
			return v
		}

		act = &activities.Activity{
			BatchID: b.ID,
			Date:    in.Date,
			Notes:   in.Notes,
			Payload: activities.StatusSwitch{NewStatus: in.NewStatus},
		}
		if err := st.Activities.Insert(ctx, act); err != nil {
			return err
		}
		return st.Batches.UpdateStatus(ctx, b.ID, in.NewStatus)
	})
	if err != nil {
		return nil, s.reject(err)
	}

	s.metrics.ActivityRecorded(string(activities.TypeStatusSwitch))
	s.log.Info("status switched", "batch", in.BatchID, "status", in.NewStatus)
	return act, nil
}

type ConsumptionInput struct {
	BatchID   int64
	ProductID int64
	Quantity  float64
	Unit      units.Unit
	Date      time.Time
	Notes     string
}

func (s *Service) RegisterConsumption(ctx context.Context, in ConsumptionInput) (*activities.Activity, error) {
	v := &apperr.ValidationError{}
	if in.Quantity <= 0 {
		v.Add("stock", "must be greater than zero, got %v", in.Quantity)
	}
	if !in.Unit.Valid() {
		v.Add("unitOfMeasure", "unknown unit %q", in.Unit)
	}
	validateEnvelope(v, in.Date, in.Notes)
	if err := v.Err(); err != nil {
		return nil, s.reject(err)
	}

	var (
		act         *activities.Activity
		productName string
		productUnit units.Unit
		remaining   float64
	)
	err := s.db.InTx(ctx, func(st Stores) error {
		b, err := st.Batches.GetByID(ctx, in.BatchID, false)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.NotFound("batch", in.BatchID)
		}
		p, err := st.Products.GetByID(ctx, in.ProductID, true)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound("product", in.ProductID)
		}

		converted, err := units.Convert(in.Quantity, in.Unit, p.Unit)
		if err != nil {
			var ce *units.ConversionError
			if errors.As(err, &ce) {
				v := &apperr.ValidationError{}
				v.Add("unitOfMeasure", "%v", ce)
				return v
			}
			return err
		}
		if converted > p.Stock {
			v := &apperr.ValidationError{}
			v.Add("stock", "requested %v %s but only %v %s in stock", in.Quantity, in.Unit, p.Stock, p.Unit)
			return v
		}

		act = &activities.Activity{
			BatchID: b.ID,
			Date:    in.Date,
			Notes:   in.Notes,
			Payload: activities.ProductConsumption{ProductID: p.ID, Quantity: in.Quantity, Unit: in.Unit},
		}
		if err := st.Activities.Insert(ctx, act); err != nil {
			return err
		}

		remaining = p.Stock - converted
		productName = p.Name
		productUnit = p.Unit
		return st.Products.UpdateStock(ctx, p.ID, remaining)
	})
	if err != nil {
		return nil, s.reject(err)
	}

	s.metrics.ActivityRecorded(string(activities.TypeProductConsumption))
	s.log.Info("consumption registered", "batch", in.BatchID, "product", in.ProductID,
		"quantity", in.Quantity, "unit", in.Unit, "remaining", remaining)
	s.checkLowStock(productName, remaining, productUnit)
	return act, nil
}

func (s *Service) checkLowStock(name string, stock float64, unit units.Unit) {
	if s.notifier == nil {
		return
	}
	dim := unit.Dimension()
	canonical, err := units.Convert(stock, unit, units.Canonical(dim))
	if err != nil {
		return
	}
	if canonical < lowStockThresholds[dim] {
		s.notifier.LowProductStock(name, stock, string(unit))
	}
}

type WeightInput struct {
	BatchID       int64
	AverageWeight float64
	SampleSize    int
	Unit          units.Unit
	Date          time.Time
	Notes         string
}

// RegisterWeight appends a weight sample to the ledger. It is the only
// activity that mutates nothing: purely observational history.
func (s *Service) RegisterWeight(ctx context.Context, in WeightInput) (*activities.Activity, error) {
	v := &apperr.ValidationError{}
	if in.AverageWeight <= 0 {
		v.Add("averageWeight", "must be greater than zero, got %v", in.AverageWeight)
	}
	if in.SampleSize <= 0 {
		v.Add("sampleSize", "must be greater than zero, got %d", in.SampleSize)
	}
	if !in.Unit.Valid() {
		v.Add("unitOfMeasure", "unknown unit %q", in.Unit)
	} else if !in.Unit.IsMass() {
		v.Add("unitOfMeasure", "%s is not a mass unit", in.Unit)
	}
	validateEnvelope(v, in.Date, in.Notes)
	if err := v.Err(); err != nil {
		return nil, s.reject(err)
	}

	var act *activities.Activity
	err := s.db.InTx(ctx, func(st Stores) error {
		b, err := st.Batches.GetByID(ctx, in.BatchID, false)
		if err != nil {
			return err
		}
		if b == nil {
			return apperr.NotFound("batch", in.BatchID)
		}
		if b.Status != batches.StatusActive {
			v := &apperr.ValidationError{}
			v.Add("status", "batch is %s; weight measurement requires an active batch", b.Status)
			return v
		}

		act = &activities.Activity{
			BatchID: b.ID,
			Date:    in.Date,
			Notes:   in.Notes,
			Payload: activities.WeightMeasurement{AverageWeight: in.AverageWeight, SampleSize: in.SampleSize, Unit: in.Unit},
		}
		return st.Activities.Insert(ctx, act)
	})
	if err != nil {
		return nil, s.reject(err)
	}

	s.metrics.ActivityRecorded(string(activities.TypeWeightMeasurement))
	s.log.Info("weight registered", "batch", in.BatchID, "avg", in.AverageWeight, "sample", in.SampleSize, "unit", in.Unit)
	return act, nil
}
