// Package activities is the batch ledger: immutable, timestamped records of
// real-world events. Rows are only ever appended; corrections are new rows.
package activities

import (
	"time"

	"github.com/pticevod/poultry-ledger/internal/domain/batches"
	"github.com/pticevod/poultry-ledger/internal/domain/units"
)

type Type string

const (
	TypeMortality          Type = "mortality"
	TypeStatusSwitch       Type = "status_switch"
	TypeProductConsumption Type = "product_consumption"
	TypeWeightMeasurement  Type = "weight_measurement"
)

// Activity is the shared envelope. Date is the event time reported by the
// operator; CreatedAt is when the record was written.
type Activity struct {
	ID        int64
	BatchID   int64
	Type      Type
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	Payload   Payload
}

// Payload is a closed union: exactly the four variants below implement it.
type Payload interface {
	ActivityType() Type
}

type Mortality struct {
	NumberOfDeaths int
	Sex            batches.Sex
}

func (Mortality) ActivityType() Type { return TypeMortality }

type StatusSwitch struct {
	NewStatus batches.Status
}

func (StatusSwitch) ActivityType() Type { return TypeStatusSwitch }

// ProductConsumption keeps the quantity and unit the operator entered;
// the product balance moves by the converted amount.
type ProductConsumption struct {
	ProductID int64
	Quantity  float64
	Unit      units.Unit
}

func (ProductConsumption) ActivityType() Type { return TypeProductConsumption }

type WeightMeasurement struct {
	AverageWeight float64
	SampleSize    int
	Unit          units.Unit
}

func (WeightMeasurement) ActivityType() Type { return TypeWeightMeasurement }
