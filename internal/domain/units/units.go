package units

import "fmt"

// Dimension is the physical quantity kind a unit measures. Conversion is
// only defined between units of the same dimension.
type Dimension string

const (
	Mass   Dimension = "mass"
	Volume Dimension = "volume"
	Count  Dimension = "count"
)

type Unit string

const (
	Milligram Unit = "mg"
	Gram      Unit = "g"
	Kilogram  Unit = "kg"
	Milliliter Unit = "ml"
	Liter      Unit = "l"
	Piece      Unit = "pcs"
)

// factor is relative to the canonical unit of the dimension:
// gram for mass, milliliter for volume, piece for count.
type def struct {
	dim    Dimension
	factor float64
}

var defs = map[Unit]def{
	Milligram:  {Mass, 0.001},
	Gram:       {Mass, 1},
	Kilogram:   {Mass, 1000},
	Milliliter: {Volume, 1},
	Liter:      {Volume, 1000},
	Piece:      {Count, 1},
}

func (u Unit) Valid() bool {
	_, ok := defs[u]
	return ok
}

// Dimension returns the unit's dimension, or "" for an unknown unit.
func (u Unit) Dimension() Dimension {
	return defs[u].dim
}

func (u Unit) IsMass() bool {
	return defs[u].dim == Mass
}

// Canonical returns the unit quantities of a dimension are normalized to.
func Canonical(d Dimension) Unit {
	switch d {
	case Mass:
		return Gram
	case Volume:
		return Milliliter
	case Count:
		return Piece
	}
	return ""
}

// All returns the known units in a stable order.
func All() []Unit {
	return []Unit{Milligram, Gram, Kilogram, Milliliter, Liter, Piece}
}

// ConversionError is returned when a quantity cannot be expressed in the
// target unit: either unit is unknown, or the dimensions differ.
type ConversionError struct {
	From Unit
	To   Unit
}

func (e *ConversionError) Error() string {
	fd, fok := defs[e.From]
	td, tok := defs[e.To]
	if !fok {
		return fmt.Sprintf("unknown unit %q", e.From)
	}
	if !tok {
		return fmt.Sprintf("unknown unit %q", e.To)
	}
	return fmt.Sprintf("cannot convert %s (%s) to %s (%s)", e.From, fd.dim, e.To, td.dim)
}

// Convert expresses value, given in from, in the unit to. Both units must
// belong to the same dimension.
func Convert(value float64, from, to Unit) (float64, error) {
	fd, fok := defs[from]
	td, tok := defs[to]
	if !fok || !tok || fd.dim != td.dim {
		return 0, &ConversionError{From: from, To: to}
	}
	return value * fd.factor / td.factor, nil
}
