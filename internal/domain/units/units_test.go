package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertSameDimension(t *testing.T) {
	cases := []struct {
		value    float64
		from, to Unit
		want     float64
	}{
		{1000, Gram, Kilogram, 1},
		{1, Kilogram, Gram, 1000},
		{2500, Milligram, Gram, 2.5},
		{0.5, Kilogram, Milligram, 500000},
		{1500, Milliliter, Liter, 1.5},
		{2, Liter, Milliliter, 2000},
		{7, Piece, Piece, 7},
		{42, Gram, Gram, 42},
	}
	for _, c := range cases {
		got, err := Convert(c.value, c.from, c.to)
		require.NoError(t, err, "%v %s -> %s", c.value, c.from, c.to)
		require.InDelta(t, c.want, got, 1e-9)
	}
}

func TestConvertCrossDimensionFails(t *testing.T) {
	for _, pair := range [][2]Unit{
		{Gram, Milliliter},
		{Liter, Kilogram},
		{Piece, Gram},
		{Milliliter, Piece},
	} {
		_, err := Convert(1, pair[0], pair[1])
		require.Error(t, err)
		var ce *ConversionError
		require.True(t, errors.As(err, &ce))
		require.Equal(t, pair[0], ce.From)
		require.Equal(t, pair[1], ce.To)
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	_, err := Convert(1, Unit("stone"), Gram)
	require.Error(t, err)
	require.Contains(t, err.Error(), "stone")

	_, err = Convert(1, Gram, Unit(""))
	require.Error(t, err)
}

func TestDimensionAndValidity(t *testing.T) {
	require.True(t, Kilogram.IsMass())
	require.False(t, Liter.IsMass())
	require.False(t, Unit("oz").Valid())
	require.Equal(t, Count, Piece.Dimension())
	require.Equal(t, Dimension(""), Unit("oz").Dimension())
	require.Len(t, All(), 6)
	for _, u := range All() {
		require.True(t, u.Valid())
	}
}
