package batches

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusActive, StatusProcessed},
		{StatusActive, StatusForSale},
		{StatusActive, StatusCanceled},
		{StatusProcessed, StatusForSale},
		{StatusForSale, StatusSold},
	}
	for _, c := range allowed {
		require.True(t, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}

	denied := []struct{ from, to Status }{
		{StatusActive, StatusSold},
		{StatusActive, StatusActive},
		{StatusProcessed, StatusSold},
		{StatusProcessed, StatusCanceled},
		{StatusForSale, StatusCanceled},
		{StatusPlanned, StatusActive},
	}
	for _, c := range denied {
		require.False(t, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestTerminalStatesHaveNoTargets(t *testing.T) {
	require.Empty(t, StatusSold.NextStatuses())
	require.Empty(t, StatusCanceled.NextStatuses())
	require.ElementsMatch(t,
		[]Status{StatusProcessed, StatusForSale, StatusCanceled},
		StatusActive.NextStatuses())
}

func TestInitialStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, StatusPlanned, InitialStatus(now.Add(24*time.Hour), now))
	require.Equal(t, StatusActive, InitialStatus(now, now))
	require.Equal(t, StatusActive, InitialStatus(now.Add(-time.Minute), now))
}

func TestPopulationAndCountBySex(t *testing.T) {
	b := &Batch{MaleCount: 100, FemaleCount: 70, UnsexedCount: 5}
	require.Equal(t, 175, b.Population())
	require.Equal(t, 100, b.CountBySex(SexMale))
	require.Equal(t, 70, b.CountBySex(SexFemale))
	require.Equal(t, 5, b.CountBySex(SexUnsexed))
	require.Equal(t, 0, b.CountBySex(Sex("other")))
}

func TestSexValid(t *testing.T) {
	require.True(t, SexMale.Valid())
	require.True(t, SexUnsexed.Valid())
	require.False(t, Sex("m").Valid())
}
