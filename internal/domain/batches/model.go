package batches

import "time"

type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnsexed Sex = "unsexed"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnsexed:
		return true
	}
	return false
}

type Batch struct {
	ID                int64
	Name              string
	Breed             string // optional, "" when unset
	Shed              string // optional, "" when unset
	StartDate         time.Time
	Status            Status
	InitialPopulation int
	MaleCount         int
	FemaleCount       int
	UnsexedCount      int
	CreatedAt         time.Time
}

// Population is derived, never stored: the sum of the three sex counters.
func (b *Batch) Population() int {
	return b.MaleCount + b.FemaleCount + b.UnsexedCount
}

func (b *Batch) CountBySex(s Sex) int {
	switch s {
	case SexMale:
		return b.MaleCount
	case SexFemale:
		return b.FemaleCount
	case SexUnsexed:
		return b.UnsexedCount
	}
	return 0
}
