package batches

import "time"

type Status string

const (
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusProcessed Status = "processed"
	StatusForSale   Status = "for_sale"
	StatusSold      Status = "sold"
	StatusCanceled  Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusActive, StatusProcessed, StatusForSale, StatusSold, StatusCanceled:
		return true
	}
	return false
}

// transitions is the full table of allowed status switches. Sold and
// Canceled are terminal; Planned batches cannot be switched by hand (they
// become active through their start date).
var transitions = map[Status][]Status{
	StatusActive:    {StatusProcessed, StatusForSale, StatusCanceled},
	StatusProcessed: {StatusForSale},
	StatusForSale:   {StatusSold},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// NextStatuses returns the allowed targets from s; empty for terminal states.
func (s Status) NextStatuses() []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])
	return out
}

// InitialStatus is the status a batch gets at creation: planned when the
// start date is still ahead, active otherwise.
func InitialStatus(startDate, now time.Time) Status {
	if startDate.After(now) {
		return StatusPlanned
	}
	return StatusActive
}
