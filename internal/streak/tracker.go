package streak

import (
	"fmt"
	"time"
)

// Store persists a single streak state. Implementations must return a zero
// State (not an error) when nothing has been recorded yet or the stored
// record is undecodable.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// Tracker wires the pure update rule to a store. Calendar days are computed
// in loc at the moment of each call.
type Tracker struct {
	store Store
	loc   *time.Location
}

func NewTracker(store Store, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{store: store, loc: loc}
}

// RecordSuccess registers a successful urge completion at the given moment
// and returns the resulting state.
func (t *Tracker) RecordSuccess(now time.Time) (State, error) {
	prev, err := t.store.Load()
	if err != nil {
		return State{}, fmt.Errorf("loading streak: %w", err)
	}
	next := Record(prev, DayOf(now, t.loc))
	if next == prev {
		return prev, nil
	}
	if err := t.store.Save(next); err != nil {
		return State{}, fmt.Errorf("saving streak: %w", err)
	}
	return next, nil
}

// Current returns the persisted state without mutating it.
func (t *Tracker) Current() (State, error) {
	return t.store.Load()
}
