package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/chris/unhook/internal/streak"
)

const dayFormat = "2006-01-02"

// StreakStore adapts the single-row streak_state table to streak.Store.
type StreakStore struct {
	db *DB
}

func (d *DB) StreakStore() *StreakStore {
	return &StreakStore{db: d}
}

// Load returns the persisted streak state. A missing row or an undecodable
// stored date degrades to the zero state rather than an error, so a
// corrupted record resets the streak instead of crashing.
func (s *StreakStore) Load() (streak.State, error) {
	var count int
	var lastSuccess sql.NullString
	err := s.db.conn.QueryRow("SELECT count, last_success FROM streak_state WHERE id = 1").
		Scan(&count, &lastSuccess)
	if err == sql.ErrNoRows {
		return streak.State{}, nil
	}
	if err != nil {
		return streak.State{}, fmt.Errorf("loading streak state: %w", err)
	}

	if count <= 0 || !lastSuccess.Valid {
		return streak.State{}, nil
	}
	day, err := time.Parse(dayFormat, lastSuccess.String)
	if err != nil {
		return streak.State{}, nil
	}
	return streak.State{Count: count, LastSuccess: day}, nil
}

// Save upserts the streak row in a single statement, keeping the
// read-modify-write cycle of the tracker atomic at the storage level.
func (s *StreakStore) Save(st streak.State) error {
	var lastSuccess any
	if !st.LastSuccess.IsZero() {
		lastSuccess = st.LastSuccess.Format(dayFormat)
	}
	_, err := s.db.conn.Exec(`
		INSERT INTO streak_state (id, count, last_success) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET count = excluded.count, last_success = excluded.last_success`,
		st.Count, lastSuccess,
	)
	if err != nil {
		return fmt.Errorf("saving streak state: %w", err)
	}
	return nil
}
