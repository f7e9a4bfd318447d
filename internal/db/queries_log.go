package db

import (
	"fmt"
	"time"
)

type CompletionEntry struct {
	ID        int64  `json:"id"`
	UseCase   string `json:"use_case"`
	Outcome   string `json:"outcome"`
	Detail    string `json:"detail,omitempty"`
	Day       string `json:"day"`
	CreatedAt string `json:"created_at"`
}

type Stats struct {
	Days          int `json:"days"`
	UrgeOK        int `json:"urge_ok"`
	UrgeFailed    int `json:"urge_failed"`
	HobbyOK       int `json:"hobby_ok"`
	HobbyFailed   int `json:"hobby_failed"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// LogCompletion records one orchestrator attempt and its outcome.
func (d *DB) LogCompletion(useCase, outcome, detail string, day time.Time) (int64, error) {
	res, err := d.conn.Exec(
		"INSERT INTO completion_log (use_case, outcome, detail, day) VALUES (?, ?, ?, ?)",
		useCase, outcome, nullStr(detail), day.Format(dayFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("logging completion: %w", err)
	}
	return res.LastInsertId()
}

// GetStats returns outcome counts within the day window plus streak numbers.
// Streaks come from the full history of successful urge days; today should
// be the current date in the user's timezone.
func (d *DB) GetStats(days int, today time.Time) (*Stats, error) {
	stats := &Stats{Days: days}

	rows, err := d.conn.Query(
		`SELECT use_case, outcome, COUNT(*) FROM completion_log
		 WHERE day >= date(?, '-' || ? || ' days')
		 GROUP BY use_case, outcome`,
		today.Format(dayFormat), days,
	)
	if err != nil {
		return nil, fmt.Errorf("counting completions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var useCase, outcome string
		var count int
		if err := rows.Scan(&useCase, &outcome, &count); err != nil {
			return nil, fmt.Errorf("scanning completion count: %w", err)
		}
		switch {
		case useCase == "urge" && outcome == "ok":
			stats.UrgeOK = count
		case useCase == "urge":
			stats.UrgeFailed += count
		case outcome == "ok":
			stats.HobbyOK = count
		default:
			stats.HobbyFailed += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dates, err := d.successDays()
	if err != nil {
		return nil, err
	}
	stats.CurrentStreak = computeCurrentStreak(dates, today)
	stats.LongestStreak = computeLongestStreak(dates)

	return stats, nil
}

// RecentCompletions returns the latest log entries, newest first.
func (d *DB) RecentCompletions(limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(
		`SELECT id, use_case, outcome, COALESCE(detail,''), day, created_at
		 FROM completion_log ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying completion log: %w", err)
	}
	defer rows.Close()

	var out []CompletionEntry
	for rows.Next() {
		var e CompletionEntry
		if err := rows.Scan(&e.ID, &e.UseCase, &e.Outcome, &e.Detail, &e.Day, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning completion entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (d *DB) successDays() ([]string, error) {
	rows, err := d.conn.Query(
		`SELECT DISTINCT day FROM completion_log
		 WHERE use_case = 'urge' AND outcome = 'ok'
		 ORDER BY day ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying success days: %w", err)
	}
	defer rows.Close()
	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning success day: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// computeCurrentStreak walks backward from the end of sorted success days.
// The streak is only live if the most recent day is today or yesterday.
func computeCurrentStreak(dates []string, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	last, err := time.Parse(dayFormat, dates[len(dates)-1])
	if err != nil {
		return 0
	}

	if todayDate.Sub(last) > 24*time.Hour {
		return 0
	}

	streak := 1
	for i := len(dates) - 2; i >= 0; i-- {
		cur, err := time.Parse(dayFormat, dates[i])
		if err != nil {
			break
		}
		next, _ := time.Parse(dayFormat, dates[i+1])
		if next.Sub(cur) == 24*time.Hour {
			streak++
		} else {
			break
		}
	}
	return streak
}

// computeLongestStreak walks forward through sorted days tracking the max
// consecutive run.
func computeLongestStreak(dates []string) int {
	if len(dates) == 0 {
		return 0
	}

	longest := 1
	current := 1
	for i := 1; i < len(dates); i++ {
		prev, err1 := time.Parse(dayFormat, dates[i-1])
		cur, err2 := time.Parse(dayFormat, dates[i])
		if err1 != nil || err2 != nil {
			current = 1
			continue
		}
		if cur.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
