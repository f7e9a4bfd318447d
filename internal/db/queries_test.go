package db

import (
	"testing"
	"time"

	"github.com/chris/unhook/internal/streak"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func day(s string) time.Time {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Streak state ---

func TestStreakStore_EmptyIsZeroState(t *testing.T) {
	d := openTestDB(t)

	st, err := d.StreakStore().Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Count != 0 || !st.LastSuccess.IsZero() {
		t.Errorf("expected zero state, got %+v", st)
	}
}

func TestStreakStore_SaveAndLoad(t *testing.T) {
	d := openTestDB(t)
	store := d.StreakStore()

	want := streak.State{Count: 4, LastSuccess: day("2025-03-10")}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Count != 4 {
		t.Errorf("expected count 4, got %d", got.Count)
	}
	if !got.LastSuccess.Equal(want.LastSuccess) {
		t.Errorf("expected last success %v, got %v", want.LastSuccess, got.LastSuccess)
	}

	// Overwrite on a second save.
	if err := store.Save(streak.State{Count: 5, LastSuccess: day("2025-03-11")}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ = store.Load()
	if got.Count != 5 {
		t.Errorf("expected count 5 after overwrite, got %d", got.Count)
	}
}

func TestStreakStore_MalformedDateDegradesToReset(t *testing.T) {
	d := openTestDB(t)

	_, err := d.conn.Exec("INSERT INTO streak_state (id, count, last_success) VALUES (1, 7, 'not-a-date')")
	if err != nil {
		t.Fatalf("seeding bad row: %v", err)
	}

	st, err := d.StreakStore().Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Count != 0 || !st.LastSuccess.IsZero() {
		t.Errorf("expected zero state for undecodable date, got %+v", st)
	}
}

func TestStreakStore_WorksWithTracker(t *testing.T) {
	d := openTestDB(t)
	tr := streak.NewTracker(d.StreakStore(), time.UTC)

	if _, err := tr.RecordSuccess(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RecordSuccess: %v", err)
	}
	st, err := tr.RecordSuccess(time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RecordSuccess: %v", err)
	}
	if st.Count != 2 {
		t.Errorf("expected count 2, got %d", st.Count)
	}
}

// --- Completion log ---

func TestLogCompletionAndStats(t *testing.T) {
	d := openTestDB(t)

	for _, e := range []struct {
		useCase, outcome, day string
	}{
		{"urge", "ok", "2025-03-08"},
		{"urge", "ok", "2025-03-09"},
		{"urge", "ok", "2025-03-10"},
		{"urge", "error", "2025-03-10"},
		{"hobby", "ok", "2025-03-10"},
	} {
		if _, err := d.LogCompletion(e.useCase, e.outcome, "", day(e.day)); err != nil {
			t.Fatalf("LogCompletion: %v", err)
		}
	}

	stats, err := d.GetStats(30, day("2025-03-10"))
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.UrgeOK != 3 {
		t.Errorf("expected 3 urge successes, got %d", stats.UrgeOK)
	}
	if stats.UrgeFailed != 1 {
		t.Errorf("expected 1 urge failure, got %d", stats.UrgeFailed)
	}
	if stats.HobbyOK != 1 {
		t.Errorf("expected 1 hobby success, got %d", stats.HobbyOK)
	}
	if stats.CurrentStreak != 3 {
		t.Errorf("expected current streak 3, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Errorf("expected longest streak 3, got %d", stats.LongestStreak)
	}
}

func TestGetStats_StreakGoesStaleAfterMissedDay(t *testing.T) {
	d := openTestDB(t)

	d.LogCompletion("urge", "ok", "", day("2025-03-08"))
	d.LogCompletion("urge", "ok", "", day("2025-03-09"))

	stats, err := d.GetStats(30, day("2025-03-11"))
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.CurrentStreak != 0 {
		t.Errorf("expected stale streak 0, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 2 {
		t.Errorf("expected longest streak 2, got %d", stats.LongestStreak)
	}
}

func TestGetStats_LongestSurvivesReset(t *testing.T) {
	d := openTestDB(t)

	for _, s := range []string{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04", "2025-03-09", "2025-03-10"} {
		d.LogCompletion("urge", "ok", "", day(s))
	}

	stats, err := d.GetStats(30, day("2025-03-10"))
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.CurrentStreak != 2 {
		t.Errorf("expected current streak 2, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 4 {
		t.Errorf("expected longest streak 4, got %d", stats.LongestStreak)
	}
}

func TestRecentCompletions(t *testing.T) {
	d := openTestDB(t)

	d.LogCompletion("urge", "ok", "", day("2025-03-09"))
	d.LogCompletion("hobby", "error", "completion service returned 502", day("2025-03-10"))

	entries, err := d.RecentCompletions(10)
	if err != nil {
		t.Fatalf("RecentCompletions: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].UseCase != "hobby" || entries[0].Outcome != "error" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[0].Detail != "completion service returned 502" {
		t.Errorf("expected detail preserved, got %q", entries[0].Detail)
	}
}
