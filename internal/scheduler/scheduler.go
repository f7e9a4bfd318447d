// Package scheduler runs the daily streak-risk reminder. If no successful
// urge completion has been recorded for the current day by the time the
// cron fires, a short nudge is posted to the configured webhook.
package scheduler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/chris/unhook/internal/streak"
)

type Scheduler struct {
	cron       *cron.Cron
	tracker    *streak.Tracker
	loc        *time.Location
	webhookURL string
}

func New(tracker *streak.Tracker, loc *time.Location, webhookURL string) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		tracker:    tracker,
		loc:        loc,
		webhookURL: webhookURL,
	}
}

// Start registers the reminder job and starts the cron loop. An invalid
// expression is an error; everything after that is logged, not returned.
func (s *Scheduler) Start(cronExpr string) error {
	if _, err := s.cron.AddFunc(cronExpr, s.checkStreak); err != nil {
		return fmt.Errorf("invalid reminder cron %q: %w", cronExpr, err)
	}
	s.cron.Start()
	log.Printf("scheduler: reminder registered with cron %q", cronExpr)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) checkStreak() {
	st, err := s.tracker.Current()
	if err != nil {
		log.Printf("scheduler: loading streak: %v", err)
		return
	}

	today := streak.DayOf(time.Now(), s.loc)
	if st.Count > 0 && st.LastSuccess.Equal(today) {
		return // already succeeded today, nothing to nag about
	}

	var msg string
	switch {
	case st.Count == 1:
		msg = "Your 1-day streak is at risk. Check in before midnight to keep it going."
	case st.Count > 1:
		msg = fmt.Sprintf("Your %d-day streak is at risk. Check in before midnight to keep it going.", st.Count)
	default:
		msg = "No streak yet. Beat one urge today to start one."
	}

	if s.webhookURL == "" {
		log.Printf("scheduler: %s (no webhook configured)", msg)
		return
	}
	if err := postWebhook(s.webhookURL, msg); err != nil {
		log.Printf("scheduler: webhook failed: %v", err)
		return
	}
	log.Printf("scheduler: reminder delivered")
}

func postWebhook(url, content string) error {
	payload := map[string]string{"content": content}
	body, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
