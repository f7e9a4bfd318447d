package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/unhook/config"
	"github.com/chris/unhook/internal/coach"
	"github.com/chris/unhook/internal/db"
	"github.com/chris/unhook/internal/llm"
	"github.com/chris/unhook/internal/streak"
)

var rootCmd = &cobra.Command{
	Use:   "unhook",
	Short: "A craving companion: break urges, build a daily streak",
	Long: `unhook helps you through urges with short LLM-coached nudges and
tracks a streak of consecutive days you made it through.

Quick start:
  unhook urge                 # get through the next few minutes
  unhook hobbies climbing     # things to do instead
  unhook streak               # where you stand
  unhook serve                # HTTP API + daily reminder`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles everything a command needs. Close the db when done.
type app struct {
	cfg     *config.Config
	db      *db.DB
	coach   *coach.Coach
	tracker *streak.Tracker
	loc     *time.Location
}

func openApp() (*app, error) {
	cfg := config.Load()

	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
		}
		loc = l
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	client, err := llm.NewClient(llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.Credential(),
		Model:    cfg.LLMModel,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		database.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		db:      database,
		coach:   coach.New(client),
		tracker: streak.NewTracker(database.StreakStore(), loc),
		loc:     loc,
	}, nil
}

func (a *app) Close() {
	a.db.Close()
}

// logCompletion records an attempt in the history log; failures there never
// fail the command.
func (a *app) logCompletion(useCase coach.UseCase, completionErr error) {
	outcome, detail := "ok", ""
	if completionErr != nil {
		outcome, detail = "error", completionErr.Error()
	}
	today := streak.DayOf(time.Now(), a.loc)
	_, _ = a.db.LogCompletion(string(useCase), outcome, detail, today)
}
