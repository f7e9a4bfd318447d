package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/chris/unhook/internal/streak"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your current streak",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.tracker.Current()
		if err != nil {
			return err
		}

		fmt.Println(streakStyle.Render(streakLine(st)))
		if !st.LastSuccess.IsZero() {
			fmt.Println(dimStyle.Render("last success " + humanize.Time(st.LastSuccess)))
		}

		stats, err := a.db.GetStats(30, time.Now().In(a.loc))
		if err != nil {
			return err
		}
		fmt.Println(dimStyle.Render(fmt.Sprintf("longest ever: %d days · urges beaten in the last 30 days: %d",
			stats.LongestStreak, stats.UrgeOK)))
		return nil
	},
}

func streakLine(st streak.State) string {
	switch st.Count {
	case 0:
		return "no streak yet — beat one urge to start"
	case 1:
		return "🔥 1-day streak"
	default:
		return fmt.Sprintf("🔥 %d-day streak", st.Count)
	}
}

func init() {
	rootCmd.AddCommand(streakCmd)
}
