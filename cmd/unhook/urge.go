package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/unhook/internal/coach"
)

var urgeCmd = &cobra.Command{
	Use:   "urge",
	Short: "Get help through an urge right now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.coach.Complete(cmd.Context(), coach.BreakUrge, "")
		a.logCompletion(coach.BreakUrge, err)
		if err != nil {
			return err
		}

		fmt.Println(messageStyle.Render(res.Text))

		st, err := a.tracker.RecordSuccess(time.Now())
		if err != nil {
			return fmt.Errorf("updating streak: %w", err)
		}
		fmt.Println(streakStyle.Render(streakLine(st)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urgeCmd)
}
