package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chris/unhook/internal/coach"
)

var hobbiesCmd = &cobra.Command{
	Use:   "hobbies [interests...]",
	Short: "Suggest things to do instead",
	Long: `Ask for hobby suggestions tailored to your interests, e.g.

  unhook hobbies woodworking, being outside

With no arguments, suggestions lean on general interests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		interests := strings.Join(args, " ")
		res, err := a.coach.Complete(cmd.Context(), coach.SuggestHobby, interests)
		a.logCompletion(coach.SuggestHobby, err)
		if err != nil {
			return err
		}

		if len(res.Suggestions) == 0 {
			fmt.Println(res.Text)
			return nil
		}
		for i, s := range res.Suggestions {
			fmt.Printf("%s %s\n", numberStyle.Render(fmt.Sprintf("%d.", i+1)), s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hobbiesCmd)
}
