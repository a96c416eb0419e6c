package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ListSchedulesCmd creates the listSchedules command
func ListSchedulesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSchedules",
		Short: "List all stored schedules, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schedules, err := app.Store.GetSchedules(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list schedules: %w", err)
			}

			if len(schedules) == 0 {
				fmt.Println("\nKeine Dienstpläne gespeichert.")
				return nil
			}

			fmt.Printf("\n%d Dienstpläne:\n\n", len(schedules))

			// Colored status goes last so the escape codes cannot break padding
			fmt.Printf("%s%-38s %-9s %-18s %-9s %s%s\n",
				colorBold, "ID", "Woche", "Erstellt", "Abdeckung", "Status", colorReset)
			fmt.Println(strings.Repeat("-", 92))

			for _, schedule := range schedules {
				fmt.Printf("%-38s %-9s %-18s %-9.1f %s\n",
					schedule.ID,
					schedule.Week,
					schedule.CreatedAt.Format("2006-01-02 15:04"),
					schedule.Scores.Coverage,
					statusLabel(schedule.Status))
			}
			fmt.Println()

			return nil
		},
	}
}
