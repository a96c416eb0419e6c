package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/snapshot"
)

// ShowScheduleCmd creates the showSchedule command
func ShowScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "showSchedule <schedule_id>",
		Short: "Show one stored schedule in full",
		Long:  "Show a stored schedule with all shifts and shortfalls. Pass --snapshot to print employee and group names instead of IDs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := app.Store.GetSchedule(app.Ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load schedule: %w", err)
			}

			var snap *model.Snapshot
			if snapshotPath, _ := cmd.Flags().GetString("snapshot"); snapshotPath != "" {
				if snap, err = snapshot.Load(snapshotPath); err != nil {
					return err
				}
			}

			fmt.Printf("\n📋 Dienstplan %s\n\n", schedule.Week)
			printSchedule(schedule, snap)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("snapshot", "", "Snapshot file for resolving display names")

	return cmd
}
