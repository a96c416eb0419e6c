package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/pkg/core/services"
	"github.com/kitawerk/dienstplan/pkg/snapshot"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <snapshot_file>",
		Short: "Generate a weekly schedule from a snapshot file",
		Long:  "Run the scheduling engine on a snapshot file and store the result as the week's draft. Manually added shifts of an existing draft are kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("generateSchedule command",
				zap.String("snapshot", args[0]),
				zap.Bool("dry_run", dryRun))

			snap, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}

			schedule, err := services.GenerateSchedule(app.Ctx, app.Store, app.Cfg, app.Logger, snap, dryRun)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			fmt.Printf("\n🎯 Dienstplan %s\n\n", schedule.Week)
			printSchedule(schedule, snap)

			if dryRun {
				fmt.Println("💡 Das war ein Probelauf. Ohne --dry-run wird der Plan als Entwurf gespeichert.")
			} else {
				fmt.Println("✅ Der Entwurf wurde gespeichert.")
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to the schedule store")

	return cmd
}
