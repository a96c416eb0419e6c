package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/core/services"
	"github.com/kitawerk/dienstplan/pkg/snapshot"
)

// AddShiftCmd creates the addShift command
func AddShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addShift <snapshot_file> <employee_id> <group_id> <weekday> <template>",
		Short: "Add a manual shift to the week's active schedule",
		Long: `Add a shift by hand to the week's active schedule and rescore it.
The weekday is a lowercase English day name (e.g. monday), the template one of
early, mid, late, short. Manual shifts survive later regenerations.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}

			day, err := model.ParseWeekday(args[3])
			if err != nil {
				return err
			}
			templateID := model.TemplateID(args[4])

			app.Logger.Debug("addShift command",
				zap.String("employee_id", args[1]),
				zap.String("group_id", args[2]),
				zap.String("weekday", day.String()),
				zap.String("template", string(templateID)))

			schedule, err := services.AddManualShift(app.Ctx, app.Store, app.Cfg, app.Logger, snap, args[1], args[2], day, templateID)
			if err != nil {
				return fmt.Errorf("failed to add shift: %w", err)
			}

			fmt.Printf("\n✅ Schicht eingetragen\n\n")
			printSchedule(schedule, snap)
			fmt.Println()

			return nil
		},
	}
}

// RemoveShiftCmd creates the removeShift command
func RemoveShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "removeShift <snapshot_file> <shift_id>",
		Short: "Remove a shift from the week's active schedule",
		Long:  "Remove a shift by its ID and rescore the schedule. Shift IDs are shown by showSchedule.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("removeShift command", zap.String("shift_id", args[1]))

			schedule, err := services.RemoveShift(app.Ctx, app.Store, app.Cfg, app.Logger, snap, args[1])
			if err != nil {
				return fmt.Errorf("failed to remove shift: %w", err)
			}

			fmt.Printf("\n✅ Schicht entfernt\n\n")
			printSchedule(schedule, snap)
			fmt.Println()

			return nil
		},
	}
}

// RescoreScheduleCmd creates the rescoreSchedule command
func RescoreScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rescoreSchedule <snapshot_file>",
		Short: "Rescore the week's active schedule against a snapshot",
		Long:  "Recompute scores and shortfalls of the stored schedule against the given snapshot, e.g. after a new absence came in.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}

			app.Logger.Debug("rescoreSchedule command", zap.String("week", snap.Week))

			schedule, err := services.RescoreSchedule(app.Ctx, app.Store, app.Cfg, app.Logger, snap)
			if err != nil {
				return fmt.Errorf("failed to rescore schedule: %w", err)
			}

			fmt.Printf("\n✅ Dienstplan neu bewertet\n\n")
			printSchedule(schedule, snap)
			fmt.Println()

			return nil
		},
	}
}
