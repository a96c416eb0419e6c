package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule <week>",
		Short: "Publish the week's newest draft schedule",
		Long:  "Promote the newest draft of the week to published. A previously published plan of the same week is archived first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week := args[0]
			if _, err := model.ISOWeekStart(week); err != nil {
				return err
			}

			app.Logger.Debug("publishSchedule command", zap.String("week", week))

			schedule, err := services.PublishSchedule(app.Ctx, app.Store, app.Logger, week)
			if err != nil {
				return fmt.Errorf("failed to publish schedule: %w", err)
			}

			fmt.Printf("\n✅ Dienstplan veröffentlicht\n\n")
			fmt.Printf("Plan ID:   %s\n", schedule.ID)
			fmt.Printf("Woche:     %s\n", schedule.Week)
			fmt.Printf("Bewertung: %s\n\n", scoreLine(schedule.Scores))

			return nil
		},
	}
}

// UnpublishScheduleCmd creates the unpublishSchedule command
func UnpublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unpublishSchedule <week>",
		Short: "Return the week's published schedule to draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week := args[0]
			if _, err := model.ISOWeekStart(week); err != nil {
				return err
			}

			app.Logger.Debug("unpublishSchedule command", zap.String("week", week))

			schedule, err := services.UnpublishSchedule(app.Ctx, app.Store, app.Logger, week)
			if err != nil {
				return fmt.Errorf("failed to unpublish schedule: %w", err)
			}

			fmt.Printf("\n✅ Veröffentlichung zurückgezogen\n\n")
			fmt.Printf("Plan ID: %s\n", schedule.ID)
			fmt.Printf("Woche:   %s\n", schedule.Week)
			fmt.Printf("Status:  %s\n\n", statusLabel(schedule.Status))

			return nil
		},
	}
}

// ArchiveScheduleCmd creates the archiveSchedule command
func ArchiveScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "archiveSchedule <week>",
		Short: "Archive the week's active schedule",
		Long:  "Archive the week's published schedule, or its newest draft if nothing is published.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week := args[0]
			if _, err := model.ISOWeekStart(week); err != nil {
				return err
			}

			app.Logger.Debug("archiveSchedule command", zap.String("week", week))

			schedule, err := services.ArchiveSchedule(app.Ctx, app.Store, app.Logger, week)
			if err != nil {
				return fmt.Errorf("failed to archive schedule: %w", err)
			}

			fmt.Printf("\n✅ Dienstplan archiviert\n\n")
			fmt.Printf("Plan ID: %s\n", schedule.ID)
			fmt.Printf("Woche:   %s\n\n", schedule.Week)

			return nil
		},
	}
}
