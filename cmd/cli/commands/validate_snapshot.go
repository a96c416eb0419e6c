package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kitawerk/dienstplan/pkg/core/engine"
	"github.com/kitawerk/dienstplan/pkg/snapshot"
)

// ValidateSnapshotCmd creates the validateSnapshot command
func ValidateSnapshotCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateSnapshot <snapshot_file>",
		Short: "Check a snapshot file without generating anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(args[0])
			if err != nil {
				var cfgErr *engine.ConfigError
				if !errors.As(err, &cfgErr) {
					return err
				}

				label := fmt.Sprintf("%d Probleme", len(cfgErr.Problems))
				if len(cfgErr.Problems) == 1 {
					label = "1 Problem"
				}
				fmt.Printf("\n❌ Datenstand ist ungültig (%s):\n\n", label)
				for _, problem := range cfgErr.Problems {
					fmt.Printf("  • %s\n", problem)
				}
				fmt.Println()
				return fmt.Errorf("snapshot validation failed")
			}

			fmt.Printf("\n✅ Datenstand ist gültig\n\n")
			fmt.Printf("Woche:          %s (ab %s)\n", snap.Week, snap.WeekStart)
			fmt.Printf("Mitarbeiter:    %d\n", len(snap.Employees))
			fmt.Printf("Gruppen:        %d\n", len(snap.Groups))
			fmt.Printf("Abwesenheiten:  %d\n", len(snap.Absences))
			fmt.Println()

			return nil
		},
	}
}
