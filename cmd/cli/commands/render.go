package commands

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kitawerk/dienstplan/pkg/core/model"
	"github.com/kitawerk/dienstplan/pkg/db"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBold   = "\033[1m"
)

// printSchedule renders a stored schedule. The snapshot is only used to
// resolve display names and may be nil.
func printSchedule(schedule *db.Schedule, snap *model.Snapshot) {
	fmt.Printf("Plan ID:   %s\n", schedule.ID)
	fmt.Printf("Woche:     %s (ab %s)\n", schedule.Week, schedule.WeekStart)
	fmt.Printf("Status:    %s\n", statusLabel(schedule.Status))
	if schedule.PublishedAt != nil {
		fmt.Printf("Veröffentlicht: %s\n", schedule.PublishedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("Bewertung: %s\n\n", scoreLine(schedule.Scores))

	if len(schedule.Shifts) == 0 {
		fmt.Println("Keine Schichten geplant.")
		fmt.Println()
	} else {
		printShiftTable(schedule.Shifts, snap)
	}

	printShortfalls(schedule.Shortfalls, snap)
}

func printShiftTable(shifts []db.Shift, snap *model.Snapshot) {
	rows := make([]db.Shift, len(shifts))
	copy(rows, shifts)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Weekday != rows[j].Weekday {
			return rows[i].Weekday < rows[j].Weekday
		}
		if rows[i].GroupID != rows[j].GroupID {
			return rows[i].GroupID < rows[j].GroupID
		}
		if rows[i].Start != rows[j].Start {
			return rows[i].Start < rows[j].Start
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	// Calculate column widths
	groupColWidth := 12
	nameColWidth := 16
	for _, row := range rows {
		if l := utf8.RuneCountInString(groupLabel(snap, row.GroupID)); l > groupColWidth {
			groupColWidth = l
		}
		if l := utf8.RuneCountInString(employeeLabel(snap, row.EmployeeID)); l > nameColWidth {
			nameColWidth = l
		}
	}
	groupColWidth += 2
	nameColWidth += 2
	const dayColWidth = 5
	const templateColWidth = 14
	const timeColWidth = 13

	fmt.Printf("📅 Schichten:\n\n")

	// Print header
	fmt.Printf("%s%s%s%s%s%s%s%s\n",
		colorBold,
		pad("Tag", dayColWidth),
		pad("Gruppe", groupColWidth),
		pad("Mitarbeiter", nameColWidth),
		pad("Dienst", templateColWidth),
		pad("Zeit", timeColWidth),
		"ID",
		colorReset)

	// Print separator
	fmt.Print(strings.Repeat("-", dayColWidth-2), "  ")
	fmt.Print(strings.Repeat("-", groupColWidth-2), "  ")
	fmt.Print(strings.Repeat("-", nameColWidth-2), "  ")
	fmt.Print(strings.Repeat("-", templateColWidth-2), "  ")
	fmt.Print(strings.Repeat("-", timeColWidth-2), "  ")
	fmt.Println(strings.Repeat("-", 36))

	// Print each shift
	manualSeen := false
	for _, row := range rows {
		marker := ""
		if row.Manual {
			manualSeen = true
			marker = fmt.Sprintf("  %s*%s", colorYellow, colorReset)
		}
		fmt.Printf("%s%s%s%s%s%s%s\n",
			pad(row.Weekday.ShortDE(), dayColWidth),
			pad(groupLabel(snap, row.GroupID), groupColWidth),
			pad(employeeLabel(snap, row.EmployeeID), nameColWidth),
			pad(row.Template.LabelDE(), templateColWidth),
			pad(row.Start+"-"+row.End, timeColWidth),
			row.ID,
			marker)
	}
	if manualSeen {
		fmt.Printf("\n  %s*%s manuell eingetragen\n", colorYellow, colorReset)
	}
	fmt.Println()
}

func printShortfalls(shortfalls []model.Shortfall, snap *model.Snapshot) {
	if len(shortfalls) == 0 {
		fmt.Println("✅ Alle Pflichtbesetzungen sind erfüllt.")
		return
	}

	fmt.Printf("%s⚠️  Unterdeckung (%d):%s\n", colorRed, len(shortfalls), colorReset)
	for _, sf := range shortfalls {
		missing := fmt.Sprintf("%d Kräfte fehlen", sf.Missing)
		if sf.Missing == 1 {
			missing = "1 Kraft fehlt"
		}
		fmt.Printf("  • %s am %s: %s\n", groupLabel(snap, sf.GroupID), sf.Weekday.LabelDE(), missing)
	}
}

func scoreLine(scores model.Scores) string {
	return fmt.Sprintf("Abdeckung %.1f | Fairness %.1f | Wünsche %.1f | Regeln %.1f (%s)",
		scores.Coverage,
		scores.Fairness,
		scores.Preference,
		scores.Compliance,
		model.QualityLabel(scores.Coverage))
}

func statusLabel(status model.ScheduleStatus) string {
	switch status {
	case model.StatusDraft:
		return colorYellow + "ENTWURF" + colorReset
	case model.StatusPublished:
		return colorGreen + "VERÖFFENTLICHT" + colorReset
	case model.StatusArchived:
		return "ARCHIVIERT"
	}
	return string(status)
}

func employeeLabel(snap *model.Snapshot, id string) string {
	if snap != nil {
		if emp := snap.EmployeeByID(id); emp != nil && emp.Name != "" {
			return emp.Name
		}
	}
	return id
}

func groupLabel(snap *model.Snapshot, id string) string {
	if snap != nil {
		if grp := snap.GroupByID(id); grp != nil && grp.Name != "" {
			return grp.Name
		}
	}
	return id
}

// pad right-pads to the given display width. Printf's %-*s pads by bytes and
// misaligns columns containing umlauts.
func pad(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap < 1 {
		gap = 1
	}
	return s + strings.Repeat(" ", gap)
}
