package engine

import "github.com/kitawerk/dienstplan/pkg/core/model"

// StaffForChildren computes the staff required to cover the given number of
// children under a ratio. Rounding is always up, a partially filled ratio
// block still needs a full educator. Zero children means the group is closed
// and needs nobody.
func StaffForChildren(children int, ratio model.Ratio) int {
	if children <= 0 || ratio.Num <= 0 || ratio.Den <= 0 {
		return 0
	}
	return (children*ratio.Num + ratio.Den - 1) / ratio.Den
}

// Shortfalls reports, per open cell, how many required slots the given
// assignments leave unfilled. Used to refresh a stored plan after manual
// edits without rerunning a full generation.
func Shortfalls(snap *model.Snapshot, shifts []model.Shift) []model.Shortfall {
	assigned := make(map[cellKey]int)
	for _, shift := range shifts {
		assigned[cellKey{GroupID: shift.GroupID, Day: shift.Weekday}]++
	}

	shortfalls := make([]model.Shortfall, 0)
	for _, day := range operatingDays(snap) {
		for _, group := range snap.Groups {
			children, open := snap.ExpectedChildren(group.ID, day)
			if !open {
				continue
			}
			required := StaffForChildren(children, group.Ratio)
			missing := required - assigned[cellKey{GroupID: group.ID, Day: day}]
			if missing > 0 {
				shortfalls = append(shortfalls, model.Shortfall{GroupID: group.ID, Weekday: day, Missing: missing})
			}
		}
	}
	return shortfalls
}
