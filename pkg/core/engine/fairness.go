package engine

import "github.com/kitawerk/dienstplan/pkg/core/model"

// FairnessTracker maintains assigned hours against contracted hours per
// employee during a run. The resulting utilization ratios drive both the
// candidate ranking and the fairness score.
type FairnessTracker struct {
	hours    map[string]float64
	contract map[string]float64
}

// NewFairnessTracker starts a tracker with zero assigned hours for the roster
func NewFairnessTracker(employees []model.Employee) *FairnessTracker {
	t := &FairnessTracker{
		hours:    make(map[string]float64, len(employees)),
		contract: make(map[string]float64, len(employees)),
	}
	for i := range employees {
		t.contract[employees[i].ID] = employees[i].ContractHours
	}
	return t
}

// Add credits assigned hours to an employee
func (t *FairnessTracker) Add(employeeID string, hours float64) {
	t.hours[employeeID] += hours
}

// Hours returns the hours assigned to an employee so far
func (t *FairnessTracker) Hours(employeeID string) float64 {
	return t.hours[employeeID]
}

// Utilization returns assigned over contracted hours. Employees without
// contracted hours count as fully utilized, so they rank behind everyone
// still owed hours and never cause a division by zero.
func (t *FairnessTracker) Utilization(employeeID string) float64 {
	contract := t.contract[employeeID]
	if contract <= 0 {
		return 1
	}
	return t.hours[employeeID] / contract
}

// Deficit is 1 minus utilization. Under-scheduled employees have a positive
// deficit and are picked first.
func (t *FairnessTracker) Deficit(employeeID string) float64 {
	return 1 - t.Utilization(employeeID)
}
