package domain

import (
	"fmt"
	"time"
)

// AssignEmployeeToProject applies the full assignment transition to both
// records in memory. Callers persist both inside one transaction; the rules
// live here so the project and employee sides cannot drift apart.
//
// An employee may hold one active roster entry across all projects at a
// time; a previous stint on the same project is reactivated instead of
// duplicated.
func AssignEmployeeToProject(p *Project, e *Employee, role string, now time.Time) error {
	if role == "" {
		return fmt.Errorf("role is required: %w", ErrValidation)
	}
	if e.CurrentProjectID != nil {
		if *e.CurrentProjectID == p.ID {
			return fmt.Errorf("employee already active on this project: %w", ErrConflict)
		}
		return fmt.Errorf("employee already on another project: %w", ErrConflict)
	}

	if entry := p.RosterEntryFor(e.ID); entry != nil {
		if entry.Status == RosterActive {
			return fmt.Errorf("employee already active on this project: %w", ErrConflict)
		}
		entry.Status = RosterActive
		entry.Role = role
	} else {
		p.Employees = append(p.Employees, RosterEntry{
			EmployeeID: e.ID,
			Role:       role,
			Status:     RosterActive,
		})
	}

	e.beginStint(p.ID, role, now)
	return nil
}

// RemoveEmployeeFromProject detaches the employee: the roster entry goes
// inactive, the employee becomes available again and the open history entry
// is stamped with an end date.
func RemoveEmployeeFromProject(p *Project, e *Employee, now time.Time) error {
	entry := p.RosterEntryFor(e.ID)
	if entry == nil {
		return fmt.Errorf("employee has no roster entry on this project: %w", ErrNotFound)
	}
	if entry.Status != RosterActive {
		return fmt.Errorf("employee is not active on this project: %w", ErrConflict)
	}

	entry.Status = RosterInactive
	e.endStint(p.ID, now)
	return nil
}
