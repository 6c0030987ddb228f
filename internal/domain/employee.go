package domain

import (
	"fmt"
	"time"
)

type EmployeeStatus string

const (
	EmployeeAvailable   EmployeeStatus = "available"
	EmployeeOnProject   EmployeeStatus = "on_project"
	EmployeeOnVacation  EmployeeStatus = "vacation"
	EmployeeUnavailable EmployeeStatus = "unavailable"
)

func (s EmployeeStatus) IsValid() bool {
	switch s {
	case EmployeeAvailable, EmployeeOnProject, EmployeeOnVacation, EmployeeUnavailable:
		return true
	default:
		return false
	}
}

// ProjectHistoryEntry records one stint on a project. EndDate is nil while
// the stint is open; at most one entry per employee may be open at a time.
type ProjectHistoryEntry struct {
	ID        int64      `json:"id"`
	ProjectID int64      `json:"projectID"`
	Role      string     `json:"role"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// Employee is a professional's employment record. CompanyID is nil while the
// professional is not linked to any company; the record itself is never
// deleted, only unlinked.
type Employee struct {
	ID                 int64                 `json:"id"`
	UserID             int64                 `json:"userID"`
	CompanyID          *int64                `json:"companyID"`
	Position           string                `json:"position"`
	Status             EmployeeStatus        `json:"status"`
	CurrentProjectID   *int64                `json:"currentProjectID"`
	CurrentProjectRole string                `json:"currentProjectRole"`
	ProjectHistory     []ProjectHistoryEntry `json:"projectHistory"`
	CreatedAt          time.Time             `json:"createdAt"`
	Version            int32                 `json:"-"`
}

// ChangeStatus applies a status change requested outside of project
// assignment. Status may not change while the employee is bound to a project;
// detachment has to happen first so the on_project/current-project invariant
// cannot be broken from the side.
func (e *Employee) ChangeStatus(newStatus EmployeeStatus) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("status %q: %w", newStatus, ErrValidation)
	}
	if e.CurrentProjectID != nil {
		return fmt.Errorf("employee is on an active project: %w", ErrConflict)
	}
	e.Status = newStatus
	return nil
}

// OpenHistoryEntry returns the entry with no end date, or nil.
func (e *Employee) OpenHistoryEntry() *ProjectHistoryEntry {
	for i := range e.ProjectHistory {
		if e.ProjectHistory[i].EndDate == nil {
			return &e.ProjectHistory[i]
		}
	}
	return nil
}

// beginStint binds the employee to a project and opens a history entry.
func (e *Employee) beginStint(projectID int64, role string, now time.Time) {
	e.Status = EmployeeOnProject
	e.CurrentProjectID = &projectID
	e.CurrentProjectRole = role
	e.ProjectHistory = append(e.ProjectHistory, ProjectHistoryEntry{
		ProjectID: projectID,
		Role:      role,
		StartDate: now,
	})
}

// endStint releases the employee and closes the open history entry for the
// given project.
func (e *Employee) endStint(projectID int64, now time.Time) {
	e.Status = EmployeeAvailable
	e.CurrentProjectID = nil
	e.CurrentProjectRole = ""
	for i := range e.ProjectHistory {
		entry := &e.ProjectHistory[i]
		if entry.ProjectID == projectID && entry.EndDate == nil {
			end := now
			entry.EndDate = &end
			return
		}
	}
}
