package domain

import "time"

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectNotStarted, ProjectInProgress, ProjectCompleted, ProjectCancelled:
		return true
	default:
		return false
	}
}

type RosterStatus string

const (
	RosterActive   RosterStatus = "active"
	RosterInactive RosterStatus = "inactive"
)

// RosterEntry records one employee's participation on a project. Removal
// flips the entry to inactive rather than deleting it, so the roster doubles
// as an audit trail. An employee appears at most once per project.
type RosterEntry struct {
	ID         int64        `json:"id"`
	EmployeeID int64        `json:"employeeID"`
	Role       string       `json:"role"`
	Status     RosterStatus `json:"status"`
}

type Project struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	CompletionDate *time.Time    `json:"completionDate"`
	Status         ProjectStatus `json:"status"`
	CreatorID      int64         `json:"creatorID"`
	CreatorRole    Role          `json:"creatorRole"`
	CompanyID      *int64        `json:"companyID"`
	ClientID       *int64        `json:"clientID"`
	Participants   []int64       `json:"participants"`
	Employees      []RosterEntry `json:"employees"`
	CreatedAt      time.Time     `json:"createdAt"`
	Version        int32         `json:"-"`
}

// RosterEntryFor returns the roster entry for the given employee, or nil.
func (p *Project) RosterEntryFor(employeeID int64) *RosterEntry {
	for i := range p.Employees {
		if p.Employees[i].EmployeeID == employeeID {
			return &p.Employees[i]
		}
	}
	return nil
}
