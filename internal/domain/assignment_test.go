package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/workhive/backend/internal/domain"
)

func newEmployee(id int64) *domain.Employee {
	companyID := int64(10)
	return &domain.Employee{
		ID:        id,
		UserID:    id + 100,
		CompanyID: &companyID,
		Position:  "Electrician",
		Status:    domain.EmployeeAvailable,
	}
}

func newProject(id int64) *domain.Project {
	return &domain.Project{
		ID:     id,
		Title:  "Substation refit",
		Status: domain.ProjectInProgress,
	}
}

func TestAssignEmployeeToProject(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	p := newProject(1)
	e := newEmployee(7)

	if err := domain.AssignEmployeeToProject(p, e, "Lead", now); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if e.Status != domain.EmployeeOnProject {
		t.Errorf("employee status = %q, want %q", e.Status, domain.EmployeeOnProject)
	}
	if e.CurrentProjectID == nil || *e.CurrentProjectID != p.ID {
		t.Errorf("currentProjectID = %v, want %d", e.CurrentProjectID, p.ID)
	}
	if e.CurrentProjectRole != "Lead" {
		t.Errorf("currentProjectRole = %q, want %q", e.CurrentProjectRole, "Lead")
	}

	entry := p.RosterEntryFor(e.ID)
	if entry == nil {
		t.Fatal("no roster entry after assign")
	}
	if entry.Status != domain.RosterActive || entry.Role != "Lead" {
		t.Errorf("roster entry = %+v, want active Lead", entry)
	}

	open := e.OpenHistoryEntry()
	if open == nil {
		t.Fatal("no open history entry after assign")
	}
	if open.ProjectID != p.ID || !open.StartDate.Equal(now) {
		t.Errorf("open history entry = %+v", open)
	}
}

func TestAssignEmployeeToProject_EmptyRole(t *testing.T) {
	if err := domain.AssignEmployeeToProject(newProject(1), newEmployee(7), "", time.Now()); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestAssignEmployeeToProject_AlreadyActive(t *testing.T) {
	now := time.Now()
	p := newProject(1)
	e := newEmployee(7)
	if err := domain.AssignEmployeeToProject(p, e, "Lead", now); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if err := domain.AssignEmployeeToProject(p, e, "Lead", now); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second assign err = %v, want ErrConflict", err)
	}
}

func TestAssignEmployeeToProject_CrossProjectExclusivity(t *testing.T) {
	now := time.Now()
	p1 := newProject(1)
	p2 := newProject(2)
	e := newEmployee(7)
	if err := domain.AssignEmployeeToProject(p1, e, "Lead", now); err != nil {
		t.Fatalf("assign: %v", err)
	}

	err := domain.AssignEmployeeToProject(p2, e, "Helper", now)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("assign to second project err = %v, want ErrConflict", err)
	}

	// the failed attempt must not touch either record
	if len(p2.Employees) != 0 {
		t.Errorf("second project roster modified: %+v", p2.Employees)
	}
	if *e.CurrentProjectID != p1.ID {
		t.Errorf("currentProjectID = %d, want %d", *e.CurrentProjectID, p1.ID)
	}
}

func TestAssignRemoveRoundTrip(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	p := newProject(1)
	e := newEmployee(7)

	if err := domain.AssignEmployeeToProject(p, e, "Lead", start); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := domain.RemoveEmployeeFromProject(p, e, end); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if e.Status != domain.EmployeeAvailable {
		t.Errorf("status = %q, want %q", e.Status, domain.EmployeeAvailable)
	}
	if e.CurrentProjectID != nil {
		t.Errorf("currentProjectID = %v, want nil", e.CurrentProjectID)
	}
	if e.CurrentProjectRole != "" {
		t.Errorf("currentProjectRole = %q, want empty", e.CurrentProjectRole)
	}

	if len(p.Employees) != 1 {
		t.Fatalf("roster has %d entries, want 1", len(p.Employees))
	}
	if p.Employees[0].Status != domain.RosterInactive {
		t.Errorf("roster status = %q, want inactive", p.Employees[0].Status)
	}

	if len(e.ProjectHistory) != 1 {
		t.Fatalf("history has %d entries, want 1", len(e.ProjectHistory))
	}
	if e.ProjectHistory[0].EndDate == nil || !e.ProjectHistory[0].EndDate.Equal(end) {
		t.Errorf("history endDate = %v, want %v", e.ProjectHistory[0].EndDate, end)
	}
	if e.OpenHistoryEntry() != nil {
		t.Error("open history entry remains after remove")
	}
}

func TestReassignReactivatesRosterEntry(t *testing.T) {
	now := time.Now()
	p := newProject(1)
	e := newEmployee(7)

	if err := domain.AssignEmployeeToProject(p, e, "Lead", now); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := domain.RemoveEmployeeFromProject(p, e, now.Add(time.Hour)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := domain.AssignEmployeeToProject(p, e, "Helper", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("reassign: %v", err)
	}

	// the roster keeps a single entry per employee, reactivated in place
	if len(p.Employees) != 1 {
		t.Fatalf("roster has %d entries, want 1", len(p.Employees))
	}
	if p.Employees[0].Status != domain.RosterActive || p.Employees[0].Role != "Helper" {
		t.Errorf("roster entry = %+v, want active Helper", p.Employees[0])
	}

	// a second stint adds a second history entry, only one open
	if len(e.ProjectHistory) != 2 {
		t.Fatalf("history has %d entries, want 2", len(e.ProjectHistory))
	}
	open := 0
	for _, h := range e.ProjectHistory {
		if h.EndDate == nil {
			open++
		}
	}
	if open != 1 {
		t.Errorf("%d open history entries, want 1", open)
	}
}

func TestRemoveEmployeeFromProject_NoEntry(t *testing.T) {
	err := domain.RemoveEmployeeFromProject(newProject(1), newEmployee(7), time.Now())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveEmployeeFromProject_AlreadyInactive(t *testing.T) {
	now := time.Now()
	p := newProject(1)
	e := newEmployee(7)
	if err := domain.AssignEmployeeToProject(p, e, "Lead", now); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := domain.RemoveEmployeeFromProject(p, e, now); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := domain.RemoveEmployeeFromProject(p, e, now); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second remove err = %v, want ErrConflict", err)
	}
}
