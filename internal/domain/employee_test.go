package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/workhive/backend/internal/domain"
)

func TestChangeStatus(t *testing.T) {
	e := newEmployee(7)

	if err := e.ChangeStatus(domain.EmployeeOnVacation); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if e.Status != domain.EmployeeOnVacation {
		t.Errorf("status = %q, want %q", e.Status, domain.EmployeeOnVacation)
	}
}

func TestChangeStatus_InvalidStatus(t *testing.T) {
	e := newEmployee(7)
	if err := e.ChangeStatus(domain.EmployeeStatus("on leave")); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestChangeStatus_BlockedWhileOnProject(t *testing.T) {
	p := newProject(1)
	e := newEmployee(7)
	if err := domain.AssignEmployeeToProject(p, e, "Lead", time.Now()); err != nil {
		t.Fatalf("assign: %v", err)
	}

	err := e.ChangeStatus(domain.EmployeeOnVacation)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if e.Status != domain.EmployeeOnProject {
		t.Errorf("status changed to %q despite conflict", e.Status)
	}
}

func TestEmployeeStatusIsValid(t *testing.T) {
	valid := []domain.EmployeeStatus{
		domain.EmployeeAvailable,
		domain.EmployeeOnProject,
		domain.EmployeeOnVacation,
		domain.EmployeeUnavailable,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if domain.EmployeeStatus("retired").IsValid() {
		t.Error("unknown status accepted")
	}
}
