package domain_test

import (
	"errors"
	"testing"

	"github.com/workhive/backend/internal/domain"
)

func TestVehicleAssignRelease(t *testing.T) {
	v := &domain.Vehicle{CompanyID: 1, Plate: "ABC1D23", Status: domain.VehicleAvailable}

	if err := v.Assign(7); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if v.Status != domain.VehicleInUse || v.AssignedEmployeeID == nil || *v.AssignedEmployeeID != 7 {
		t.Errorf("after assign: status=%q assignee=%v", v.Status, v.AssignedEmployeeID)
	}

	if err := v.Assign(8); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("double assign err = %v, want ErrConflict", err)
	}

	if err := v.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if v.Status != domain.VehicleAvailable || v.AssignedEmployeeID != nil {
		t.Errorf("after release: status=%q assignee=%v", v.Status, v.AssignedEmployeeID)
	}

	if err := v.Release(); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("double release err = %v, want ErrConflict", err)
	}
}

func TestVehicleAssign_Maintenance(t *testing.T) {
	v := &domain.Vehicle{Status: domain.VehicleMaintenance}
	if err := v.Assign(7); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestEvaluationValidate(t *testing.T) {
	tests := []struct {
		name    string
		eval    domain.Evaluation
		wantErr bool
	}{
		{"valid", domain.Evaluation{EvaluatorID: 1, EvaluatedID: 2, Score: 4}, false},
		{"score too low", domain.Evaluation{EvaluatorID: 1, EvaluatedID: 2, Score: 0}, true},
		{"score too high", domain.Evaluation{EvaluatorID: 1, EvaluatedID: 2, Score: 6}, true},
		{"self evaluation", domain.Evaluation{EvaluatorID: 1, EvaluatedID: 1, Score: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.eval.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected err: %v", err)
			}
		})
	}
}
