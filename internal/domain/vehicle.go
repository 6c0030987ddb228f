package domain

import (
	"fmt"
	"time"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleInUse       VehicleStatus = "in_use"
	VehicleMaintenance VehicleStatus = "maintenance"
)

func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleAvailable, VehicleInUse, VehicleMaintenance:
		return true
	default:
		return false
	}
}

// Vehicle is one unit of a company's fleet. AssignedEmployeeID is non-nil
// exactly while the vehicle is in use.
type Vehicle struct {
	ID                 int64         `json:"id"`
	CompanyID          int64         `json:"companyID"`
	Plate              string        `json:"plate"`
	Model              string        `json:"model"`
	Year               int32         `json:"year"`
	Status             VehicleStatus `json:"status"`
	AssignedEmployeeID *int64        `json:"assignedEmployeeID"`
	CreatedAt          time.Time     `json:"createdAt"`
	Version            int32         `json:"-"`
}

// Assign hands the vehicle to an employee.
func (v *Vehicle) Assign(employeeID int64) error {
	if v.Status != VehicleAvailable {
		return fmt.Errorf("vehicle is %s: %w", v.Status, ErrConflict)
	}
	v.Status = VehicleInUse
	v.AssignedEmployeeID = &employeeID
	return nil
}

// Release returns the vehicle to the pool.
func (v *Vehicle) Release() error {
	if v.Status != VehicleInUse {
		return fmt.Errorf("vehicle is not in use: %w", ErrConflict)
	}
	v.Status = VehicleAvailable
	v.AssignedEmployeeID = nil
	return nil
}
