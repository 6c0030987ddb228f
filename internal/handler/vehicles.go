package handler

import (
	"net/http"

	"github.com/workhive/backend/internal/domain"
)

func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Plate string `json:"plate" validate:"required"`
		Model string `json:"model" validate:"required"`
		Year  int32  `json:"year" validate:"required,gte=1900"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	vehicle := &domain.Vehicle{
		CompanyID: myInfo.ID,
		Plate:     req.Plate,
		Model:     req.Model,
		Year:      req.Year,
		Status:    domain.VehicleAvailable,
	}

	if err := h.repository.CreateVehicle(vehicle); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle created", vehicle)
}

func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	vehicles, err := h.repository.ListVehiclesByCompany(myInfo.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicles", vehicles)
}

func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle := r.Context().Value(VehicleCtx).(*domain.Vehicle)

	h.successResponse(w, r, "vehicle", vehicle)
}

func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle := r.Context().Value(VehicleCtx).(*domain.Vehicle)

	var req struct {
		Plate  *string `json:"plate" validate:"omitempty,min=1"`
		Model  *string `json:"model" validate:"omitempty,min=1"`
		Year   *int32  `json:"year" validate:"omitempty,gte=1900"`
		Status *string `json:"status"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Plate != nil {
		vehicle.Plate = *req.Plate
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Status != nil {
		status := domain.VehicleStatus(*req.Status)
		if !status.IsValid() {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid vehicle status")
			return
		}
		// assignment state only moves through assign and release
		if status == domain.VehicleInUse || vehicle.Status == domain.VehicleInUse {
			h.errorResponse(w, r, http.StatusConflict, "vehicle in use, release it first")
			return
		}
		vehicle.Status = status
	}

	if err := h.repository.UpdateVehicle(vehicle); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle updated", vehicle)
}

func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle := r.Context().Value(VehicleCtx).(*domain.Vehicle)

	if vehicle.Status == domain.VehicleInUse {
		h.errorResponse(w, r, http.StatusConflict, "vehicle in use, release it first")
		return
	}

	if err := h.repository.DeleteVehicle(vehicle.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle deleted", nil)
}

func (h *Handler) AssignVehicle(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	vehicle := r.Context().Value(VehicleCtx).(*domain.Vehicle)

	var req struct {
		EmployeeID int64 `json:"employeeID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee, err := h.repository.GetEmployeeByID(req.EmployeeID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	if employee.CompanyID == nil || *employee.CompanyID != myInfo.ID {
		h.errorResponse(w, r, http.StatusConflict, "employee is not linked to this company")
		return
	}

	if err := vehicle.Assign(employee.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.UpdateVehicle(vehicle); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle assigned", vehicle)
}

func (h *Handler) ReleaseVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle := r.Context().Value(VehicleCtx).(*domain.Vehicle)

	if err := vehicle.Release(); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.UpdateVehicle(vehicle); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle released", vehicle)
}
