package handler

import (
	"net/http"

	"github.com/workhive/backend/internal/domain"
)

func (h *Handler) ListCompanyEmployees(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	employees, err := h.repository.ListEmployeesByCompany(myInfo.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "employees", employees)
}

// canViewEmployee reports whether the user may read an employment record:
// the professional it belongs to, or the company it is linked to.
func canViewEmployee(employee *domain.Employee, userID int64) bool {
	if employee.UserID == userID {
		return true
	}
	return employee.CompanyID != nil && *employee.CompanyID == userID
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if !canViewEmployee(employee, myInfo.ID) {
		h.errorResponse(w, r, http.StatusNotFound, "employee: not found")
		return
	}

	h.successResponse(w, r, "employee", employee)
}

func (h *Handler) UpdateEmployeeStatus(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if !canViewEmployee(employee, myInfo.ID) {
		h.errorResponse(w, r, http.StatusNotFound, "employee: not found")
		return
	}

	var req struct {
		Status   *string `json:"status"`
		Position *string `json:"position"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.Status == nil && req.Position == nil {
		h.errorResponse(w, r, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.Status != nil {
		if err := employee.ChangeStatus(domain.EmployeeStatus(*req.Status)); err != nil {
			h.domainError(w, r, err)
			return
		}
	}
	// position changes are independent of the status rule
	if req.Position != nil {
		employee.Position = *req.Position
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee status updated", employee)
}

func (h *Handler) GetEmployeeCurrentProject(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if !canViewEmployee(employee, myInfo.ID) {
		h.errorResponse(w, r, http.StatusNotFound, "employee: not found")
		return
	}

	// employees without an assignment answer with null data, not an error
	project, err := h.repository.GetCurrentProject(employee.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "current project", project)
}

func (h *Handler) GetEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if !canViewEmployee(employee, myInfo.ID) {
		h.errorResponse(w, r, http.StatusNotFound, "employee: not found")
		return
	}

	h.successResponse(w, r, "project history", employee.ProjectHistory)
}

func (h *Handler) UnlinkEmployee(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	updated, err := h.repository.UnlinkEmployee(myInfo.ID, employee.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee unlinked", updated)
}
