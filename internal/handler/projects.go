package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/workhive/backend/internal/domain"
)

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Title          string     `json:"title" validate:"required"`
		Description    string     `json:"description"`
		CompletionDate *time.Time `json:"completionDate"`
		CompanyID      *int64     `json:"companyID"`
		ClientID       *int64     `json:"clientID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	project := &domain.Project{
		Title:          req.Title,
		Description:    req.Description,
		CompletionDate: req.CompletionDate,
		Status:         domain.ProjectNotStarted,
		CreatorID:      myInfo.ID,
		CreatorRole:    myInfo.Role,
		CompanyID:      req.CompanyID,
		ClientID:       req.ClientID,
	}

	// the creator always fills their own slot
	switch myInfo.Role {
	case domain.RoleCompany:
		project.CompanyID = &myInfo.ID
	case domain.RoleClient:
		project.ClientID = &myInfo.ID
	}

	if err := h.checkProjectReference(w, r, project.CompanyID, domain.RoleCompany); err != nil {
		return
	}
	if err := h.checkProjectReference(w, r, project.ClientID, domain.RoleClient); err != nil {
		return
	}

	if err := h.repository.CreateProject(project); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "project created", project)
}

// checkProjectReference verifies that a referenced user exists and holds the
// expected role. The response is already written when an error is returned.
func (h *Handler) checkProjectReference(w http.ResponseWriter, r *http.Request, id *int64, role domain.Role) error {
	if id == nil {
		return nil
	}

	user, err := h.repository.GetUserByID(*id)
	if err != nil {
		h.domainError(w, r, err)
		return err
	}
	if user.Role != role {
		h.errorResponse(w, r, http.StatusBadRequest, "referenced user is not a "+string(role))
		return domain.ErrValidation
	}
	return nil
}

func (h *Handler) ListMyProjects(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	projects, err := h.repository.ListProjectsForUser(myInfo.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "projects", projects)
}

func canViewProject(project *domain.Project, userID int64) bool {
	if project.CreatorID == userID {
		return true
	}
	if project.CompanyID != nil && *project.CompanyID == userID {
		return true
	}
	if project.ClientID != nil && *project.ClientID == userID {
		return true
	}
	return slices.Contains(project.Participants, userID)
}

// canManageProject reports whether the user may change the project record.
// Only the creator and the involved company qualify.
func canManageProject(project *domain.Project, userID int64) bool {
	if project.CreatorID == userID {
		return true
	}
	return project.CompanyID != nil && *project.CompanyID == userID
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	project := r.Context().Value(ProjectCtx).(*domain.Project)

	if !canViewProject(project, myInfo.ID) {
		h.errorResponse(w, r, http.StatusNotFound, "project: not found")
		return
	}

	h.successResponse(w, r, "project", project)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	project := r.Context().Value(ProjectCtx).(*domain.Project)

	if !canManageProject(project, myInfo.ID) {
		h.errorResponse(w, r, http.StatusForbidden, "only the creator or the company can update a project")
		return
	}

	var req struct {
		Title          *string    `json:"title" validate:"omitempty,min=1"`
		Description    *string    `json:"description"`
		CompletionDate *time.Time `json:"completionDate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.CompletionDate != nil {
		project.CompletionDate = req.CompletionDate
	}

	if err := h.repository.UpdateProject(project); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "project updated", project)
}

func (h *Handler) UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	project := r.Context().Value(ProjectCtx).(*domain.Project)

	if !canManageProject(project, myInfo.ID) {
		h.errorResponse(w, r, http.StatusForbidden, "only the creator or the company can update a project")
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	status := domain.ProjectStatus(req.Status)
	if !status.IsValid() {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid project status")
		return
	}

	project.Status = status

	if err := h.repository.UpdateProject(project); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "project status updated", project)
}

func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	project := r.Context().Value(ProjectCtx).(*domain.Project)

	if !canManageProject(project, myInfo.ID) {
		h.errorResponse(w, r, http.StatusForbidden, "only the creator or the company can add participants")
		return
	}

	var req struct {
		UserID int64 `json:"userID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetUserByID(req.UserID); err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.repository.AddParticipant(project.ID, req.UserID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "participant added", nil)
}

func (h *Handler) AssignEmployee(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	project := r.Context().Value(ProjectCtx).(*domain.Project)

	if !canManageProject(project, myInfo.ID) {
		h.errorResponse(w, r, http.StatusForbidden, "only the creator or the company can manage the roster")
		return
	}

	var req struct {
		EmployeeID int64  `json:"employeeID" validate:"required"`
		Role       string `json:"role" validate:"required"`
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
	if project.CompanyID != nil && (employee.CompanyID == nil || *employee.CompanyID != *project.CompanyID) {
		h.errorResponse(w, r, http.StatusConflict, "employee is not linked to the project's company")
		return
	}

	updatedProject, updatedEmployee, err := h.repository.AssignEmployee(project.ID, req.EmployeeID, req.Role)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee assigned", map[string]any{
		"project":  updatedProject,
		"employee": updatedEmployee,
	})
}

func (h *Handler) RemoveEmployee(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	project := r.Context().Value(ProjectCtx).(*domain.Project)

	if !canManageProject(project, myInfo.ID) {
		h.errorResponse(w, r, http.StatusForbidden, "only the creator or the company can manage the roster")
		return
	}

	employeeID, err := idParam(r, "employeeID")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid employee id")
		return
	}

	updatedProject, updatedEmployee, err := h.repository.RemoveEmployee(project.ID, employeeID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee removed", map[string]any{
		"project":  updatedProject,
		"employee": updatedEmployee,
	})
}
