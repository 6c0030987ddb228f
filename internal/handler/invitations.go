package handler

import (
	"fmt"
	"net/http"

	"github.com/workhive/backend/internal/domain"
)

func (h *Handler) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Position string `json:"position" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	professional, err := h.repository.GetUserByEmail(req.Email)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	if professional.Role != domain.RoleProfessional {
		h.errorResponse(w, r, http.StatusBadRequest, "only professionals can be invited")
		return
	}

	invitation := &domain.EmployeeInvitation{
		ProfessionalID: professional.ID,
		CompanyID:      myInfo.ID,
		Position:       req.Position,
	}
	message := fmt.Sprintf("%s invited you to join as %s", myInfo.Name, req.Position)

	notification, err := h.repository.CreateInvitation(invitation, message)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	if err := h.publishMail(domain.MailMessage{
		Type: "invitation",
		To:   professional.Email,
		Data: domain.InvitationMailData{
			Name:        professional.Name,
			CompanyName: myInfo.Name,
			Position:    req.Position,
		},
	}); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "invitation sent", map[string]any{
		"invitation":   invitation,
		"notification": notification,
	})
}

func (h *Handler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var status *domain.InvitationStatus
	if param := r.URL.Query().Get("status"); param != "" {
		candidate := domain.InvitationStatus(param)
		if !candidate.IsValid() {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid status filter")
			return
		}
		status = &candidate
	}

	var invitations []*domain.EmployeeInvitation
	var err error
	switch myInfo.Role {
	case domain.RoleProfessional:
		invitations, err = h.repository.ListInvitationsForProfessional(myInfo.ID, status)
	case domain.RoleCompany:
		invitations, err = h.repository.ListInvitationsForCompany(myInfo.ID, status)
	default:
		h.errorResponse(w, r, http.StatusForbidden, "insufficient role")
		return
	}
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "invitations", invitations)
}

func (h *Handler) RespondInvitation(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	invitationID, err := idParam(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid invitation id")
		return
	}

	var req struct {
		Decision string `json:"decision" validate:"required,oneof=accept reject"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	invitation, err := h.repository.GetInvitationByID(invitationID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	if invitation.ProfessionalID != myInfo.ID {
		h.errorResponse(w, r, http.StatusForbidden, "invitation belongs to another professional")
		return
	}

	accept := req.Decision == "accept"
	companyNotice := fmt.Sprintf("%s rejected your invitation", myInfo.Name)
	if accept {
		companyNotice = fmt.Sprintf("%s accepted your invitation", myInfo.Name)
	}

	updated, employee, err := h.repository.RespondInvitation(invitationID, accept, companyNotice)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "invitation answered", map[string]any{
		"invitation": updated,
		"employee":   employee,
	})
}
