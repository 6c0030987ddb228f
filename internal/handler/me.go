package handler

import (
	"errors"
	"net/http"

	"github.com/workhive/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	h.successResponse(w, r, "my info", myInfo)
}

// GetMyEmployeeRecord answers with the caller's employment record, or null
// data when the professional has never been employed.
func (h *Handler) GetMyEmployeeRecord(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	employee, err := h.repository.GetEmployeeByUserID(myInfo.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.successResponse(w, r, "no employment record", nil)
			return
		}
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "employee", employee)
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		Name     *string `json:"name" validate:"omitempty,min=1"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Location *string `json:"location"`
		Bio      *string `json:"bio"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		myInfo.Name = *req.Name
	}
	if req.Email != nil {
		myInfo.Email = *req.Email
	}
	if req.Location != nil {
		myInfo.Location = *req.Location
	}
	if req.Bio != nil {
		myInfo.Bio = *req.Bio
	}

	if err := h.repository.UpdateUser(myInfo); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "profile updated", myInfo)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(myInfo.PasswordHash), []byte(req.OldPassword)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, http.StatusBadRequest, "wrong password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	myInfo.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(myInfo); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "password updated", nil)
}
