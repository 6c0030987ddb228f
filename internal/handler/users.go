package handler

import (
	"net/http"

	"github.com/workhive/backend/internal/domain"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var role *domain.Role
	if param := r.URL.Query().Get("role"); param != "" {
		candidate := domain.Role(param)
		if !candidate.IsValid() {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid role filter")
			return
		}
		role = &candidate
	}

	users, err := h.repository.ListUsers(role)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "users", users)
}

func (h *Handler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	h.successResponse(w, r, "user info", user)
}

func (h *Handler) FollowUser(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if myInfo.ID == user.ID {
		h.errorResponse(w, r, http.StatusBadRequest, "users cannot follow themselves")
		return
	}

	if err := h.repository.FollowUser(myInfo.ID, user.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "followed", nil)
}

func (h *Handler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if err := h.repository.UnfollowUser(myInfo.ID, user.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "unfollowed", nil)
}
