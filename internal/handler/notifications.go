package handler

import (
	"net/http"

	"github.com/workhive/backend/internal/domain"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	notifications, err := h.repository.ListNotificationsForUser(myInfo.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "notifications", notifications)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	notificationID, err := idParam(r, "id")
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid notification id")
		return
	}

	notification, err := h.repository.MarkNotificationRead(myInfo.ID, notificationID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "notification read", notification)
}
