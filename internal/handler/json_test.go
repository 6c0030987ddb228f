package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/workhive/backend/internal/domain"
)

func TestDomainErrorStatusCodes(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("score out of range: %w", domain.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("project: %w", domain.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("already on a project: %w", domain.ErrConflict), http.StatusConflict},
		{"forbidden", fmt.Errorf("not yours: %w", domain.ErrForbidden), http.StatusForbidden},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			h.domainError(rec, req, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestBadRequestTranslatesValidationErrors(t *testing.T) {
	h := newTestHandler(t)

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	req.Email = "not-an-email"

	err := h.validate.Struct(req)
	if err == nil {
		t.Fatal("expected a validation error")
	}

	rec := httptest.NewRecorder()
	h.badRequest(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
