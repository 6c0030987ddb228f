package handler

import (
	"net/http"

	"github.com/workhive/backend/internal/domain"
)

func (h *Handler) CreateEvaluation(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	evaluated := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		Score     int32  `json:"score" validate:"required"`
		Comment   string `json:"comment"`
		ProjectID *int64 `json:"projectID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	evaluation := &domain.Evaluation{
		EvaluatorID: myInfo.ID,
		EvaluatedID: evaluated.ID,
		ProjectID:   req.ProjectID,
		Score:       req.Score,
		Comment:     req.Comment,
	}

	if err := evaluation.Validate(); err != nil {
		h.domainError(w, r, err)
		return
	}

	average, err := h.repository.CreateEvaluation(evaluation)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "evaluation created", map[string]any{
		"evaluation":    evaluation,
		"averageRating": average,
	})
}

func (h *Handler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	evaluations, err := h.repository.ListEvaluationsForUser(user.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.successResponse(w, r, "evaluations", evaluations)
}
