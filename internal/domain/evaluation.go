package domain

import (
	"fmt"
	"time"
)

// Evaluation is one user's rating of another, optionally tied to a project.
// Writing one recomputes the evaluated user's average rating in the same
// transaction.
type Evaluation struct {
	ID          int64     `json:"id"`
	EvaluatorID int64     `json:"evaluatorID"`
	EvaluatedID int64     `json:"evaluatedID"`
	ProjectID   *int64    `json:"projectID"`
	Score       int32     `json:"score"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (e *Evaluation) Validate() error {
	if e.Score < 1 || e.Score > 5 {
		return fmt.Errorf("score must be between 1 and 5: %w", ErrValidation)
	}
	if e.EvaluatorID == e.EvaluatedID {
		return fmt.Errorf("users cannot evaluate themselves: %w", ErrValidation)
	}
	return nil
}
