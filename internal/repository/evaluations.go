package repository

import (
	"context"
	"time"

	"github.com/workhive/backend/internal/domain"
)

// CreateEvaluation writes the evaluation and recomputes the evaluated user's
// average rating in the same transaction, so the profile never shows a stale
// average next to a visible evaluation.
func (r *Repository) CreateEvaluation(evaluation *domain.Evaluation) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO evaluations (evaluator_id, evaluated_id, project_id, score, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	args := []any{evaluation.EvaluatorID, evaluation.EvaluatedID, evaluation.ProjectID, evaluation.Score, evaluation.Comment}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&evaluation.ID, &evaluation.CreatedAt); err != nil {
		if cerr, ok := constraintConflict(err, "evaluations_unique_key", "this user has already been evaluated for this project"); ok {
			return 0, cerr
		}
		return 0, err
	}

	var average float64
	query = `
		UPDATE users
		SET average_rating = (SELECT AVG(score) FROM evaluations WHERE evaluated_id = $1)
		WHERE id = $1
		RETURNING average_rating
	`
	if err := tx.QueryRowContext(ctx, query, evaluation.EvaluatedID).Scan(&average); err != nil {
		return 0, notFound(err, "user")
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return average, nil
}

func (r *Repository) ListEvaluationsForUser(userID int64) ([]*domain.Evaluation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, evaluator_id, project_id, score, comment, created_at
		FROM evaluations
		WHERE evaluated_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evaluations := make([]*domain.Evaluation, 0)
	for rows.Next() {
		evaluation := &domain.Evaluation{EvaluatedID: userID}
		dst := []any{&evaluation.ID, &evaluation.EvaluatorID, &evaluation.ProjectID, &evaluation.Score, &evaluation.Comment, &evaluation.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		evaluations = append(evaluations, evaluation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return evaluations, nil
}
