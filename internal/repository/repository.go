package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workhive/backend/internal/config"
	"github.com/workhive/backend/internal/domain"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// notFound translates the driver's empty-result error into the domain
// taxonomy so callers never have to import database/sql.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return err
}

// constraintConflict maps a named unique-constraint violation to ErrConflict
// with the given message. Returns false when err is something else.
func constraintConflict(err error, constraint string, msg string) (error, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == constraint {
		return fmt.Errorf("%s: %w", msg, domain.ErrConflict), true
	}
	return err, false
}
