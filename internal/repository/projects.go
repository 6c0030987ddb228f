package repository

import (
	"context"
	"time"

	"github.com/workhive/backend/internal/domain"
)

// CreateProject inserts the project and registers the creator as its first
// participant in one transaction.
func (r *Repository) CreateProject(project *domain.Project) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO projects (title, description, completion_date, status, creator_id, creator_role, company_id, client_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	args := []any{
		project.Title,
		project.Description,
		project.CompletionDate,
		project.Status,
		project.CreatorID,
		project.CreatorRole,
		project.CompanyID,
		project.ClientID,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&project.ID, &project.CreatedAt, &project.Version); err != nil {
		return err
	}

	query = `
		INSERT INTO project_participants (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, query, project.ID, project.CreatorID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	project.Participants = []int64{project.CreatorID}
	project.Employees = make([]domain.RosterEntry, 0)

	return nil
}

func (r *Repository) GetProjectByID(id int64) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	project, err := scanProject(r.dbpool.QueryRowContext(ctx, `
		SELECT id, title, description, completion_date, status, creator_id, creator_role, company_id, client_id, created_at, version
		FROM projects WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadRoster(ctx, project); err != nil {
		return nil, err
	}
	if err := r.loadParticipants(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	project := &domain.Project{}
	dst := []any{
		&project.ID,
		&project.Title,
		&project.Description,
		&project.CompletionDate,
		&project.Status,
		&project.CreatorID,
		&project.CreatorRole,
		&project.CompanyID,
		&project.ClientID,
		&project.CreatedAt,
		&project.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, notFound(err, "project")
	}
	return project, nil
}

func (r *Repository) loadRoster(ctx context.Context, project *domain.Project) error {
	query := `
		SELECT id, employee_id, role, status
		FROM project_employees
		WHERE project_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, project.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	project.Employees = make([]domain.RosterEntry, 0)
	for rows.Next() {
		var entry domain.RosterEntry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.Role, &entry.Status); err != nil {
			return err
		}
		project.Employees = append(project.Employees, entry)
	}

	return rows.Err()
}

func (r *Repository) loadParticipants(ctx context.Context, project *domain.Project) error {
	query := `
		SELECT user_id FROM project_participants
		WHERE project_id = $1
		ORDER BY user_id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, project.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	project.Participants = make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		project.Participants = append(project.Participants, id)
	}

	return rows.Err()
}

// ListProjectsForUser returns projects the user can see: created by them,
// owned by their company, commissioned by them, or joined as a participant.
func (r *Repository) ListProjectsForUser(userID int64) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT DISTINCT p.id, p.title, p.description, p.completion_date, p.status, p.creator_id, p.creator_role, p.company_id, p.client_id, p.created_at, p.version
		FROM projects p
		LEFT JOIN project_participants pp ON p.id = pp.project_id
		WHERE p.creator_id = $1 OR p.company_id = $1 OR p.client_id = $1 OR pp.user_id = $1
		ORDER BY p.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, project := range projects {
		if err := r.loadRoster(ctx, project); err != nil {
			return nil, err
		}
		if err := r.loadParticipants(ctx, project); err != nil {
			return nil, err
		}
	}

	return projects, nil
}

func (r *Repository) UpdateProject(project *domain.Project) error {
	query := `
		UPDATE projects
		SET
			title = $1,
			description = $2,
			completion_date = $3,
			status = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		project.Title,
		project.Description,
		project.CompletionDate,
		project.Status,
		project.ID,
		project.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&project.Version); err != nil {
		return notFound(err, "project")
	}

	return nil
}

// AddParticipant is idempotent; the unique pair constraint gives the
// participant list set semantics.
func (r *Repository) AddParticipant(projectID, userID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO project_participants (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`
	if _, err := r.dbpool.ExecContext(ctx, query, projectID, userID); err != nil {
		return err
	}

	return nil
}
