package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/workhive/backend/internal/domain"
)

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee, err := scanEmployee(r.dbpool.QueryRowContext(ctx, `
		SELECT id, user_id, company_id, position, status, current_project_id, current_project_role, created_at, version
		FROM employees WHERE id = $1
	`, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadProjectHistory(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetEmployeeByUserID(userID int64) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee, err := scanEmployee(r.dbpool.QueryRowContext(ctx, `
		SELECT id, user_id, company_id, position, status, current_project_id, current_project_role, created_at, version
		FROM employees WHERE user_id = $1
	`, userID))
	if err != nil {
		return nil, err
	}

	if err := r.loadProjectHistory(ctx, employee); err != nil {
		return nil, err
	}

	return employee, nil
}

type rowScanner interface {
	Scan(dst ...any) error
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	employee := &domain.Employee{}
	dst := []any{
		&employee.ID,
		&employee.UserID,
		&employee.CompanyID,
		&employee.Position,
		&employee.Status,
		&employee.CurrentProjectID,
		&employee.CurrentProjectRole,
		&employee.CreatedAt,
		&employee.Version,
	}
	if err := row.Scan(dst...); err != nil {
		return nil, notFound(err, "employee")
	}
	return employee, nil
}

func (r *Repository) loadProjectHistory(ctx context.Context, employee *domain.Employee) error {
	query := `
		SELECT id, project_id, role, start_date, end_date
		FROM employee_project_history
		WHERE employee_id = $1
		ORDER BY start_date, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, employee.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	employee.ProjectHistory = make([]domain.ProjectHistoryEntry, 0)
	for rows.Next() {
		var entry domain.ProjectHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.ProjectID, &entry.Role, &entry.StartDate, &entry.EndDate); err != nil {
			return err
		}
		employee.ProjectHistory = append(employee.ProjectHistory, entry)
	}

	return rows.Err()
}

func (r *Repository) ListEmployeesByCompany(companyID int64) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, user_id, company_id, position, status, current_project_id, current_project_role, created_at, version
		FROM employees
		WHERE company_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// UpdateEmployee persists status/position changes made through the domain
// rules. When the optimistic version check misses, a still-existing row means
// a concurrent write won and the caller must retry with fresh state.
func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			company_id = $1,
			position = $2,
			status = $3,
			current_project_id = $4,
			current_project_role = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		employee.CompanyID,
		employee.Position,
		employee.Status,
		employee.CurrentProjectID,
		employee.CurrentProjectRole,
		employee.ID,
		employee.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if checkErr := r.dbpool.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`, employee.ID).Scan(&exists); checkErr != nil {
				return checkErr
			}
			if exists {
				return fmt.Errorf("employee was modified concurrently: %w", domain.ErrConflict)
			}
		}
		return notFound(err, "employee")
	}

	return nil
}

// UnlinkEmployee clears the company link. The employee record survives with
// its history; only the link goes.
func (r *Repository) UnlinkEmployee(companyID, employeeID int64) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	employee, err := scanEmployee(tx.QueryRowContext(ctx, `
		SELECT id, user_id, company_id, position, status, current_project_id, current_project_role, created_at, version
		FROM employees WHERE id = $1
		FOR UPDATE
	`, employeeID))
	if err != nil {
		return nil, err
	}

	if employee.CompanyID == nil || *employee.CompanyID != companyID {
		return nil, fmt.Errorf("employee is not linked to this company: %w", domain.ErrNotFound)
	}
	if employee.CurrentProjectID != nil {
		return nil, fmt.Errorf("employee is on an active project: %w", domain.ErrConflict)
	}

	employee.CompanyID = nil
	query := `
		UPDATE employees
		SET company_id = NULL, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, employee.ID, employee.Version).Scan(&employee.Version); err != nil {
		return nil, notFound(err, "employee")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return employee, nil
}

// GetCurrentProject resolves the employee's open history entry to its
// project. Returns nil without error when the employee is off-project.
func (r *Repository) GetCurrentProject(employeeID int64) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT project_id FROM employee_project_history
		WHERE employee_id = $1 AND end_date IS NULL
	`

	var projectID int64
	if err := r.dbpool.QueryRowContext(ctx, query, employeeID).Scan(&projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return r.GetProjectByID(projectID)
}
