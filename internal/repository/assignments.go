package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/workhive/backend/internal/domain"
)

// AssignEmployee attaches an employee to a project. Both rows are locked and
// written in one transaction; a conflict or crash between the two writes can
// never leave the roster and the employee record disagreeing.
func (r *Repository) AssignEmployee(projectID, employeeID int64, role string) (*domain.Project, *domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	project, err := getProjectForUpdate(ctx, tx, projectID)
	if err != nil {
		return nil, nil, err
	}
	employee, err := getEmployeeForUpdate(ctx, tx, employeeID)
	if err != nil {
		return nil, nil, err
	}

	if err := domain.AssignEmployeeToProject(project, employee, role, time.Now().UTC()); err != nil {
		return nil, nil, err
	}

	// the domain transition either reactivated an existing roster entry or
	// appended one with no id yet
	entry := project.RosterEntryFor(employeeID)
	if entry.ID == 0 {
		query := `
			INSERT INTO project_employees (project_id, employee_id, role, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query, projectID, employeeID, entry.Role, entry.Status).Scan(&entry.ID); err != nil {
			return nil, nil, err
		}
	} else {
		query := `
			UPDATE project_employees
			SET role = $1, status = $2
			WHERE id = $3
		`
		if _, err := tx.ExecContext(ctx, query, entry.Role, entry.Status, entry.ID); err != nil {
			return nil, nil, err
		}
	}

	if err := updateEmployeeTx(ctx, tx, employee); err != nil {
		return nil, nil, err
	}

	open := employee.OpenHistoryEntry()
	query := `
		INSERT INTO employee_project_history (employee_id, project_id, role, start_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, employeeID, projectID, open.Role, open.StartDate).Scan(&open.ID); err != nil {
		return nil, nil, err
	}

	notification := &domain.Notification{
		UserID:  employee.UserID,
		Type:    domain.NotificationImportant,
		Message: "You were assigned to " + project.Title + " as " + role,
		Related: &domain.RelatedEntity{
			EntityID:   project.ID,
			EntityType: "project",
		},
	}
	if err := insertNotificationTx(ctx, tx, notification); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return project, employee, nil
}

// RemoveEmployee detaches an employee from a project, atomically with the
// same guarantees as AssignEmployee.
func (r *Repository) RemoveEmployee(projectID, employeeID int64) (*domain.Project, *domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	project, err := getProjectForUpdate(ctx, tx, projectID)
	if err != nil {
		return nil, nil, err
	}
	employee, err := getEmployeeForUpdate(ctx, tx, employeeID)
	if err != nil {
		return nil, nil, err
	}

	// one timestamp for both the returned entity and the stored row
	now := time.Now().UTC()
	if err := domain.RemoveEmployeeFromProject(project, employee, now); err != nil {
		return nil, nil, err
	}

	entry := project.RosterEntryFor(employeeID)
	query := `
		UPDATE project_employees
		SET status = $1
		WHERE id = $2
	`
	if _, err := tx.ExecContext(ctx, query, entry.Status, entry.ID); err != nil {
		return nil, nil, err
	}

	if err := updateEmployeeTx(ctx, tx, employee); err != nil {
		return nil, nil, err
	}

	query = `
		UPDATE employee_project_history
		SET end_date = $1
		WHERE employee_id = $2 AND project_id = $3 AND end_date IS NULL
	`
	if _, err := tx.ExecContext(ctx, query, now, employeeID, projectID); err != nil {
		return nil, nil, err
	}

	notification := &domain.Notification{
		UserID:  employee.UserID,
		Type:    domain.NotificationInformative,
		Message: "You were removed from " + project.Title,
		Related: &domain.RelatedEntity{
			EntityID:   project.ID,
			EntityType: "project",
		},
	}
	if err := insertNotificationTx(ctx, tx, notification); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return project, employee, nil
}

func getProjectForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Project, error) {
	project, err := scanProject(tx.QueryRowContext(ctx, `
		SELECT id, title, description, completion_date, status, creator_id, creator_role, company_id, client_id, created_at, version
		FROM projects WHERE id = $1
		FOR UPDATE
	`, id))
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, employee_id, role, status
		FROM project_employees
		WHERE project_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	project.Employees = make([]domain.RosterEntry, 0)
	for rows.Next() {
		var entry domain.RosterEntry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.Role, &entry.Status); err != nil {
			return nil, err
		}
		project.Employees = append(project.Employees, entry)
	}

	return project, rows.Err()
}

func getEmployeeForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*domain.Employee, error) {
	employee, err := scanEmployee(tx.QueryRowContext(ctx, `
		SELECT id, user_id, company_id, position, status, current_project_id, current_project_role, created_at, version
		FROM employees WHERE id = $1
		FOR UPDATE
	`, id))
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, project_id, role, start_date, end_date
		FROM employee_project_history
		WHERE employee_id = $1
		ORDER BY start_date, id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employee.ProjectHistory = make([]domain.ProjectHistoryEntry, 0)
	for rows.Next() {
		var entry domain.ProjectHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.ProjectID, &entry.Role, &entry.StartDate, &entry.EndDate); err != nil {
			return nil, err
		}
		employee.ProjectHistory = append(employee.ProjectHistory, entry)
	}

	return employee, rows.Err()
}

func updateEmployeeTx(ctx context.Context, tx *sql.Tx, employee *domain.Employee) error {
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

	args := []any{
		employee.CompanyID,
		employee.Position,
		employee.Status,
		employee.CurrentProjectID,
		employee.CurrentProjectRole,
		employee.ID,
		employee.Version,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&employee.Version); err != nil {
		return notFound(err, "employee")
	}

	return nil
}
