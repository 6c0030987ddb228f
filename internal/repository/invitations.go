package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/workhive/backend/internal/domain"
)

// CreateInvitation opens a pending invitation and its linked notification to
// the professional in one transaction. The partial unique index on pending
// (professional, company) pairs rejects duplicate concurrent offers.
func (r *Repository) CreateInvitation(inv *domain.EmployeeInvitation, message string) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// the invite-time "not already linked" check runs inside the same
	// transaction that creates the invitation
	var companyID *int64
	err = tx.QueryRowContext(ctx, `
		SELECT company_id FROM employees WHERE user_id = $1 FOR UPDATE
	`, inv.ProfessionalID).Scan(&companyID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if companyID != nil {
		return nil, fmt.Errorf("professional is already linked to a company: %w", domain.ErrConflict)
	}

	inv.Status = domain.InvitationPending
	query := `
		INSERT INTO employee_invitations (professional_id, company_id, position, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, invited_at
	`
	if err := tx.QueryRowContext(ctx, query, inv.ProfessionalID, inv.CompanyID, inv.Position, inv.Status).Scan(&inv.ID, &inv.InvitedAt); err != nil {
		if cerr, ok := constraintConflict(err, "employee_invitations_pending_key", "a pending invitation already exists for this professional"); ok {
			return nil, cerr
		}
		return nil, err
	}

	pending := domain.InvitationPending
	notification := &domain.Notification{
		UserID:           inv.ProfessionalID,
		Type:             domain.NotificationInvitation,
		Message:          message,
		InvitationStatus: &pending,
		Related: &domain.RelatedEntity{
			EntityID:   inv.ID,
			EntityType: "employee_invitation",
		},
	}
	if err := insertNotificationTx(ctx, tx, notification); err != nil {
		return nil, err
	}

	query = `UPDATE employee_invitations SET notification_id = $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query, notification.ID, inv.ID); err != nil {
		return nil, err
	}
	inv.NotificationID = &notification.ID

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return notification, nil
}

// RespondInvitation performs the whole accept/reject workflow atomically:
// the invitation's single transition, the employee upsert on accept, the
// notification-status mirror and the notification to the inviting company.
func (r *Repository) RespondInvitation(invitationID int64, accept bool, companyNotice string) (*domain.EmployeeInvitation, *domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	inv := &domain.EmployeeInvitation{ID: invitationID}
	err = tx.QueryRowContext(ctx, `
		SELECT professional_id, company_id, position, status, invited_at, responded_at, notification_id
		FROM employee_invitations WHERE id = $1
		FOR UPDATE
	`, invitationID).Scan(&inv.ProfessionalID, &inv.CompanyID, &inv.Position, &inv.Status, &inv.InvitedAt, &inv.RespondedAt, &inv.NotificationID)
	if err != nil {
		return nil, nil, notFound(err, "invitation")
	}

	if err := inv.Respond(accept, time.Now().UTC()); err != nil {
		return nil, nil, err
	}

	var employee *domain.Employee
	if accept {
		employee, err = upsertEmployeeLink(ctx, tx, inv)
		if err != nil {
			return nil, nil, err
		}
	}

	query := `
		UPDATE employee_invitations
		SET status = $1, responded_at = $2
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, query, inv.Status, inv.RespondedAt, inv.ID); err != nil {
		return nil, nil, err
	}

	// keep the professional's invitation notification in step
	if inv.NotificationID != nil {
		query = `UPDATE notifications SET invitation_status = $1 WHERE id = $2`
		if _, err := tx.ExecContext(ctx, query, inv.Status, *inv.NotificationID); err != nil {
			return nil, nil, err
		}
	}

	status := inv.Status
	notification := &domain.Notification{
		UserID:           inv.CompanyID,
		Type:             domain.NotificationInformative,
		Message:          companyNotice,
		InvitationStatus: &status,
		Related: &domain.RelatedEntity{
			EntityID:   inv.ID,
			EntityType: "employee_invitation",
		},
	}
	if err := insertNotificationTx(ctx, tx, notification); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return inv, employee, nil
}

// upsertEmployeeLink creates or relinks the professional's employment record
// on acceptance. Re-checks the not-already-linked condition under the row
// lock to close the invite-time/accept-time race.
func upsertEmployeeLink(ctx context.Context, tx *sql.Tx, inv *domain.EmployeeInvitation) (*domain.Employee, error) {
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
	err := tx.QueryRowContext(ctx, `
		SELECT id, user_id, company_id, position, status, current_project_id, current_project_role, created_at, version
		FROM employees WHERE user_id = $1
		FOR UPDATE
	`, inv.ProfessionalID).Scan(dst...)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		employee = &domain.Employee{
			UserID:    inv.ProfessionalID,
			CompanyID: &inv.CompanyID,
			Position:  inv.Position,
			Status:    domain.EmployeeAvailable,
		}
		query := `
			INSERT INTO employees (user_id, company_id, position, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, version
		`
		if err := tx.QueryRowContext(ctx, query, employee.UserID, employee.CompanyID, employee.Position, employee.Status).Scan(&employee.ID, &employee.CreatedAt, &employee.Version); err != nil {
			return nil, err
		}
		return employee, nil
	case err != nil:
		return nil, err
	}

	if employee.CompanyID != nil {
		return nil, fmt.Errorf("professional was linked to a company after being invited: %w", domain.ErrConflict)
	}

	employee.CompanyID = &inv.CompanyID
	employee.Position = inv.Position
	employee.Status = domain.EmployeeAvailable
	query := `
		UPDATE employees
		SET company_id = $1, position = $2, status = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, employee.CompanyID, employee.Position, employee.Status, employee.ID, employee.Version).Scan(&employee.Version); err != nil {
		return nil, notFound(err, "employee")
	}

	return employee, nil
}

func (r *Repository) GetInvitationByID(id int64) (*domain.EmployeeInvitation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	inv := &domain.EmployeeInvitation{ID: id}
	query := `
		SELECT professional_id, company_id, position, status, invited_at, responded_at, notification_id
		FROM employee_invitations WHERE id = $1
	`
	dst := []any{&inv.ProfessionalID, &inv.CompanyID, &inv.Position, &inv.Status, &inv.InvitedAt, &inv.RespondedAt, &inv.NotificationID}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, notFound(err, "invitation")
	}

	return inv, nil
}

// ListInvitationsForProfessional returns invitations addressed to the user,
// optionally filtered by status.
func (r *Repository) ListInvitationsForProfessional(professionalID int64, status *domain.InvitationStatus) ([]*domain.EmployeeInvitation, error) {
	return r.listInvitations("professional_id", professionalID, status)
}

// ListInvitationsForCompany returns invitations the company issued.
func (r *Repository) ListInvitationsForCompany(companyID int64, status *domain.InvitationStatus) ([]*domain.EmployeeInvitation, error) {
	return r.listInvitations("company_id", companyID, status)
}

func (r *Repository) listInvitations(column string, id int64, status *domain.InvitationStatus) ([]*domain.EmployeeInvitation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	// column is one of two fixed identifiers, never user input
	query := `
		SELECT id, professional_id, company_id, position, status, invited_at, responded_at, notification_id
		FROM employee_invitations
		WHERE ` + column + ` = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY invited_at DESC, id DESC
	`

	var statusArg any
	if status != nil {
		statusArg = string(*status)
	}

	rows, err := r.dbpool.QueryContext(ctx, query, id, statusArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]*domain.EmployeeInvitation, 0)
	for rows.Next() {
		inv := &domain.EmployeeInvitation{}
		dst := []any{&inv.ID, &inv.ProfessionalID, &inv.CompanyID, &inv.Position, &inv.Status, &inv.InvitedAt, &inv.RespondedAt, &inv.NotificationID}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invitations, nil
}
