package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workhive/backend/internal/config"
	"github.com/workhive/backend/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 5

	return NewRepository(cfg, db), mock
}

// timeCapture records the time.Time argument a statement was executed with.
type timeCapture struct {
	v time.Time
}

func (c *timeCapture) Match(v driver.Value) bool {
	ts, ok := v.(time.Time)
	if ok {
		c.v = ts
	}
	return ok
}

func projectRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "completion_date", "status",
		"creator_id", "creator_role", "company_id", "client_id", "created_at", "version",
	}).AddRow(
		int64(1), "Site remodel", "", nil, "in_progress",
		int64(10), "company", int64(10), nil, time.Now(), int32(1),
	)
}

func employeeColumns() []string {
	return []string{
		"id", "user_id", "company_id", "position", "status",
		"current_project_id", "current_project_role", "created_at", "version",
	}
}

func historyColumns() []string {
	return []string{"id", "project_id", "role", "start_date", "end_date"}
}

func rosterColumns() []string {
	return []string{"id", "employee_id", "role", "status"}
}

func TestCreateInvitationDuplicatePending(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT company_id FROM employees").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO employee_invitations").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employee_invitations_pending_key"})
	mock.ExpectRollback()

	inv := &domain.EmployeeInvitation{ProfessionalID: 20, CompanyID: 10, Position: "Electrician"}
	_, err := repo.CreateInvitation(inv, "come work with us")

	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAssignEmployeeRollsBackOnFailure(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM projects").WillReturnRows(projectRow())
	mock.ExpectQuery("SELECT (.+) FROM project_employees").
		WillReturnRows(sqlmock.NewRows(rosterColumns()))
	mock.ExpectQuery("SELECT (.+) FROM employees").
		WillReturnRows(sqlmock.NewRows(employeeColumns()).
			AddRow(int64(2), int64(20), int64(10), "Electrician", "available", nil, "", time.Now(), int32(1)))
	mock.ExpectQuery("SELECT (.+) FROM employee_project_history").
		WillReturnRows(sqlmock.NewRows(historyColumns()))
	mock.ExpectQuery("INSERT INTO project_employees").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	// the employee write fails after the roster write: everything before it
	// must be rolled back, nothing committed
	mock.ExpectQuery("UPDATE employees").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, _, err := repo.AssignEmployee(1, 2, "Lead")

	if err == nil {
		t.Fatal("expected an error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRemoveEmployeeStampsSingleTimestamp(t *testing.T) {
	repo, mock := newMockRepository(t)

	start := time.Now().UTC().Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM projects").WillReturnRows(projectRow())
	mock.ExpectQuery("SELECT (.+) FROM project_employees").
		WillReturnRows(sqlmock.NewRows(rosterColumns()).
			AddRow(int64(3), int64(2), "Lead", "active"))
	mock.ExpectQuery("SELECT (.+) FROM employees").
		WillReturnRows(sqlmock.NewRows(employeeColumns()).
			AddRow(int64(2), int64(20), int64(10), "Electrician", "on_project", int64(1), "Lead", time.Now(), int32(1)))
	mock.ExpectQuery("SELECT (.+) FROM employee_project_history").
		WillReturnRows(sqlmock.NewRows(historyColumns()).
			AddRow(int64(5), int64(1), "Lead", start, nil))
	mock.ExpectExec("UPDATE project_employees").
		WithArgs("inactive", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE employees").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int32(2)))
	stamped := &timeCapture{}
	mock.ExpectExec("UPDATE employee_project_history").
		WithArgs(stamped, int64(2), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO notifications").
		WillReturnRows(sqlmock.NewRows([]string{"id", "read", "created_at"}).
			AddRow(int64(9), false, time.Now()))
	mock.ExpectCommit()

	_, employee, err := repo.RemoveEmployee(1, 2)
	if err != nil {
		t.Fatalf("RemoveEmployee: %v", err)
	}

	entry := employee.ProjectHistory[0]
	if entry.EndDate == nil {
		t.Fatal("history entry still open")
	}
	// the stored end_date and the returned entity carry the same instant
	if !stamped.v.Equal(*entry.EndDate) {
		t.Errorf("stored end_date %v != returned end date %v", stamped.v, *entry.EndDate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateEmployeeVersionConflict(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE employees").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	employee := &domain.Employee{ID: 2, Status: domain.EmployeeAvailable, Version: 1}
	err := repo.UpdateEmployee(employee)

	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateEmployeeGone(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("UPDATE employees").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	employee := &domain.Employee{ID: 2, Status: domain.EmployeeAvailable, Version: 1}
	err := repo.UpdateEmployee(employee)

	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
