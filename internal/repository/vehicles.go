package repository

import (
	"context"
	"time"

	"github.com/workhive/backend/internal/domain"
)

func (r *Repository) CreateVehicle(vehicle *domain.Vehicle) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO vehicles (company_id, plate, model, year, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{vehicle.CompanyID, vehicle.Plate, vehicle.Model, vehicle.Year, vehicle.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.Version); err != nil {
		if cerr, ok := constraintConflict(err, "vehicles_plate_key", "a vehicle with this plate already exists"); ok {
			return cerr
		}
		return err
	}

	return nil
}

func (r *Repository) GetVehicleByID(id int64) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT company_id, plate, model, year, status, assigned_employee_id, created_at, version
		FROM vehicles WHERE id = $1
	`

	vehicle := &domain.Vehicle{ID: id}
	dst := []any{&vehicle.CompanyID, &vehicle.Plate, &vehicle.Model, &vehicle.Year, &vehicle.Status, &vehicle.AssignedEmployeeID, &vehicle.CreatedAt, &vehicle.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, notFound(err, "vehicle")
	}

	return vehicle, nil
}

func (r *Repository) ListVehiclesByCompany(companyID int64) ([]*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, plate, model, year, status, assigned_employee_id, created_at, version
		FROM vehicles
		WHERE company_id = $1
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		vehicle := &domain.Vehicle{CompanyID: companyID}
		dst := []any{&vehicle.ID, &vehicle.Plate, &vehicle.Model, &vehicle.Year, &vehicle.Status, &vehicle.AssignedEmployeeID, &vehicle.CreatedAt, &vehicle.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}

func (r *Repository) UpdateVehicle(vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET
			plate = $1,
			model = $2,
			year = $3,
			status = $4,
			assigned_employee_id = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{vehicle.Plate, vehicle.Model, vehicle.Year, vehicle.Status, vehicle.AssignedEmployeeID, vehicle.ID, vehicle.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&vehicle.Version); err != nil {
		if cerr, ok := constraintConflict(err, "vehicles_plate_key", "a vehicle with this plate already exists"); ok {
			return cerr
		}
		return notFound(err, "vehicle")
	}

	return nil
}

func (r *Repository) DeleteVehicle(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM vehicles WHERE id = $1`
	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
