package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"expohall/internal/database"
	"expohall/internal/models"

	"github.com/lib/pq"
)

type RegistrationRepository struct {
	db *database.DB
}

func NewRegistrationRepository(db *database.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// IsUniqueViolation reports whether err is the Postgres unique_violation,
// the backstop for two racing registrations on one seat.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO event_registrations
			(id, user_id, event_id, booth_id, location_id, stall_name, staff_name, product, file_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.Q(ctx).QueryRowContext(ctx, query,
		reg.ID, reg.UserID, reg.EventID, reg.BoothID, reg.LocationID,
		reg.StallName, reg.StaffName, reg.Product, reg.FilePath, reg.Status,
	).Scan(&reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	query := `
		SELECT id, user_id, event_id, booth_id, location_id, stall_name, staff_name,
		       product, file_path, status, created_at, updated_at
		FROM event_registrations
		WHERE id = $1`

	var reg models.Registration
	err := r.db.Q(ctx).QueryRowContext(ctx, query, id).Scan(
		&reg.ID, &reg.UserID, &reg.EventID, &reg.BoothID, &reg.LocationID,
		&reg.StallName, &reg.StaffName, &reg.Product, &reg.FilePath, &reg.Status,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return &reg, nil
}

// List returns registrations enriched with booth and location details,
// optionally filtered by event and/or user.
func (r *RegistrationRepository) List(ctx context.Context, eventID, userID string) ([]models.RegistrationView, error) {
	query := `
		SELECT reg.id, reg.user_id, reg.event_id, reg.booth_id, reg.location_id,
		       reg.stall_name, reg.staff_name, reg.product, reg.file_path, reg.status,
		       reg.created_at, reg.updated_at,
		       b.name, l.name, l.price
		FROM event_registrations reg
		JOIN booths b ON reg.booth_id = b.id
		JOIN locations l ON reg.location_id = l.id
		WHERE ($1 = '' OR reg.event_id::text = $1)
		  AND ($2 = '' OR reg.user_id = $2)
		ORDER BY reg.created_at DESC`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	views := []models.RegistrationView{}
	for rows.Next() {
		var v models.RegistrationView
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.EventID, &v.BoothID, &v.LocationID,
			&v.StallName, &v.StaffName, &v.Product, &v.FilePath, &v.Status,
			&v.CreatedAt, &v.UpdatedAt,
			&v.BoothName, &v.LocationName, &v.LocationPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// FindBySeat looks up a registration holding the (event, booth, location)
// triple, skipping excludeID so an edit does not conflict with itself.
func (r *RegistrationRepository) FindBySeat(ctx context.Context, eventID, boothID, locationID, excludeID string) (*models.Registration, error) {
	query := `
		SELECT id, user_id, event_id, booth_id, location_id, stall_name, staff_name,
		       product, file_path, status, created_at, updated_at
		FROM event_registrations
		WHERE event_id = $1 AND booth_id = $2 AND location_id = $3
		  AND ($4 = '' OR id::text <> $4)`

	var reg models.Registration
	err := r.db.Q(ctx).QueryRowContext(ctx, query, eventID, boothID, locationID, excludeID).Scan(
		&reg.ID, &reg.UserID, &reg.EventID, &reg.BoothID, &reg.LocationID,
		&reg.StallName, &reg.StaffName, &reg.Product, &reg.FilePath, &reg.Status,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find registration by seat: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) Update(ctx context.Context, reg *models.Registration) error {
	query := `
		UPDATE event_registrations
		SET event_id = $2, booth_id = $3, location_id = $4, stall_name = $5,
		    staff_name = $6, product = $7, file_path = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.Q(ctx).QueryRowContext(ctx, query,
		reg.ID, reg.EventID, reg.BoothID, reg.LocationID,
		reg.StallName, reg.StaffName, reg.Product, reg.FilePath,
	).Scan(&reg.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.Q(ctx).ExecContext(ctx,
		`UPDATE event_registrations SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Q(ctx).ExecContext(ctx, `DELETE FROM event_registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *RegistrationRepository) ExistsForEvent(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := r.db.Q(ctx).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM event_registrations WHERE event_id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check event registrations: %w", err)
	}
	return exists, nil
}

// BookedLocations returns the (booth, location) pairs already taken within
// an event, the source for the cached availability view.
func (r *RegistrationRepository) BookedLocations(ctx context.Context, eventID string) ([]models.BookedLocation, error) {
	rows, err := r.db.Q(ctx).QueryContext(ctx,
		`SELECT booth_id, location_id FROM event_registrations WHERE event_id = $1`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked locations: %w", err)
	}
	defer rows.Close()

	booked := []models.BookedLocation{}
	for rows.Next() {
		var b models.BookedLocation
		if err := rows.Scan(&b.BoothID, &b.LocationID); err != nil {
			return nil, fmt.Errorf("failed to scan booked location: %w", err)
		}
		booked = append(booked, b)
	}
	return booked, rows.Err()
}

// BookedLocationIDs returns the taken location ids within one booth for one
// event, used by the free-location view.
func (r *RegistrationRepository) BookedLocationIDs(ctx context.Context, eventID, boothID, excludeRegistrationID string) ([]string, error) {
	query := `
		SELECT location_id FROM event_registrations
		WHERE event_id = $1 AND booth_id = $2
		  AND ($3 = '' OR id::text <> $3)`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query, eventID, boothID, excludeRegistrationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked location ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan location id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
