package repository

import (
	"context"
	"database/sql"
	"fmt"

	"expohall/internal/database"
	"expohall/internal/models"
)

type LocationRepository struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (id, booth_id, name, price)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.Q(ctx).QueryRowContext(ctx, query,
		location.ID, location.BoothID, location.Name, location.Price,
	).Scan(&location.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id string) (*models.Location, error) {
	query := `SELECT id, booth_id, name, price, created_at FROM locations WHERE id = $1`

	var location models.Location
	err := r.db.Q(ctx).QueryRowContext(ctx, query, id).Scan(
		&location.ID, &location.BoothID, &location.Name, &location.Price, &location.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return &location, nil
}

func (r *LocationRepository) ListByBooth(ctx context.Context, boothID string) ([]models.Location, error) {
	query := `SELECT id, booth_id, name, price, created_at FROM locations WHERE booth_id = $1 ORDER BY name`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query, boothID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		var location models.Location
		if err := rows.Scan(&location.ID, &location.BoothID, &location.Name, &location.Price, &location.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) Update(ctx context.Context, location *models.Location) error {
	result, err := r.db.Q(ctx).ExecContext(ctx,
		`UPDATE locations SET name = $2, price = $3 WHERE id = $1`,
		location.ID, location.Name, location.Price)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
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

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Q(ctx).ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
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

// Lock takes a row lock on one location. Registration writes lock the seat
// before checking the triple, so two racing registrations for the same seat
// serialize. Must run inside a transaction.
func (r *LocationRepository) Lock(ctx context.Context, id string) error {
	var locked string
	err := r.db.Q(ctx).QueryRowContext(ctx,
		`SELECT id FROM locations WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		return fmt.Errorf("failed to lock location: %w", err)
	}
	return nil
}

func (r *LocationRepository) HasRegistrations(ctx context.Context, locationID string) (bool, error) {
	var exists bool
	err := r.db.Q(ctx).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM location_registrations WHERE location_id = $1)`, locationID).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check location registrations: %w", err)
	}
	return exists, nil
}

func (r *LocationRepository) AddRegistrationBooking(ctx context.Context, booking *models.LocationBooking) error {
	query := `
		INSERT INTO location_registrations (location_id, registration_id, event_id, booked_on)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.Q(ctx).ExecContext(ctx, query,
		booking.LocationID, booking.RegistrationID, booking.EventID, booking.BookedOn); err != nil {
		return fmt.Errorf("failed to add registration booking: %w", err)
	}
	return nil
}

func (r *LocationRepository) RemoveRegistrationBooking(ctx context.Context, registrationID string) error {
	if _, err := r.db.Q(ctx).ExecContext(ctx,
		`DELETE FROM location_registrations WHERE registration_id = $1`, registrationID); err != nil {
		return fmt.Errorf("failed to remove registration booking: %w", err)
	}
	return nil
}
