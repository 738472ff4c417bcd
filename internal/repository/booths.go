package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"expohall/internal/database"
	"expohall/internal/models"

	"github.com/lib/pq"
)

type BoothRepository struct {
	db *database.DB
}

func NewBoothRepository(db *database.DB) *BoothRepository {
	return &BoothRepository{db: db}
}

func (r *BoothRepository) Create(ctx context.Context, booth *models.Booth) error {
	query := `
		INSERT INTO booths (id, expo_center_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.Q(ctx).QueryRowContext(ctx, query, booth.ID, booth.ExpoCenterID, booth.Name).
		Scan(&booth.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booth: %w", err)
	}
	return nil
}

func (r *BoothRepository) GetByID(ctx context.Context, id string) (*models.Booth, error) {
	query := `SELECT id, expo_center_id, name, created_at FROM booths WHERE id = $1`

	var booth models.Booth
	err := r.db.Q(ctx).QueryRowContext(ctx, query, id).Scan(
		&booth.ID, &booth.ExpoCenterID, &booth.Name, &booth.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booth: %w", err)
	}
	return &booth, nil
}

func (r *BoothRepository) List(ctx context.Context) ([]models.Booth, error) {
	return r.list(ctx, `SELECT id, expo_center_id, name, created_at FROM booths ORDER BY name`)
}

func (r *BoothRepository) ListByExpoCenter(ctx context.Context, expoCenterID string) ([]models.Booth, error) {
	return r.list(ctx,
		`SELECT id, expo_center_id, name, created_at FROM booths WHERE expo_center_id = $1 ORDER BY name`,
		expoCenterID)
}

func (r *BoothRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Booth, error) {
	return r.list(ctx,
		`SELECT id, expo_center_id, name, created_at FROM booths WHERE id = ANY($1::uuid[]) ORDER BY name`,
		pq.Array(ids))
}

func (r *BoothRepository) list(ctx context.Context, query string, args ...any) ([]models.Booth, error) {
	rows, err := r.db.Q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list booths: %w", err)
	}
	defer rows.Close()

	booths := []models.Booth{}
	for rows.Next() {
		var booth models.Booth
		if err := rows.Scan(&booth.ID, &booth.ExpoCenterID, &booth.Name, &booth.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booth: %w", err)
		}
		booths = append(booths, booth)
	}
	return booths, rows.Err()
}

func (r *BoothRepository) Update(ctx context.Context, booth *models.Booth) error {
	result, err := r.db.Q(ctx).ExecContext(ctx,
		`UPDATE booths SET name = $2 WHERE id = $1`, booth.ID, booth.Name)
	if err != nil {
		return fmt.Errorf("failed to update booth: %w", err)
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

func (r *BoothRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Q(ctx).ExecContext(ctx, `DELETE FROM booths WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booth: %w", err)
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

// Lock takes row locks on the given booths in a fixed order. Every booking
// write path locks before scanning the ledgers, so two concurrent requests
// for overlapping booth sets serialize instead of both passing the scan.
// Must run inside a transaction.
func (r *BoothRepository) Lock(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Q(ctx).QueryContext(ctx,
		`SELECT id FROM booths WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`,
		pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to lock booths: %w", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan locked booth: %w", err)
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if locked != len(ids) {
		return sql.ErrNoRows
	}
	return nil
}

// EventBookings returns the event ledger entries of the given booths.
func (r *BoothRepository) EventBookings(ctx context.Context, boothIDs []string) ([]models.EventBooking, error) {
	query := `
		SELECT booth_id, event_id, start_date, end_date
		FROM booth_event_bookings
		WHERE booth_id = ANY($1::uuid[])`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query, pq.Array(boothIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get event bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.EventBooking{}
	for rows.Next() {
		var b models.EventBooking
		if err := rows.Scan(&b.BoothID, &b.EventID, &b.StartDate, &b.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan event booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// AllEventBookings returns the whole event ledger for an expo center,
// used by the availability view.
func (r *BoothRepository) AllEventBookings(ctx context.Context, expoCenterID string) ([]models.EventBooking, error) {
	query := `
		SELECT beb.booth_id, beb.event_id, beb.start_date, beb.end_date
		FROM booth_event_bookings beb
		JOIN booths b ON beb.booth_id = b.id
		WHERE b.expo_center_id = $1`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query, expoCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.EventBooking{}
	for rows.Next() {
		var b models.EventBooking
		if err := rows.Scan(&b.BoothID, &b.EventID, &b.StartDate, &b.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan event booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BoothRepository) AddEventBookings(ctx context.Context, event *models.Event, boothIDs []string) error {
	query := `
		INSERT INTO booth_event_bookings (booth_id, event_id, start_date, end_date)
		VALUES ($1, $2, $3, $4)`

	for _, boothID := range boothIDs {
		if _, err := r.db.Q(ctx).ExecContext(ctx, query, boothID, event.ID, event.DateFrom, event.DateTo); err != nil {
			return fmt.Errorf("failed to add event booking for booth %s: %w", boothID, err)
		}
	}
	return nil
}

func (r *BoothRepository) RemoveEventBookings(ctx context.Context, eventID string) error {
	if _, err := r.db.Q(ctx).ExecContext(ctx,
		`DELETE FROM booth_event_bookings WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("failed to remove event bookings: %w", err)
	}
	return nil
}

func (r *BoothRepository) HasEventBookings(ctx context.Context, boothID string) (bool, error) {
	var exists bool
	err := r.db.Q(ctx).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM booth_event_bookings WHERE booth_id = $1)`, boothID).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check event bookings: %w", err)
	}
	return exists, nil
}

// ScheduleBookings returns the schedule ledger entries of the given booths
// for one day of one event. Session conflicts are scoped to that slice.
func (r *BoothRepository) ScheduleBookings(ctx context.Context, eventID string, slotDate time.Time, boothIDs []string) ([]models.ScheduleBooking, error) {
	query := `
		SELECT booth_id, schedule_id, event_id, slot_date, start_time, end_time
		FROM booth_schedule_bookings
		WHERE event_id = $1 AND slot_date = $2 AND booth_id = ANY($3::uuid[])`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query, eventID, slotDate, pq.Array(boothIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.ScheduleBooking{}
	for rows.Next() {
		var b models.ScheduleBooking
		if err := rows.Scan(&b.BoothID, &b.ScheduleID, &b.EventID, &b.SlotDate, &b.StartTime, &b.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan schedule booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *BoothRepository) AddScheduleBookings(ctx context.Context, schedule *models.Schedule, boothIDs []string) error {
	query := `
		INSERT INTO booth_schedule_bookings (booth_id, schedule_id, event_id, slot_date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, boothID := range boothIDs {
		if _, err := r.db.Q(ctx).ExecContext(ctx, query,
			boothID, schedule.ID, schedule.EventID, schedule.SessionDate, schedule.StartTime, schedule.EndTime); err != nil {
			return fmt.Errorf("failed to add schedule booking for booth %s: %w", boothID, err)
		}
	}
	return nil
}

func (r *BoothRepository) RemoveScheduleBookings(ctx context.Context, scheduleID string) error {
	if _, err := r.db.Q(ctx).ExecContext(ctx,
		`DELETE FROM booth_schedule_bookings WHERE schedule_id = $1`, scheduleID); err != nil {
		return fmt.Errorf("failed to remove schedule bookings: %w", err)
	}
	return nil
}
