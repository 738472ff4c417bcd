package repository

import (
	"context"
	"database/sql"
	"fmt"

	"expohall/internal/database"
	"expohall/internal/models"

	"github.com/lib/pq"
)

type ScheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (id, title, session_type, speaker, session_date, start_time, end_time, event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := r.db.Q(ctx).QueryRowContext(ctx, query,
		schedule.ID, schedule.Title, schedule.SessionType, schedule.Speaker,
		schedule.SessionDate, schedule.StartTime, schedule.EndTime, schedule.EventID,
	).Scan(&schedule.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*models.Schedule, error) {
	query := `
		SELECT id, title, session_type, speaker, session_date, start_time, end_time, event_id, created_at
		FROM schedules
		WHERE id = $1`

	var schedule models.Schedule
	err := r.db.Q(ctx).QueryRowContext(ctx, query, id).Scan(
		&schedule.ID, &schedule.Title, &schedule.SessionType, &schedule.Speaker,
		&schedule.SessionDate, &schedule.StartTime, &schedule.EndTime,
		&schedule.EventID, &schedule.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	boothIDs, err := r.boothIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	schedule.BoothIDs = boothIDs

	attendees, err := r.Attendees(ctx, id)
	if err != nil {
		return nil, err
	}
	schedule.Attendees = attendees
	return &schedule, nil
}

// List returns sessions with their booth sets and attendee counts, newest
// day first then by start time. An empty eventID means all sessions.
func (r *ScheduleRepository) List(ctx context.Context, eventID string) ([]models.ScheduleListItem, error) {
	query := `
		SELECT s.id, s.title, s.session_type, s.speaker, s.session_date, s.start_time, s.end_time,
		       s.event_id, s.created_at,
		       COALESCE(ARRAY_AGG(DISTINCT bsb.booth_id::text) FILTER (WHERE bsb.booth_id IS NOT NULL), '{}'),
		       COUNT(DISTINCT sa.user_id)
		FROM schedules s
		LEFT JOIN booth_schedule_bookings bsb ON bsb.schedule_id = s.id
		LEFT JOIN schedule_attendees sa ON sa.schedule_id = s.id
		WHERE ($1 = '' OR s.event_id::text = $1)
		GROUP BY s.id
		ORDER BY s.session_date DESC, s.start_time`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	items := []models.ScheduleListItem{}
	for rows.Next() {
		var item models.ScheduleListItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.SessionType, &item.Speaker,
			&item.SessionDate, &item.StartTime, &item.EndTime,
			&item.EventID, &item.CreatedAt,
			pq.Array(&item.BoothIDs), &item.AttendeeCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ScheduleRepository) Update(ctx context.Context, schedule *models.Schedule) error {
	query := `
		UPDATE schedules
		SET title = $2, session_type = $3, speaker = $4, session_date = $5,
		    start_time = $6, end_time = $7
		WHERE id = $1`

	result, err := r.db.Q(ctx).ExecContext(ctx, query,
		schedule.ID, schedule.Title, schedule.SessionType, schedule.Speaker,
		schedule.SessionDate, schedule.StartTime, schedule.EndTime)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
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

func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Q(ctx).ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
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

func (r *ScheduleRepository) ExistsForEvent(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := r.db.Q(ctx).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schedules WHERE event_id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check event schedules: %w", err)
	}
	return exists, nil
}

// AddAttendee reports whether the user was actually added; false means they
// had already joined.
func (r *ScheduleRepository) AddAttendee(ctx context.Context, scheduleID, userID string) (bool, error) {
	result, err := r.db.Q(ctx).ExecContext(ctx,
		`INSERT INTO schedule_attendees (schedule_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (schedule_id, user_id) DO NOTHING`,
		scheduleID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to add attendee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// RemoveAttendee reports whether the user was actually removed; false means
// they were not on the list.
func (r *ScheduleRepository) RemoveAttendee(ctx context.Context, scheduleID, userID string) (bool, error) {
	result, err := r.db.Q(ctx).ExecContext(ctx,
		`DELETE FROM schedule_attendees WHERE schedule_id = $1 AND user_id = $2`,
		scheduleID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove attendee: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

func (r *ScheduleRepository) Attendees(ctx context.Context, scheduleID string) ([]string, error) {
	rows, err := r.db.Q(ctx).QueryContext(ctx,
		`SELECT user_id FROM schedule_attendees WHERE schedule_id = $1 ORDER BY joined_at`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}
	defer rows.Close()

	users := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan attendee: %w", err)
		}
		users = append(users, userID)
	}
	return users, rows.Err()
}

func (r *ScheduleRepository) boothIDs(ctx context.Context, scheduleID string) ([]string, error) {
	rows, err := r.db.Q(ctx).QueryContext(ctx,
		`SELECT booth_id FROM booth_schedule_bookings WHERE schedule_id = $1 ORDER BY booth_id`, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule booths: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan booth id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
