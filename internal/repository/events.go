package repository

import (
	"context"
	"database/sql"
	"fmt"

	"expohall/internal/database"
	"expohall/internal/models"

	"github.com/lib/pq"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, title, description, theme, date_from, date_to, expo_center_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.Q(ctx).QueryRowContext(ctx, query,
		event.ID, event.Title, event.Description, event.Theme,
		event.DateFrom, event.DateTo, event.ExpoCenterID,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := `
		SELECT id, title, description, theme, date_from, date_to, expo_center_id, created_at, updated_at
		FROM events
		WHERE id = $1`

	var event models.Event
	err := r.db.Q(ctx).QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.Theme,
		&event.DateFrom, &event.DateTo, &event.ExpoCenterID,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	boothIDs, err := r.BoothIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	event.BoothIDs = boothIDs
	return &event, nil
}

// List returns events newest first, each with its expo center name and its
// reserved booth set from the ledger.
func (r *EventRepository) List(ctx context.Context) ([]models.EventListItem, error) {
	query := `
		SELECT e.id, e.title, e.description, e.theme, e.date_from, e.date_to,
		       e.expo_center_id, e.created_at, e.updated_at, x.name,
		       COALESCE(ARRAY_AGG(beb.booth_id::text) FILTER (WHERE beb.booth_id IS NOT NULL), '{}')
		FROM events e
		JOIN expo_centers x ON e.expo_center_id = x.id
		LEFT JOIN booth_event_bookings beb ON beb.event_id = e.id
		GROUP BY e.id, x.name
		ORDER BY e.created_at DESC`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return scanEventItems(rows)
}

// ListByIDs preserves the order of ids, which carries search relevance.
func (r *EventRepository) ListByIDs(ctx context.Context, ids []string) ([]models.EventListItem, error) {
	query := `
		SELECT e.id, e.title, e.description, e.theme, e.date_from, e.date_to,
		       e.expo_center_id, e.created_at, e.updated_at, x.name,
		       COALESCE(ARRAY_AGG(beb.booth_id::text) FILTER (WHERE beb.booth_id IS NOT NULL), '{}')
		FROM events e
		JOIN expo_centers x ON e.expo_center_id = x.id
		LEFT JOIN booth_event_bookings beb ON beb.event_id = e.id
		WHERE e.id = ANY($1::uuid[])
		GROUP BY e.id, x.name`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	items, err := scanEventItems(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.EventListItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	ordered := make([]models.EventListItem, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

func scanEventItems(rows *sql.Rows) ([]models.EventListItem, error) {
	items := []models.EventListItem{}
	for rows.Next() {
		var item models.EventListItem
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Theme,
			&item.DateFrom, &item.DateTo, &item.ExpoCenterID,
			&item.CreatedAt, &item.UpdatedAt, &item.ExpoCenterName,
			pq.Array(&item.BoothIDs),
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, theme = $4, date_from = $5, date_to = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.Q(ctx).QueryRowContext(ctx, query,
		event.ID, event.Title, event.Description, event.Theme, event.DateFrom, event.DateTo,
	).Scan(&event.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Q(ctx).ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
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

func (r *EventRepository) ExistsForExpoCenter(ctx context.Context, expoCenterID string) (bool, error) {
	var exists bool
	err := r.db.Q(ctx).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM events WHERE expo_center_id = $1)`, expoCenterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check expo center events: %w", err)
	}
	return exists, nil
}

// BoothIDs returns the event's reserved booth set from the booking ledger.
func (r *EventRepository) BoothIDs(ctx context.Context, eventID string) ([]string, error) {
	rows, err := r.db.Q(ctx).QueryContext(ctx,
		`SELECT booth_id FROM booth_event_bookings WHERE event_id = $1 ORDER BY booth_id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event booths: %w", err)
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
