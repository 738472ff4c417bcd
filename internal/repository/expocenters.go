package repository

import (
	"context"
	"database/sql"
	"fmt"

	"expohall/internal/database"
	"expohall/internal/models"

	"github.com/lib/pq"
)

type ExpoCenterRepository struct {
	db *database.DB
}

func NewExpoCenterRepository(db *database.DB) *ExpoCenterRepository {
	return &ExpoCenterRepository{db: db}
}

func (r *ExpoCenterRepository) Create(ctx context.Context, center *models.ExpoCenter) error {
	query := `
		INSERT INTO expo_centers (id, name, city, address, country, description, facilities, map_svg, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err := r.db.Q(ctx).QueryRowContext(ctx, query,
		center.ID, center.Name, center.City, center.Address, center.Country,
		center.Description, center.Facilities, center.MapSvg, pq.Array(center.Images),
	).Scan(&center.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expo center: %w", err)
	}
	return nil
}

func (r *ExpoCenterRepository) GetByID(ctx context.Context, id string) (*models.ExpoCenter, error) {
	query := `
		SELECT id, name, city, address, country, description, facilities, map_svg, images, created_at
		FROM expo_centers
		WHERE id = $1`

	var center models.ExpoCenter
	err := r.db.Q(ctx).QueryRowContext(ctx, query, id).Scan(
		&center.ID, &center.Name, &center.City, &center.Address, &center.Country,
		&center.Description, &center.Facilities, &center.MapSvg, pq.Array(&center.Images), &center.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expo center: %w", err)
	}
	return &center, nil
}

func (r *ExpoCenterRepository) List(ctx context.Context) ([]models.ExpoCenter, error) {
	query := `
		SELECT id, name, city, address, country, description, facilities, map_svg, images, created_at
		FROM expo_centers
		ORDER BY created_at DESC`

	rows, err := r.db.Q(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expo centers: %w", err)
	}
	defer rows.Close()

	centers := []models.ExpoCenter{}
	for rows.Next() {
		var center models.ExpoCenter
		if err := rows.Scan(
			&center.ID, &center.Name, &center.City, &center.Address, &center.Country,
			&center.Description, &center.Facilities, &center.MapSvg, pq.Array(&center.Images), &center.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expo center: %w", err)
		}
		centers = append(centers, center)
	}
	return centers, rows.Err()
}

func (r *ExpoCenterRepository) Update(ctx context.Context, center *models.ExpoCenter) error {
	query := `
		UPDATE expo_centers
		SET name = $2, city = $3, address = $4, country = $5, description = $6,
		    facilities = $7, map_svg = $8, images = $9
		WHERE id = $1`

	result, err := r.db.Q(ctx).ExecContext(ctx, query,
		center.ID, center.Name, center.City, center.Address, center.Country,
		center.Description, center.Facilities, center.MapSvg, pq.Array(center.Images),
	)
	if err != nil {
		return fmt.Errorf("failed to update expo center: %w", err)
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

func (r *ExpoCenterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Q(ctx).ExecContext(ctx, `DELETE FROM expo_centers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expo center: %w", err)
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

// Stats собирает сводку по выставочному центру одним запросом
func (r *ExpoCenterRepository) Stats(ctx context.Context, id string) (*models.ExpoCenterStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM booths b WHERE b.expo_center_id = x.id),
			(SELECT COUNT(*) FROM locations l JOIN booths b ON l.booth_id = b.id WHERE b.expo_center_id = x.id),
			(SELECT COUNT(*) FROM events e WHERE e.expo_center_id = x.id),
			(SELECT COUNT(*) FROM events e WHERE e.expo_center_id = x.id AND e.date_to >= CURRENT_DATE),
			(SELECT COUNT(*) FROM event_registrations reg
				JOIN events e ON reg.event_id = e.id
				WHERE e.expo_center_id = x.id),
			(SELECT COUNT(*) FROM event_registrations reg
				JOIN events e ON reg.event_id = e.id
				WHERE e.expo_center_id = x.id AND reg.status = 'Approved')
		FROM expo_centers x
		WHERE x.id = $1`

	var stats models.ExpoCenterStats
	err := r.db.Q(ctx).QueryRowContext(ctx, query, id).Scan(
		&stats.BoothCount, &stats.LocationCount, &stats.EventCount,
		&stats.UpcomingEventCount, &stats.RegistrationCount, &stats.ApprovedRegistrationCount,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expo center stats: %w", err)
	}
	stats.ExpoCenterID = id
	return &stats, nil
}
