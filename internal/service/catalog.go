package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	apperrors "expohall/internal/errors"
	"expohall/internal/models"

	"github.com/google/uuid"
)

// ExpoCenterService manages venues. Deletion is guarded: a center with
// events still on the calendar cannot go away.
type ExpoCenterService struct {
	centers ExpoCenterStore
	events  EventStore
	files   FileStore
}

func (s *ExpoCenterService) Create(ctx context.Context, req *models.CreateExpoCenterRequest) (*models.ExpoCenter, error) {
	if len(req.Images) == 0 {
		return nil, apperrors.Validation("at least one image is required")
	}

	center := &models.ExpoCenter{
		ID:          uuid.New().String(),
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Country:     req.Country,
		Description: req.Description,
		Facilities:  req.Facilities,
		MapSvg:      req.MapSvg,
		Images:      req.Images,
	}

	if err := s.centers.Create(ctx, center); err != nil {
		return nil, err
	}

	slog.Info("Expo center created", "expo_center_id", center.ID, "name", center.Name)
	return center, nil
}

func (s *ExpoCenterService) GetByID(ctx context.Context, id string) (*models.ExpoCenter, error) {
	center, err := s.centers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, apperrors.NotFound("expo center", id)
	}
	return center, nil
}

func (s *ExpoCenterService) List(ctx context.Context) ([]models.ExpoCenter, error) {
	return s.centers.List(ctx)
}

func (s *ExpoCenterService) Update(ctx context.Context, id string, req *models.UpdateExpoCenterRequest) (*models.ExpoCenter, error) {
	center, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldMapSvg := center.MapSvg

	center.Name = req.Name
	center.City = req.City
	center.Address = req.Address
	center.Country = req.Country
	center.Description = req.Description
	center.Facilities = req.Facilities
	if req.MapSvg != "" {
		center.MapSvg = req.MapSvg
	}
	if len(req.Images) > 0 {
		center.Images = req.Images
	}

	if err := s.centers.Update(ctx, center); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("expo center", id)
		}
		return nil, err
	}

	// the replaced map file is no longer referenced by anyone
	if req.MapSvg != "" && oldMapSvg != "" && oldMapSvg != req.MapSvg {
		if err := s.files.Remove(oldMapSvg); err != nil {
			slog.Warn("Failed to remove replaced map file", "path", oldMapSvg, "error", err)
		}
	}

	return center, nil
}

func (s *ExpoCenterService) Delete(ctx context.Context, id string) error {
	center, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hasEvents, err := s.events.ExistsForExpoCenter(ctx, id)
	if err != nil {
		return err
	}
	if hasEvents {
		return apperrors.Dependency("expo center %s still has events", id)
	}

	if err := s.centers.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("expo center", id)
		}
		return err
	}

	for _, path := range append([]string{center.MapSvg}, center.Images...) {
		if path == "" {
			continue
		}
		if err := s.files.Remove(path); err != nil {
			slog.Warn("Failed to remove expo center file", "path", path, "error", err)
		}
	}

	slog.Info("Expo center deleted", "expo_center_id", id)
	return nil
}

func (s *ExpoCenterService) Stats(ctx context.Context, id string) (*models.ExpoCenterStats, error) {
	stats, err := s.centers.Stats(ctx, id)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, apperrors.NotFound("expo center", id)
	}
	return stats, nil
}

// BoothService manages booths. Renames are free; removal is blocked while
// the booth's event ledger is non-empty.
type BoothService struct {
	booths  BoothStore
	centers ExpoCenterStore
}

func (s *BoothService) Create(ctx context.Context, req *models.CreateBoothRequest) (*models.Booth, error) {
	center, err := s.centers.GetByID(ctx, req.ExpoCenterID)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, apperrors.NotFound("expo center", req.ExpoCenterID)
	}

	booth := &models.Booth{
		ID:           uuid.New().String(),
		ExpoCenterID: req.ExpoCenterID,
		Name:         req.Name,
	}

	if err := s.booths.Create(ctx, booth); err != nil {
		return nil, err
	}
	return booth, nil
}

func (s *BoothService) GetByID(ctx context.Context, id string) (*models.Booth, error) {
	booth, err := s.booths.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booth == nil {
		return nil, apperrors.NotFound("booth", id)
	}
	return booth, nil
}

func (s *BoothService) List(ctx context.Context) ([]models.Booth, error) {
	return s.booths.List(ctx)
}

func (s *BoothService) ListByExpoCenter(ctx context.Context, expoCenterID string) ([]models.Booth, error) {
	center, err := s.centers.GetByID(ctx, expoCenterID)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, apperrors.NotFound("expo center", expoCenterID)
	}
	return s.booths.ListByExpoCenter(ctx, expoCenterID)
}

func (s *BoothService) Update(ctx context.Context, id string, req *models.UpdateBoothRequest) (*models.Booth, error) {
	booth, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booth.Name = req.Name
	if err := s.booths.Update(ctx, booth); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booth", id)
		}
		return nil, err
	}
	return booth, nil
}

func (s *BoothService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	hasBookings, err := s.booths.HasEventBookings(ctx, id)
	if err != nil {
		return err
	}
	if hasBookings {
		return apperrors.Dependency("booth %s still has event bookings", id)
	}

	if err := s.booths.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("booth", id)
		}
		return err
	}
	return nil
}

// LocationService manages seats within booths and answers the free-seat
// view used by the registration form.
type LocationService struct {
	locations     LocationStore
	booths        BoothStore
	registrations RegistrationStore
}

func (s *LocationService) Create(ctx context.Context, req *models.CreateLocationRequest) (*models.Location, error) {
	booth, err := s.booths.GetByID(ctx, req.BoothID)
	if err != nil {
		return nil, err
	}
	if booth == nil {
		return nil, apperrors.NotFound("booth", req.BoothID)
	}

	location := &models.Location{
		ID:      uuid.New().String(),
		BoothID: req.BoothID,
		Name:    req.Name,
		Price:   req.Price,
	}

	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) GetByID(ctx context.Context, id string) (*models.Location, error) {
	location, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, apperrors.NotFound("location", id)
	}
	return location, nil
}

func (s *LocationService) Update(ctx context.Context, id string, req *models.UpdateLocationRequest) (*models.Location, error) {
	location, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	location.Name = req.Name
	location.Price = req.Price
	if err := s.locations.Update(ctx, location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("location", id)
		}
		return nil, err
	}
	return location, nil
}

func (s *LocationService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	hasRegistrations, err := s.locations.HasRegistrations(ctx, id)
	if err != nil {
		return err
	}
	if hasRegistrations {
		return apperrors.Dependency("location %s still has registrations", id)
	}

	if err := s.locations.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("location", id)
		}
		return err
	}
	return nil
}

// ListByBooth returns the booth's locations. When eventID is given, taken
// seats are filtered out; excludeRegistrationID keeps a registration's own
// seat visible on its edit form.
func (s *LocationService) ListByBooth(ctx context.Context, boothID, eventID, excludeRegistrationID string) ([]models.Location, error) {
	booth, err := s.booths.GetByID(ctx, boothID)
	if err != nil {
		return nil, err
	}
	if booth == nil {
		return nil, apperrors.NotFound("booth", boothID)
	}

	locations, err := s.locations.ListByBooth(ctx, boothID)
	if err != nil {
		return nil, err
	}
	if eventID == "" {
		return locations, nil
	}

	taken, err := s.registrations.BookedLocationIDs(ctx, eventID, boothID, excludeRegistrationID)
	if err != nil {
		return nil, err
	}

	takenSet := make(map[string]struct{}, len(taken))
	for _, id := range taken {
		takenSet[id] = struct{}{}
	}

	free := []models.Location{}
	for _, location := range locations {
		if _, ok := takenSet[location.ID]; !ok {
			free = append(free, location)
		}
	}
	return free, nil
}
