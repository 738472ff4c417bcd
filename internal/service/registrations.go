package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "expohall/internal/errors"
	"expohall/internal/interval"
	"expohall/internal/models"
	"expohall/internal/repository"

	"github.com/google/uuid"
)

// RegistrationService assigns exhibitors to seats. A seat is one
// (event, booth, location) triple, consumed for the event's whole run; the
// location row lock plus the unique index keep two racing exhibitors from
// sharing one.
type RegistrationService struct {
	tx            TxRunner
	registrations RegistrationStore
	events        EventStore
	locations     LocationStore
	publisher     Publisher
	cache         AvailabilityCache
	files         FileStore
}

// validateSeat checks that the booth is reserved by the event and the
// location belongs to the booth.
func (s *RegistrationService) validateSeat(ctx context.Context, eventID, boothID, locationID string) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return apperrors.NotFound("event", eventID)
	}

	reserved := false
	for _, id := range event.BoothIDs {
		if id == boothID {
			reserved = true
			break
		}
	}
	if !reserved {
		return apperrors.Validation("booth %s is not reserved by event %s", boothID, eventID)
	}

	location, err := s.locations.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if location == nil {
		return apperrors.NotFound("location", locationID)
	}
	if location.BoothID != boothID {
		return apperrors.Validation("location %s does not belong to booth %s", locationID, boothID)
	}
	return nil
}

func seatWindow(eventID string) string {
	return fmt.Sprintf("event %s", eventID)
}

func (s *RegistrationService) Create(ctx context.Context, req *models.CreateRegistrationRequest) (*models.Registration, error) {
	if err := s.validateSeat(ctx, req.EventID, req.BoothID, req.LocationID); err != nil {
		return nil, err
	}

	reg := &models.Registration{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		EventID:    req.EventID,
		BoothID:    req.BoothID,
		LocationID: req.LocationID,
		StallName:  req.StallName,
		StaffName:  req.StaffName,
		Product:    req.Product,
		FilePath:   req.FilePath,
		Status:     models.StatusWaiting,
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.locations.Lock(ctx, req.LocationID); err != nil {
			return err
		}

		taken, err := s.registrations.FindBySeat(ctx, req.EventID, req.BoothID, req.LocationID, "")
		if err != nil {
			return err
		}
		if taken != nil {
			return apperrors.Conflict("location", seatWindow(req.EventID), req.LocationID)
		}

		if err := s.registrations.Create(ctx, reg); err != nil {
			if repository.IsUniqueViolation(err) {
				return apperrors.Conflict("location", seatWindow(req.EventID), req.LocationID)
			}
			return err
		}

		return s.locations.AddRegistrationBooking(ctx, &models.LocationBooking{
			LocationID:     req.LocationID,
			RegistrationID: reg.ID,
			EventID:        req.EventID,
			BookedOn:       interval.Day(time.Now().UTC()),
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, req.EventID)
	s.publish(models.MsgRegistrationCreated, regMessage(reg))

	slog.Info("Registration created", "registration_id", reg.ID, "event_id", reg.EventID)
	return reg, nil
}

func (s *RegistrationService) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, apperrors.NotFound("registration", id)
	}
	return reg, nil
}

func (s *RegistrationService) List(ctx context.Context, eventID, userID string) ([]models.RegistrationView, error) {
	return s.registrations.List(ctx, eventID, userID)
}

func (s *RegistrationService) Update(ctx context.Context, id string, req *models.UpdateRegistrationRequest) (*models.Registration, error) {
	reg, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldEventID := reg.EventID
	oldFilePath := reg.FilePath

	if req.EventID != nil {
		reg.EventID = *req.EventID
	}
	if req.BoothID != nil {
		reg.BoothID = *req.BoothID
	}
	if req.LocationID != nil {
		reg.LocationID = *req.LocationID
	}
	if req.StallName != nil {
		reg.StallName = *req.StallName
	}
	if req.StaffName != nil {
		reg.StaffName = *req.StaffName
	}
	if req.Product != nil {
		reg.Product = *req.Product
	}
	if req.FilePath != nil {
		reg.FilePath = *req.FilePath
	}

	seatChanged := req.EventID != nil || req.BoothID != nil || req.LocationID != nil
	if seatChanged {
		if err := s.validateSeat(ctx, reg.EventID, reg.BoothID, reg.LocationID); err != nil {
			return nil, err
		}
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if seatChanged {
			if err := s.locations.Lock(ctx, reg.LocationID); err != nil {
				return err
			}

			taken, err := s.registrations.FindBySeat(ctx, reg.EventID, reg.BoothID, reg.LocationID, id)
			if err != nil {
				return err
			}
			if taken != nil {
				return apperrors.Conflict("location", seatWindow(reg.EventID), reg.LocationID)
			}
		}

		if err := s.registrations.Update(ctx, reg); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("registration", id)
			}
			if repository.IsUniqueViolation(err) {
				return apperrors.Conflict("location", seatWindow(reg.EventID), reg.LocationID)
			}
			return err
		}

		if seatChanged {
			if err := s.locations.RemoveRegistrationBooking(ctx, id); err != nil {
				return err
			}
			return s.locations.AddRegistrationBooking(ctx, &models.LocationBooking{
				LocationID:     reg.LocationID,
				RegistrationID: id,
				EventID:        reg.EventID,
				BookedOn:       interval.Day(time.Now().UTC()),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.FilePath != nil && oldFilePath != reg.FilePath {
		if err := s.files.Remove(oldFilePath); err != nil {
			slog.Warn("Failed to remove replaced registration file", "path", oldFilePath, "error", err)
		}
	}

	s.invalidate(ctx, oldEventID)
	if reg.EventID != oldEventID {
		s.invalidate(ctx, reg.EventID)
	}
	s.publish(models.MsgRegistrationUpdated, regMessage(reg))

	return reg, nil
}

// UpdateStatus moves the approval state. The ledger is untouched: a Waiting
// registration holds its seat just as firmly as an Approved one.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id, status string) (*models.Registration, error) {
	if status != models.StatusWaiting && status != models.StatusApproved {
		return nil, apperrors.Validation("status must be %s or %s", models.StatusWaiting, models.StatusApproved)
	}

	reg, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.registrations.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("registration", id)
		}
		return nil, err
	}
	reg.Status = status

	s.publish(models.MsgRegistrationUpdated, regMessage(reg))
	return reg, nil
}

func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	reg, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.locations.RemoveRegistrationBooking(ctx, id); err != nil {
			return err
		}
		if err := s.registrations.Delete(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("registration", id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.files.Remove(reg.FilePath); err != nil {
		slog.Warn("Failed to remove registration file", "path", reg.FilePath, "error", err)
	}

	s.invalidate(ctx, reg.EventID)
	s.publish(models.MsgRegistrationCancelled, regMessage(reg))

	slog.Info("Registration cancelled", "registration_id", id, "event_id", reg.EventID)
	return nil
}

// BookedLocations returns the taken (booth, location) pairs for an event,
// served from cache when possible.
func (s *RegistrationService) BookedLocations(ctx context.Context, eventID string) ([]models.BookedLocation, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound("event", eventID)
	}

	if s.cache != nil {
		if booked, err := s.cache.GetBookedLocations(ctx, eventID); err == nil {
			return booked, nil
		}
	}

	booked, err := s.registrations.BookedLocations(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetBookedLocations(ctx, eventID, booked)
	}
	return booked, nil
}

func (s *RegistrationService) invalidate(ctx context.Context, eventID string) {
	if s.cache != nil {
		s.cache.InvalidateBookedLocations(ctx, eventID)
	}
}

func (s *RegistrationService) publish(subject string, msg interface{}) {
	if err := s.publisher.Publish(subject, msg); err != nil {
		slog.Warn("Failed to publish message", "subject", subject, "error", err)
	}
}

func regMessage(reg *models.Registration) models.RegistrationMessage {
	return models.RegistrationMessage{
		RegistrationID: reg.ID,
		EventID:        reg.EventID,
		BoothID:        reg.BoothID,
		LocationID:     reg.LocationID,
		Status:         reg.Status,
		Timestamp:      time.Now().UTC(),
	}
}
