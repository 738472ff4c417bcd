package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	apperrors "expohall/internal/errors"
	"expohall/internal/interval"
	"expohall/internal/models"

	"github.com/google/uuid"
)

// EventService books whole booths for an event's date range. The conflict
// scan, the event write and the ledger writes run in one transaction with
// the affected booths locked first, so two racing requests for overlapping
// booth sets cannot both pass the scan.
type EventService struct {
	tx            TxRunner
	events        EventStore
	booths        BoothStore
	centers       ExpoCenterStore
	schedules     ScheduleStore
	registrations RegistrationStore
	publisher     Publisher
	search        EventIndexer
}

func dateWindow(from, to time.Time) string {
	return fmt.Sprintf("%s - %s", from.Format(interval.DateLayout), to.Format(interval.DateLayout))
}

func sortedCopy(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *EventService) parseRange(dateFrom, dateTo string) (time.Time, time.Time, error) {
	from, err := interval.ParseDate(dateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validation("invalid date_from %q, expected YYYY-MM-DD", dateFrom)
	}
	to, err := interval.ParseDate(dateTo)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validation("invalid date_to %q, expected YYYY-MM-DD", dateTo)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperrors.Validation("date_to must not precede date_from")
	}
	return from, to, nil
}

// validateBooths checks that every requested booth exists and belongs to the
// expo center, and returns them keyed by id for conflict reporting.
func (s *EventService) validateBooths(ctx context.Context, expoCenterID string, boothIDs []string) (map[string]models.Booth, error) {
	if len(boothIDs) == 0 {
		return nil, apperrors.Validation("at least one booth is required")
	}

	seen := make(map[string]struct{}, len(boothIDs))
	for _, id := range boothIDs {
		if _, dup := seen[id]; dup {
			return nil, apperrors.Validation("duplicate booth id %s", id)
		}
		seen[id] = struct{}{}
	}

	booths, err := s.booths.ListByIDs(ctx, boothIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Booth, len(booths))
	for _, booth := range booths {
		byID[booth.ID] = booth
	}
	for _, id := range boothIDs {
		booth, ok := byID[id]
		if !ok {
			return nil, apperrors.Validation("booth %s does not exist", id)
		}
		if booth.ExpoCenterID != expoCenterID {
			return nil, apperrors.Validation("booth %s does not belong to expo center %s", id, expoCenterID)
		}
	}
	return byID, nil
}

// conflictingBooths scans the event ledger of the requested booths against
// [from, to], skipping excludeEventID's own entries.
func (s *EventService) conflictingBooths(ctx context.Context, boothIDs []string, from, to time.Time, excludeEventID string) ([]string, error) {
	bookings, err := s.booths.EventBookings(ctx, boothIDs)
	if err != nil {
		return nil, err
	}

	conflicted := map[string]struct{}{}
	for _, b := range bookings {
		if excludeEventID != "" && b.EventID == excludeEventID {
			continue
		}
		if interval.Overlaps(from, to, interval.Day(b.StartDate), interval.Day(b.EndDate)) {
			conflicted[b.BoothID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(conflicted))
	for id := range conflicted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *EventService) Create(ctx context.Context, req *models.EventRequest) (*models.Event, error) {
	from, to, err := s.parseRange(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	center, err := s.centers.GetByID(ctx, req.ExpoCenterID)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, apperrors.NotFound("expo center", req.ExpoCenterID)
	}

	boothsByID, err := s.validateBooths(ctx, req.ExpoCenterID, req.BoothIDs)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		Theme:        req.Theme,
		DateFrom:     from,
		DateTo:       to,
		ExpoCenterID: req.ExpoCenterID,
		BoothIDs:     sortedCopy(req.BoothIDs),
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.booths.Lock(ctx, req.BoothIDs); err != nil {
			return err
		}

		conflicted, err := s.conflictingBooths(ctx, req.BoothIDs, from, to, "")
		if err != nil {
			return err
		}
		if len(conflicted) > 0 {
			return apperrors.Conflict("booth", dateWindow(from, to), boothNames(boothsByID, conflicted)...)
		}

		if err := s.events.Create(ctx, event); err != nil {
			return err
		}
		return s.booths.AddEventBookings(ctx, event, req.BoothIDs)
	})
	if err != nil {
		return nil, err
	}

	s.indexEvent(ctx, event)
	s.publish(models.MsgEventBooked, models.EventBookedMessage{
		EventID:   event.ID,
		BoothIDs:  event.BoothIDs,
		DateFrom:  event.DateFrom,
		DateTo:    event.DateTo,
		Timestamp: time.Now().UTC(),
	})

	slog.Info("Event created", "event_id", event.ID, "booths", len(event.BoothIDs))
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id string, req *models.EventRequest) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ExpoCenterID != event.ExpoCenterID {
		return nil, apperrors.Validation("event cannot move to another expo center")
	}

	from, to, err := s.parseRange(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}

	boothsByID, err := s.validateBooths(ctx, req.ExpoCenterID, req.BoothIDs)
	if err != nil {
		return nil, err
	}

	// An update that only touches title/description/theme skips the
	// conflict scan and the ledger rewrite entirely.
	newBooths := sortedCopy(req.BoothIDs)
	bookingChanged := !equalIDs(newBooths, sortedCopy(event.BoothIDs)) ||
		!from.Equal(interval.Day(event.DateFrom)) || !to.Equal(interval.Day(event.DateTo))

	if bookingChanged {
		frozen, err := s.hasDownstream(ctx, id)
		if err != nil {
			return nil, err
		}
		if frozen {
			return nil, apperrors.Immutable("event %s dates and booths are frozen while schedules or registrations exist", id)
		}
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Theme = req.Theme
	event.DateFrom = from
	event.DateTo = to

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if bookingChanged {
			// lock both the old and the new booth sets in one ordered pass
			lockSet := map[string]struct{}{}
			for _, boothID := range event.BoothIDs {
				lockSet[boothID] = struct{}{}
			}
			for _, boothID := range newBooths {
				lockSet[boothID] = struct{}{}
			}
			lockIDs := make([]string, 0, len(lockSet))
			for boothID := range lockSet {
				lockIDs = append(lockIDs, boothID)
			}
			if err := s.booths.Lock(ctx, lockIDs); err != nil {
				return err
			}

			conflicted, err := s.conflictingBooths(ctx, newBooths, from, to, id)
			if err != nil {
				return err
			}
			if len(conflicted) > 0 {
				return apperrors.Conflict("booth", dateWindow(from, to), boothNames(boothsByID, conflicted)...)
			}
		}

		if err := s.events.Update(ctx, event); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("event", id)
			}
			return err
		}

		if bookingChanged {
			if err := s.booths.RemoveEventBookings(ctx, id); err != nil {
				return err
			}
			if err := s.booths.AddEventBookings(ctx, event, newBooths); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	event.BoothIDs = newBooths

	s.indexEvent(ctx, event)
	if bookingChanged {
		s.publish(models.MsgEventRebooked, models.EventBookedMessage{
			EventID:   event.ID,
			BoothIDs:  event.BoothIDs,
			DateFrom:  event.DateFrom,
			DateTo:    event.DateTo,
			Timestamp: time.Now().UTC(),
		})
	}

	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	blocked, err := s.hasDownstream(ctx, id)
	if err != nil {
		return err
	}
	if blocked {
		return apperrors.Dependency("event %s still has schedules or registrations", id)
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.booths.RemoveEventBookings(ctx, id); err != nil {
			return err
		}
		if err := s.events.Delete(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("event", id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteEvent(ctx, id); err != nil {
			slog.Warn("Failed to remove event from search index", "event_id", id, "error", err)
		}
	}
	s.publish(models.MsgEventReleased, models.EventReleasedMessage{
		EventID:   id,
		BoothIDs:  event.BoothIDs,
		Timestamp: time.Now().UTC(),
	})

	slog.Info("Event deleted", "event_id", id)
	return nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound("event", id)
	}
	return event, nil
}

// List returns all events, or a relevance-ordered subset when a full-text
// query is given and search is enabled.
func (s *EventService) List(ctx context.Context, query string) ([]models.EventListItem, error) {
	if query != "" && s.search != nil {
		ids, err := s.search.SearchEvents(ctx, query, 100)
		if err != nil {
			slog.Warn("Event search failed, falling back to full list", "error", err)
			return s.events.List(ctx)
		}
		if len(ids) == 0 {
			return []models.EventListItem{}, nil
		}
		return s.events.ListByIDs(ctx, ids)
	}
	return s.events.List(ctx)
}

// AvailableBooths returns the expo center's booths whose event ledgers are
// free over [dateFrom, dateTo], skipping excludeEventID's own entries.
func (s *EventService) AvailableBooths(ctx context.Context, expoCenterID, dateFrom, dateTo, excludeEventID string) ([]models.Booth, error) {
	from, to, err := s.parseRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	center, err := s.centers.GetByID(ctx, expoCenterID)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, apperrors.NotFound("expo center", expoCenterID)
	}

	booths, err := s.booths.ListByExpoCenter(ctx, expoCenterID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.booths.AllEventBookings(ctx, expoCenterID)
	if err != nil {
		return nil, err
	}

	busy := map[string]struct{}{}
	for _, b := range bookings {
		if excludeEventID != "" && b.EventID == excludeEventID {
			continue
		}
		if interval.Overlaps(from, to, interval.Day(b.StartDate), interval.Day(b.EndDate)) {
			busy[b.BoothID] = struct{}{}
		}
	}

	available := []models.Booth{}
	for _, booth := range booths {
		if _, taken := busy[booth.ID]; !taken {
			available = append(available, booth)
		}
	}
	return available, nil
}

func (s *EventService) hasDownstream(ctx context.Context, eventID string) (bool, error) {
	hasSchedules, err := s.schedules.ExistsForEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	if hasSchedules {
		return true, nil
	}
	return s.registrations.ExistsForEvent(ctx, eventID)
}

func (s *EventService) indexEvent(ctx context.Context, event *models.Event) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexEvent(ctx, event); err != nil {
		slog.Warn("Failed to index event", "event_id", event.ID, "error", err)
	}
}

func (s *EventService) publish(subject string, msg interface{}) {
	if err := s.publisher.Publish(subject, msg); err != nil {
		slog.Warn("Failed to publish message", "subject", subject, "error", err)
	}
}

func boothNames(byID map[string]models.Booth, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if booth, ok := byID[id]; ok {
			names = append(names, booth.Name)
		} else {
			names = append(names, id)
		}
	}
	return names
}
