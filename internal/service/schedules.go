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

// ScheduleService books booth time slots within an event's days. Unlike the
// event manager, a successful edit always rewrites the ledger: a session's
// booth and time selection is expected to change freely.
type ScheduleService struct {
	tx        TxRunner
	schedules ScheduleStore
	events    EventStore
	booths    BoothStore
	publisher Publisher
}

func timeWindow(date time.Time, start, end string) string {
	return fmt.Sprintf("%s %s-%s", date.Format(interval.DateLayout), start, end)
}

// validateSlot checks the date and time inputs and the booth subset against
// the parent event.
func (s *ScheduleService) validateSlot(ctx context.Context, req *models.ScheduleRequest) (*models.Event, time.Time, error) {
	if !interval.ValidTime(req.StartTime) || !interval.ValidTime(req.EndTime) {
		return nil, time.Time{}, apperrors.Validation("start_time and end_time must be HH:mm")
	}
	if req.EndTime < req.StartTime {
		return nil, time.Time{}, apperrors.Validation("end_time must not precede start_time")
	}

	date, err := interval.ParseDate(req.Date)
	if err != nil {
		return nil, time.Time{}, apperrors.Validation("invalid date %q, expected YYYY-MM-DD", req.Date)
	}

	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, time.Time{}, err
	}
	if event == nil {
		return nil, time.Time{}, apperrors.NotFound("event", req.EventID)
	}

	if date.Before(interval.Day(event.DateFrom)) || date.After(interval.Day(event.DateTo)) {
		return nil, time.Time{}, apperrors.Validation("date %s is outside the event's run", req.Date)
	}

	if len(req.BoothIDs) == 0 {
		return nil, time.Time{}, apperrors.Validation("at least one booth is required")
	}
	reserved := make(map[string]struct{}, len(event.BoothIDs))
	for _, id := range event.BoothIDs {
		reserved[id] = struct{}{}
	}
	for _, id := range req.BoothIDs {
		if _, ok := reserved[id]; !ok {
			return nil, time.Time{}, apperrors.Validation("booth %s is not reserved by event %s", id, req.EventID)
		}
	}

	return event, date, nil
}

// conflictingBooths scans the schedule ledger of the requested booths for
// one event day, skipping excludeScheduleID's own entries.
func (s *ScheduleService) conflictingBooths(ctx context.Context, eventID string, date time.Time, boothIDs []string, startTime, endTime, excludeScheduleID string) ([]string, error) {
	bookings, err := s.booths.ScheduleBookings(ctx, eventID, date, boothIDs)
	if err != nil {
		return nil, err
	}

	conflicted := map[string]struct{}{}
	for _, b := range bookings {
		if excludeScheduleID != "" && b.ScheduleID == excludeScheduleID {
			continue
		}
		if interval.TimesOverlap(startTime, endTime, b.StartTime, b.EndTime) {
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

func (s *ScheduleService) Create(ctx context.Context, req *models.ScheduleRequest) (*models.Schedule, error) {
	_, date, err := s.validateSlot(ctx, req)
	if err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		ID:          uuid.New().String(),
		Title:       req.Title,
		SessionType: req.SessionType,
		Speaker:     req.Speaker,
		SessionDate: date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		EventID:     req.EventID,
		BoothIDs:    sortedCopy(req.BoothIDs),
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.booths.Lock(ctx, req.BoothIDs); err != nil {
			return err
		}

		conflicted, err := s.conflictingBooths(ctx, req.EventID, date, req.BoothIDs, req.StartTime, req.EndTime, "")
		if err != nil {
			return err
		}
		if len(conflicted) > 0 {
			return apperrors.Conflict("booth", timeWindow(date, req.StartTime, req.EndTime), conflicted...)
		}

		if err := s.schedules.Create(ctx, schedule); err != nil {
			return err
		}
		if err := s.booths.AddScheduleBookings(ctx, schedule, req.BoothIDs); err != nil {
			return err
		}

		for _, userID := range req.Attendees {
			if _, err := s.schedules.AddAttendee(ctx, schedule.ID, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	schedule.Attendees = req.Attendees

	s.publish(models.MsgScheduleBooked, models.ScheduleBookedMessage{
		ScheduleID: schedule.ID,
		EventID:    schedule.EventID,
		BoothIDs:   schedule.BoothIDs,
		SlotDate:   schedule.SessionDate,
		StartTime:  schedule.StartTime,
		EndTime:    schedule.EndTime,
		Timestamp:  time.Now().UTC(),
	})

	slog.Info("Schedule created", "schedule_id", schedule.ID, "event_id", schedule.EventID)
	return schedule, nil
}

func (s *ScheduleService) Update(ctx context.Context, id string, req *models.ScheduleRequest) (*models.Schedule, error) {
	schedule, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.EventID != schedule.EventID {
		return nil, apperrors.Validation("schedule cannot move to another event")
	}

	_, date, err := s.validateSlot(ctx, req)
	if err != nil {
		return nil, err
	}

	schedule.Title = req.Title
	schedule.SessionType = req.SessionType
	schedule.Speaker = req.Speaker
	schedule.SessionDate = date
	schedule.StartTime = req.StartTime
	schedule.EndTime = req.EndTime

	newBooths := sortedCopy(req.BoothIDs)

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		lockSet := map[string]struct{}{}
		for _, boothID := range schedule.BoothIDs {
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

		conflicted, err := s.conflictingBooths(ctx, req.EventID, date, newBooths, req.StartTime, req.EndTime, id)
		if err != nil {
			return err
		}
		if len(conflicted) > 0 {
			return apperrors.Conflict("booth", timeWindow(date, req.StartTime, req.EndTime), conflicted...)
		}

		if err := s.schedules.Update(ctx, schedule); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("schedule", id)
			}
			return err
		}

		// the ledger is rewritten on every successful edit
		if err := s.booths.RemoveScheduleBookings(ctx, id); err != nil {
			return err
		}
		return s.booths.AddScheduleBookings(ctx, schedule, newBooths)
	})
	if err != nil {
		return nil, err
	}
	schedule.BoothIDs = newBooths

	s.publish(models.MsgScheduleRebooked, models.ScheduleBookedMessage{
		ScheduleID: schedule.ID,
		EventID:    schedule.EventID,
		BoothIDs:   schedule.BoothIDs,
		SlotDate:   schedule.SessionDate,
		StartTime:  schedule.StartTime,
		EndTime:    schedule.EndTime,
		Timestamp:  time.Now().UTC(),
	})

	return schedule, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	schedule, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.booths.RemoveScheduleBookings(ctx, id); err != nil {
			return err
		}
		if err := s.schedules.Delete(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("schedule", id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(models.MsgScheduleReleased, models.ScheduleReleasedMessage{
		ScheduleID: id,
		EventID:    schedule.EventID,
		Timestamp:  time.Now().UTC(),
	})
	return nil
}

func (s *ScheduleService) GetByID(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperrors.NotFound("schedule", id)
	}
	return schedule, nil
}

// List returns sessions, optionally scoped to one event.
func (s *ScheduleService) List(ctx context.Context, eventID string) ([]models.ScheduleListItem, error) {
	if eventID != "" {
		event, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if event == nil {
			return nil, apperrors.NotFound("event", eventID)
		}
	}
	return s.schedules.List(ctx, eventID)
}

// Join adds a user to the session's attendee list. Joining twice is a no-op.
func (s *ScheduleService) Join(ctx context.Context, scheduleID, userID string) error {
	if _, err := s.GetByID(ctx, scheduleID); err != nil {
		return err
	}
	_, err := s.schedules.AddAttendee(ctx, scheduleID, userID)
	return err
}

// Leave removes a user from the attendee list. A user who never joined is a
// NotFound distinct from the schedule itself missing.
func (s *ScheduleService) Leave(ctx context.Context, scheduleID, userID string) error {
	if _, err := s.GetByID(ctx, scheduleID); err != nil {
		return err
	}

	removed, err := s.schedules.RemoveAttendee(ctx, scheduleID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("attendee", userID)
	}
	return nil
}

// AvailableBooths returns the expo center booths whose schedule ledgers are
// free on the given event day and time range.
func (s *ScheduleService) AvailableBooths(ctx context.Context, eventID, dateStr, startTime, endTime, excludeScheduleID string) ([]models.Booth, error) {
	if !interval.ValidTime(startTime) || !interval.ValidTime(endTime) {
		return nil, apperrors.Validation("start_time and end_time must be HH:mm")
	}
	date, err := interval.ParseDate(dateStr)
	if err != nil {
		return nil, apperrors.Validation("invalid date %q, expected YYYY-MM-DD", dateStr)
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound("event", eventID)
	}

	booths, err := s.booths.ListByExpoCenter(ctx, event.ExpoCenterID)
	if err != nil {
		return nil, err
	}

	boothIDs := make([]string, len(booths))
	for i, booth := range booths {
		boothIDs[i] = booth.ID
	}

	conflicted, err := s.conflictingBooths(ctx, eventID, date, boothIDs, startTime, endTime, excludeScheduleID)
	if err != nil {
		return nil, err
	}
	busy := make(map[string]struct{}, len(conflicted))
	for _, id := range conflicted {
		busy[id] = struct{}{}
	}

	available := []models.Booth{}
	for _, booth := range booths {
		if _, taken := busy[booth.ID]; !taken {
			available = append(available, booth)
		}
	}
	return available, nil
}

// AvailableDates enumerates every calendar day of the event's run,
// inclusive on both ends.
func (s *ScheduleService) AvailableDates(ctx context.Context, eventID string) ([]string, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound("event", eventID)
	}

	days := interval.DaysBetween(event.DateFrom, event.DateTo)
	dates := make([]string, len(days))
	for i, day := range days {
		dates[i] = day.Format(interval.DateLayout)
	}
	return dates, nil
}

func (s *ScheduleService) publish(subject string, msg interface{}) {
	if err := s.publisher.Publish(subject, msg); err != nil {
		slog.Warn("Failed to publish message", "subject", subject, "error", err)
	}
}
