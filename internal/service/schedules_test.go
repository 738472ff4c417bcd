package service

import (
	"context"
	"testing"

	apperrors "expohall/internal/errors"
	"expohall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedEvent books an event over two booths so sessions have something to
// slot into.
func seedEvent(t *testing.T, e *env) *models.Event {
	t.Helper()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")
	e.seedBooth("b2", "c1")

	event, err := e.eventSvc.Create(context.Background(),
		eventReq("c1", []string{"b1", "b2"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)
	return event
}

func scheduleReq(eventID string, boothIDs []string, date, start, end string) *models.ScheduleRequest {
	return &models.ScheduleRequest{
		Title:       "Keynote",
		SessionType: "talk",
		Speaker:     "A. Speaker",
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		EventID:     eventID,
		BoothIDs:    boothIDs,
	}
}

func TestCreateSchedule_BooksSlot(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	schedule, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "11:00"))
	require.NoError(t, err)

	assert.Len(t, e.booths.scheduleBookings, 1)
	assert.Equal(t, schedule.ID, e.booths.scheduleBookings[0].ScheduleID)
	assert.Contains(t, e.publisher.subjects, models.MsgScheduleBooked)
}

func TestCreateSchedule_TimeOverlapConflict(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	_, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "11:00"))
	require.NoError(t, err)

	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:30", "11:30"))

	var conflictErr *apperrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []string{"b1"}, conflictErr.Resources)
}

func TestCreateSchedule_BackToBackAllowed(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	_, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "11:00"))
	require.NoError(t, err)

	// ends exactly when the next begins
	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "11:00", "12:00"))
	assert.NoError(t, err)
}

func TestCreateSchedule_OtherDayOrBoothDoesNotConflict(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	_, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "11:00"))
	require.NoError(t, err)

	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-03", "10:00", "11:00"))
	assert.NoError(t, err)

	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b2"}, "2026-09-02", "10:00", "11:00"))
	assert.NoError(t, err)
}

func TestCreateSchedule_Validation(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)
	e.seedBooth("b9", "c1")

	var validationErr *apperrors.ValidationError

	// booth not reserved by the event
	_, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b9"}, "2026-09-02", "10:00", "11:00"))
	assert.ErrorAs(t, err, &validationErr)

	// date outside the event's run
	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-20", "10:00", "11:00"))
	assert.ErrorAs(t, err, &validationErr)

	// malformed time
	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "9:00", "11:00"))
	assert.ErrorAs(t, err, &validationErr)

	// end before start
	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "11:00", "10:00"))
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateSchedule_ZeroLengthSlotNeverConflicts(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	_, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "09:00", "18:00"))
	require.NoError(t, err)

	// an empty slot inside the booked range occupies nothing
	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "10:00"))
	assert.NoError(t, err)

	// and holds nothing: a real session over the same window still fits
	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b2"}, "2026-09-02", "10:00", "10:00"))
	require.NoError(t, err)
	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b2"}, "2026-09-02", "09:30", "10:30"))
	assert.NoError(t, err)
}

func TestUpdateSchedule_RewritesLedgerAndExcludesSelf(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	schedule, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "11:00"))
	require.NoError(t, err)

	// overlapping its own prior slot is fine; the booth set moves to b2
	updated, err := e.scheduleSvc.Update(context.Background(), schedule.ID,
		scheduleReq(event.ID, []string{"b2"}, "2026-09-02", "10:30", "11:30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, updated.BoothIDs)

	require.Len(t, e.booths.scheduleBookings, 1)
	assert.Equal(t, "b2", e.booths.scheduleBookings[0].BoothID)
	assert.Equal(t, "10:30", e.booths.scheduleBookings[0].StartTime)

	// b1 is free again
	_, err = e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "11:00"))
	assert.NoError(t, err)
}

func TestDeleteSchedule_ReleasesSlot(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	schedule, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "11:00"))
	require.NoError(t, err)

	require.NoError(t, e.scheduleSvc.Delete(context.Background(), schedule.ID))
	assert.Empty(t, e.booths.scheduleBookings)
	assert.Contains(t, e.publisher.subjects, models.MsgScheduleReleased)
}

func TestAttendees_JoinIdempotentLeaveStrict(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	schedule, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "11:00"))
	require.NoError(t, err)

	require.NoError(t, e.scheduleSvc.Join(context.Background(), schedule.ID, "user-1"))
	require.NoError(t, e.scheduleSvc.Join(context.Background(), schedule.ID, "user-1"))

	got, err := e.scheduleSvc.GetByID(context.Background(), schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, got.Attendees)

	require.NoError(t, e.scheduleSvc.Leave(context.Background(), schedule.ID, "user-1"))

	// leaving again distinguishes a missing attendee from a missing schedule
	err = e.scheduleSvc.Leave(context.Background(), schedule.ID, "user-1")
	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "attendee", notFoundErr.Resource)

	err = e.scheduleSvc.Leave(context.Background(), "missing", "user-1")
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "schedule", notFoundErr.Resource)
}

func TestAvailableBoothsForSlot(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	schedule, err := e.scheduleSvc.Create(context.Background(),
		scheduleReq(event.ID, []string{"b1"}, "2026-09-02", "10:00", "11:00"))
	require.NoError(t, err)

	available, err := e.scheduleSvc.AvailableBooths(context.Background(),
		event.ID, "2026-09-02", "10:30", "11:30", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, boothIDsOf(available))

	// self-exclusion for the edit form
	available, err = e.scheduleSvc.AvailableBooths(context.Background(),
		event.ID, "2026-09-02", "10:30", "11:30", schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2"}, boothIDsOf(available))
}

func TestAvailableDates_InclusiveEnumeration(t *testing.T) {
	e := newEnv()
	event := seedEvent(t, e)

	dates, err := e.scheduleSvc.AvailableDates(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2026-09-01", "2026-09-02", "2026-09-03", "2026-09-04", "2026-09-05",
	}, dates)
}
