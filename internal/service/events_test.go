package service

import (
	"context"
	"testing"

	apperrors "expohall/internal/errors"
	"expohall/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventReq(centerID string, boothIDs []string, from, to string) *models.EventRequest {
	return &models.EventRequest{
		Title:        "Tech Expo",
		Description:  "Annual technology exhibition",
		Theme:        "Technology",
		DateFrom:     from,
		DateTo:       to,
		ExpoCenterID: centerID,
		BoothIDs:     boothIDs,
	}
}

func TestCreateEvent_BooksAllBooths(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")
	e.seedBooth("b2", "c1")

	event, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b2", "b1"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)

	assert.Equal(t, []string{"b1", "b2"}, event.BoothIDs)
	assert.Len(t, e.booths.eventBookings, 2)
	assert.Contains(t, e.publisher.subjects, models.MsgEventBooked)
}

func TestCreateEvent_OverlapConflict(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")
	e.seedBooth("b2", "c1")

	_, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)

	// b1 is held over an intersecting range, so the whole request fails
	// even though b2 is free
	_, err = e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1", "b2"}, "2026-09-04", "2026-09-08"))

	var conflictErr *apperrors.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, []string{"Booth b1"}, conflictErr.Resources)

	// all-or-nothing: b2 must not have been booked
	assert.Len(t, e.booths.eventBookings, 1)
}

func TestCreateEvent_BackToBackAllowed(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")

	_, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)

	// touching ranges do not overlap
	_, err = e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-05", "2026-09-09"))
	require.NoError(t, err)
}

func TestCreateEvent_BoothFromOtherCenter(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedCenter("c2")
	e.seedBooth("b1", "c2")

	_, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))

	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateEvent_BadDates(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")

	var validationErr *apperrors.ValidationError

	_, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-05", "2026-09-01"))
	assert.ErrorAs(t, err, &validationErr)

	_, err = e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "05.09.2026", "09.09.2026"))
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateEvent_MetadataOnlySkipsConflictCheck(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")

	event, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)

	// downstream bookings freeze dates and booths, but not the metadata
	e.schedules.schedules["s1"] = models.Schedule{ID: "s1", EventID: event.ID}

	req := eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05")
	req.Title = "Renamed Expo"
	updated, err := e.eventSvc.Update(context.Background(), event.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Expo", updated.Title)
}

func TestUpdateEvent_BookingChangeFrozenByDownstream(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")
	e.seedBooth("b2", "c1")

	event, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)

	e.schedules.schedules["s1"] = models.Schedule{ID: "s1", EventID: event.ID}

	_, err = e.eventSvc.Update(context.Background(), event.ID, eventReq("c1", []string{"b2"}, "2026-09-01", "2026-09-05"))

	var immutableErr *apperrors.ImmutableStateError
	assert.ErrorAs(t, err, &immutableErr)
}

func TestUpdateEvent_SelfExclusion(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")

	event, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)

	// shifting within the event's own reservation is not a conflict
	updated, err := e.eventSvc.Update(context.Background(), event.ID, eventReq("c1", []string{"b1"}, "2026-09-02", "2026-09-06"))
	require.NoError(t, err)
	assert.Equal(t, "2026-09-02", updated.DateFrom.Format("2006-01-02"))

	// the ledger reflects the new range
	require.Len(t, e.booths.eventBookings, 1)
	assert.Equal(t, "2026-09-02", e.booths.eventBookings[0].StartDate.Format("2006-01-02"))
}

func TestDeleteEvent_ReleasesLedger(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")

	event, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)

	require.NoError(t, e.eventSvc.Delete(context.Background(), event.ID))
	assert.Empty(t, e.booths.eventBookings)

	// the slot opens up again
	_, err = e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))
	assert.NoError(t, err)
}

func TestDeleteEvent_BlockedByRegistrations(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")

	event, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)

	e.registrations.registrations["r1"] = models.Registration{ID: "r1", EventID: event.ID}

	err = e.eventSvc.Delete(context.Background(), event.ID)

	var dependencyErr *apperrors.DependencyError
	assert.ErrorAs(t, err, &dependencyErr)
	assert.Len(t, e.booths.eventBookings, 1)
}

func TestAvailableBooths_FiltersBusyAndExcludesSelf(t *testing.T) {
	e := newEnv()
	e.seedCenter("c1")
	e.seedBooth("b1", "c1")
	e.seedBooth("b2", "c1")
	e.seedBooth("b3", "c1")

	event, err := e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b1"}, "2026-09-01", "2026-09-05"))
	require.NoError(t, err)
	_, err = e.eventSvc.Create(context.Background(), eventReq("c1", []string{"b2"}, "2026-09-10", "2026-09-12"))
	require.NoError(t, err)

	// b1 is busy over the requested range, b2's booking is elsewhere
	available, err := e.eventSvc.AvailableBooths(context.Background(), "c1", "2026-09-03", "2026-09-04", "")
	require.NoError(t, err)
	ids := boothIDsOf(available)
	assert.Equal(t, []string{"b2", "b3"}, ids)

	// from the event's own edit form its booth shows as available
	available, err = e.eventSvc.AvailableBooths(context.Background(), "c1", "2026-09-03", "2026-09-04", event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2", "b3"}, boothIDsOf(available))
}

func TestGetEvent_NotFound(t *testing.T) {
	e := newEnv()

	_, err := e.eventSvc.GetByID(context.Background(), "missing")

	var notFoundErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "event", notFoundErr.Resource)
}

func boothIDsOf(booths []models.Booth) []string {
	ids := make([]string, len(booths))
	for i, booth := range booths {
		ids[i] = booth.ID
	}
	return ids
}
