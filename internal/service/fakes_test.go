package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"expohall/internal/models"
)

var errMiss = errors.New("cache miss")

// The fakes below back the booking services with plain maps and slices so
// the conflict logic can be exercised without a database. fakeTx just runs
// the function: the repositories' transactional behavior is not under test
// here.

type fakeTx struct{}

func (fakeTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCenters struct {
	centers map[string]models.ExpoCenter
	stats   map[string]models.ExpoCenterStats
}

func newFakeCenters() *fakeCenters {
	return &fakeCenters{
		centers: map[string]models.ExpoCenter{},
		stats:   map[string]models.ExpoCenterStats{},
	}
}

func (f *fakeCenters) Create(_ context.Context, center *models.ExpoCenter) error {
	center.CreatedAt = time.Now()
	f.centers[center.ID] = *center
	return nil
}

func (f *fakeCenters) GetByID(_ context.Context, id string) (*models.ExpoCenter, error) {
	center, ok := f.centers[id]
	if !ok {
		return nil, nil
	}
	return &center, nil
}

func (f *fakeCenters) List(_ context.Context) ([]models.ExpoCenter, error) {
	out := []models.ExpoCenter{}
	for _, center := range f.centers {
		out = append(out, center)
	}
	return out, nil
}

func (f *fakeCenters) Update(_ context.Context, center *models.ExpoCenter) error {
	f.centers[center.ID] = *center
	return nil
}

func (f *fakeCenters) Delete(_ context.Context, id string) error {
	delete(f.centers, id)
	return nil
}

func (f *fakeCenters) Stats(_ context.Context, id string) (*models.ExpoCenterStats, error) {
	if _, ok := f.centers[id]; !ok {
		return nil, nil
	}
	stats := f.stats[id]
	stats.ExpoCenterID = id
	return &stats, nil
}

type fakeBooths struct {
	mu               sync.Mutex
	booths           map[string]models.Booth
	eventBookings    []models.EventBooking
	scheduleBookings []models.ScheduleBooking
	locked           [][]string
}

func newFakeBooths() *fakeBooths {
	return &fakeBooths{booths: map[string]models.Booth{}}
}

func (f *fakeBooths) Create(_ context.Context, booth *models.Booth) error {
	booth.CreatedAt = time.Now()
	f.booths[booth.ID] = *booth
	return nil
}

func (f *fakeBooths) GetByID(_ context.Context, id string) (*models.Booth, error) {
	booth, ok := f.booths[id]
	if !ok {
		return nil, nil
	}
	return &booth, nil
}

func (f *fakeBooths) List(_ context.Context) ([]models.Booth, error) {
	out := []models.Booth{}
	for _, booth := range f.booths {
		out = append(out, booth)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeBooths) ListByExpoCenter(_ context.Context, expoCenterID string) ([]models.Booth, error) {
	out := []models.Booth{}
	for _, booth := range f.booths {
		if booth.ExpoCenterID == expoCenterID {
			out = append(out, booth)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeBooths) ListByIDs(_ context.Context, ids []string) ([]models.Booth, error) {
	out := []models.Booth{}
	for _, id := range ids {
		if booth, ok := f.booths[id]; ok {
			out = append(out, booth)
		}
	}
	return out, nil
}

func (f *fakeBooths) Update(_ context.Context, booth *models.Booth) error {
	f.booths[booth.ID] = *booth
	return nil
}

func (f *fakeBooths) Delete(_ context.Context, id string) error {
	delete(f.booths, id)
	return nil
}

func (f *fakeBooths) Lock(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locked = append(f.locked, ids)
	return nil
}

func (f *fakeBooths) EventBookings(_ context.Context, boothIDs []string) ([]models.EventBooking, error) {
	want := map[string]struct{}{}
	for _, id := range boothIDs {
		want[id] = struct{}{}
	}
	out := []models.EventBooking{}
	for _, b := range f.eventBookings {
		if _, ok := want[b.BoothID]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBooths) AllEventBookings(_ context.Context, expoCenterID string) ([]models.EventBooking, error) {
	out := []models.EventBooking{}
	for _, b := range f.eventBookings {
		if booth, ok := f.booths[b.BoothID]; ok && booth.ExpoCenterID == expoCenterID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBooths) AddEventBookings(_ context.Context, event *models.Event, boothIDs []string) error {
	for _, boothID := range boothIDs {
		f.eventBookings = append(f.eventBookings, models.EventBooking{
			BoothID:   boothID,
			EventID:   event.ID,
			StartDate: event.DateFrom,
			EndDate:   event.DateTo,
		})
	}
	return nil
}

func (f *fakeBooths) RemoveEventBookings(_ context.Context, eventID string) error {
	kept := f.eventBookings[:0]
	for _, b := range f.eventBookings {
		if b.EventID != eventID {
			kept = append(kept, b)
		}
	}
	f.eventBookings = kept
	return nil
}

func (f *fakeBooths) HasEventBookings(_ context.Context, boothID string) (bool, error) {
	for _, b := range f.eventBookings {
		if b.BoothID == boothID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBooths) ScheduleBookings(_ context.Context, eventID string, slotDate time.Time, boothIDs []string) ([]models.ScheduleBooking, error) {
	want := map[string]struct{}{}
	for _, id := range boothIDs {
		want[id] = struct{}{}
	}
	out := []models.ScheduleBooking{}
	for _, b := range f.scheduleBookings {
		if _, ok := want[b.BoothID]; !ok {
			continue
		}
		if b.EventID == eventID && b.SlotDate.Equal(slotDate) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBooths) AddScheduleBookings(_ context.Context, schedule *models.Schedule, boothIDs []string) error {
	for _, boothID := range boothIDs {
		f.scheduleBookings = append(f.scheduleBookings, models.ScheduleBooking{
			BoothID:    boothID,
			ScheduleID: schedule.ID,
			EventID:    schedule.EventID,
			SlotDate:   schedule.SessionDate,
			StartTime:  schedule.StartTime,
			EndTime:    schedule.EndTime,
		})
	}
	return nil
}

func (f *fakeBooths) RemoveScheduleBookings(_ context.Context, scheduleID string) error {
	kept := f.scheduleBookings[:0]
	for _, b := range f.scheduleBookings {
		if b.ScheduleID != scheduleID {
			kept = append(kept, b)
		}
	}
	f.scheduleBookings = kept
	return nil
}

type fakeLocations struct {
	locations map[string]models.Location
	ledger    []models.LocationBooking
}

func newFakeLocations() *fakeLocations {
	return &fakeLocations{locations: map[string]models.Location{}}
}

func (f *fakeLocations) Create(_ context.Context, location *models.Location) error {
	location.CreatedAt = time.Now()
	f.locations[location.ID] = *location
	return nil
}

func (f *fakeLocations) GetByID(_ context.Context, id string) (*models.Location, error) {
	location, ok := f.locations[id]
	if !ok {
		return nil, nil
	}
	return &location, nil
}

func (f *fakeLocations) ListByBooth(_ context.Context, boothID string) ([]models.Location, error) {
	out := []models.Location{}
	for _, location := range f.locations {
		if location.BoothID == boothID {
			out = append(out, location)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeLocations) Update(_ context.Context, location *models.Location) error {
	f.locations[location.ID] = *location
	return nil
}

func (f *fakeLocations) Delete(_ context.Context, id string) error {
	delete(f.locations, id)
	return nil
}

func (f *fakeLocations) Lock(_ context.Context, _ string) error { return nil }

func (f *fakeLocations) HasRegistrations(_ context.Context, locationID string) (bool, error) {
	for _, b := range f.ledger {
		if b.LocationID == locationID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLocations) AddRegistrationBooking(_ context.Context, booking *models.LocationBooking) error {
	f.ledger = append(f.ledger, *booking)
	return nil
}

func (f *fakeLocations) RemoveRegistrationBooking(_ context.Context, registrationID string) error {
	kept := f.ledger[:0]
	for _, b := range f.ledger {
		if b.RegistrationID != registrationID {
			kept = append(kept, b)
		}
	}
	f.ledger = kept
	return nil
}

// fakeEvents derives each event's booth set from the booth ledger, same as
// the real repository does.
type fakeEvents struct {
	events map[string]models.Event
	booths *fakeBooths
}

func newFakeEvents(booths *fakeBooths) *fakeEvents {
	return &fakeEvents{events: map[string]models.Event{}, booths: booths}
}

func (f *fakeEvents) Create(_ context.Context, event *models.Event) error {
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	f.events[event.ID] = *event
	return nil
}

func (f *fakeEvents) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	boothIDs, _ := f.BoothIDs(ctx, id)
	event.BoothIDs = boothIDs
	return &event, nil
}

func (f *fakeEvents) List(ctx context.Context) ([]models.EventListItem, error) {
	out := []models.EventListItem{}
	for id := range f.events {
		event, _ := f.GetByID(ctx, id)
		out = append(out, models.EventListItem{Event: *event})
	}
	return out, nil
}

func (f *fakeEvents) ListByIDs(ctx context.Context, ids []string) ([]models.EventListItem, error) {
	out := []models.EventListItem{}
	for _, id := range ids {
		if event, _ := f.GetByID(ctx, id); event != nil {
			out = append(out, models.EventListItem{Event: *event})
		}
	}
	return out, nil
}

func (f *fakeEvents) Update(_ context.Context, event *models.Event) error {
	stored := f.events[event.ID]
	stored.Title = event.Title
	stored.Description = event.Description
	stored.Theme = event.Theme
	stored.DateFrom = event.DateFrom
	stored.DateTo = event.DateTo
	stored.UpdatedAt = time.Now()
	f.events[event.ID] = stored
	return nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	delete(f.events, id)
	return nil
}

func (f *fakeEvents) ExistsForExpoCenter(_ context.Context, expoCenterID string) (bool, error) {
	for _, event := range f.events {
		if event.ExpoCenterID == expoCenterID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEvents) BoothIDs(_ context.Context, eventID string) ([]string, error) {
	ids := []string{}
	for _, b := range f.booths.eventBookings {
		if b.EventID == eventID {
			ids = append(ids, b.BoothID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type fakeSchedules struct {
	schedules map[string]models.Schedule
	attendees map[string]map[string]struct{}
}

func newFakeSchedules() *fakeSchedules {
	return &fakeSchedules{
		schedules: map[string]models.Schedule{},
		attendees: map[string]map[string]struct{}{},
	}
}

func (f *fakeSchedules) Create(_ context.Context, schedule *models.Schedule) error {
	schedule.CreatedAt = time.Now()
	f.schedules[schedule.ID] = *schedule
	return nil
}

func (f *fakeSchedules) GetByID(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return nil, nil
	}
	schedule.Attendees, _ = f.Attendees(ctx, id)
	return &schedule, nil
}

func (f *fakeSchedules) List(_ context.Context, eventID string) ([]models.ScheduleListItem, error) {
	out := []models.ScheduleListItem{}
	for id, schedule := range f.schedules {
		if eventID != "" && schedule.EventID != eventID {
			continue
		}
		out = append(out, models.ScheduleListItem{
			Schedule:      schedule,
			AttendeeCount: len(f.attendees[id]),
		})
	}
	return out, nil
}

func (f *fakeSchedules) Update(_ context.Context, schedule *models.Schedule) error {
	stored := f.schedules[schedule.ID]
	stored.Title = schedule.Title
	stored.SessionType = schedule.SessionType
	stored.Speaker = schedule.Speaker
	stored.SessionDate = schedule.SessionDate
	stored.StartTime = schedule.StartTime
	stored.EndTime = schedule.EndTime
	f.schedules[schedule.ID] = stored
	return nil
}

func (f *fakeSchedules) Delete(_ context.Context, id string) error {
	delete(f.schedules, id)
	delete(f.attendees, id)
	return nil
}

func (f *fakeSchedules) ExistsForEvent(_ context.Context, eventID string) (bool, error) {
	for _, schedule := range f.schedules {
		if schedule.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSchedules) AddAttendee(_ context.Context, scheduleID, userID string) (bool, error) {
	if f.attendees[scheduleID] == nil {
		f.attendees[scheduleID] = map[string]struct{}{}
	}
	if _, ok := f.attendees[scheduleID][userID]; ok {
		return false, nil
	}
	f.attendees[scheduleID][userID] = struct{}{}
	return true, nil
}

func (f *fakeSchedules) RemoveAttendee(_ context.Context, scheduleID, userID string) (bool, error) {
	if _, ok := f.attendees[scheduleID][userID]; !ok {
		return false, nil
	}
	delete(f.attendees[scheduleID], userID)
	return true, nil
}

func (f *fakeSchedules) Attendees(_ context.Context, scheduleID string) ([]string, error) {
	out := []string{}
	for userID := range f.attendees[scheduleID] {
		out = append(out, userID)
	}
	sort.Strings(out)
	return out, nil
}

type fakeRegistrations struct {
	registrations map[string]models.Registration
}

func newFakeRegistrations() *fakeRegistrations {
	return &fakeRegistrations{registrations: map[string]models.Registration{}}
}

func (f *fakeRegistrations) Create(_ context.Context, reg *models.Registration) error {
	reg.CreatedAt = time.Now()
	reg.UpdatedAt = reg.CreatedAt
	f.registrations[reg.ID] = *reg
	return nil
}

func (f *fakeRegistrations) GetByID(_ context.Context, id string) (*models.Registration, error) {
	reg, ok := f.registrations[id]
	if !ok {
		return nil, nil
	}
	return &reg, nil
}

func (f *fakeRegistrations) List(_ context.Context, eventID, userID string) ([]models.RegistrationView, error) {
	out := []models.RegistrationView{}
	for _, reg := range f.registrations {
		if eventID != "" && reg.EventID != eventID {
			continue
		}
		if userID != "" && reg.UserID != userID {
			continue
		}
		out = append(out, models.RegistrationView{Registration: reg})
	}
	return out, nil
}

func (f *fakeRegistrations) FindBySeat(_ context.Context, eventID, boothID, locationID, excludeID string) (*models.Registration, error) {
	for _, reg := range f.registrations {
		if excludeID != "" && reg.ID == excludeID {
			continue
		}
		if reg.EventID == eventID && reg.BoothID == boothID && reg.LocationID == locationID {
			found := reg
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeRegistrations) Update(_ context.Context, reg *models.Registration) error {
	stored := f.registrations[reg.ID]
	stored.EventID = reg.EventID
	stored.BoothID = reg.BoothID
	stored.LocationID = reg.LocationID
	stored.StallName = reg.StallName
	stored.StaffName = reg.StaffName
	stored.Product = reg.Product
	stored.FilePath = reg.FilePath
	stored.UpdatedAt = time.Now()
	f.registrations[reg.ID] = stored
	return nil
}

func (f *fakeRegistrations) UpdateStatus(_ context.Context, id, status string) error {
	stored := f.registrations[id]
	stored.Status = status
	stored.UpdatedAt = time.Now()
	f.registrations[id] = stored
	return nil
}

func (f *fakeRegistrations) Delete(_ context.Context, id string) error {
	delete(f.registrations, id)
	return nil
}

func (f *fakeRegistrations) ExistsForEvent(_ context.Context, eventID string) (bool, error) {
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRegistrations) BookedLocations(_ context.Context, eventID string) ([]models.BookedLocation, error) {
	out := []models.BookedLocation{}
	for _, reg := range f.registrations {
		if reg.EventID == eventID {
			out = append(out, models.BookedLocation{BoothID: reg.BoothID, LocationID: reg.LocationID})
		}
	}
	return out, nil
}

func (f *fakeRegistrations) BookedLocationIDs(_ context.Context, eventID, boothID, excludeRegistrationID string) ([]string, error) {
	out := []string{}
	for _, reg := range f.registrations {
		if excludeRegistrationID != "" && reg.ID == excludeRegistrationID {
			continue
		}
		if reg.EventID == eventID && reg.BoothID == boothID {
			out = append(out, reg.LocationID)
		}
	}
	return out, nil
}

type fakePublisher struct {
	subjects []string
}

func (f *fakePublisher) Publish(subject string, _ interface{}) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

type fakeFiles struct {
	removed []string
}

func (f *fakeFiles) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}

type fakeCache struct {
	data        map[string][]models.BookedLocation
	invalidated []string
	hits        int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]models.BookedLocation{}}
}

func (f *fakeCache) GetBookedLocations(_ context.Context, eventID string) ([]models.BookedLocation, error) {
	if booked, ok := f.data[eventID]; ok {
		f.hits++
		return booked, nil
	}
	return nil, errMiss
}

func (f *fakeCache) SetBookedLocations(_ context.Context, eventID string, locations []models.BookedLocation) {
	f.data[eventID] = locations
}

func (f *fakeCache) InvalidateBookedLocations(_ context.Context, eventID string) {
	delete(f.data, eventID)
	f.invalidated = append(f.invalidated, eventID)
}

func (e *env) seedCenter(id string) {
	e.centers.centers[id] = models.ExpoCenter{
		ID: id, Name: "Center " + id, City: "Almaty", Images: []string{"img.png"},
	}
}

func (e *env) seedBooth(id, centerID string) {
	e.booths.booths[id] = models.Booth{ID: id, ExpoCenterID: centerID, Name: "Booth " + id}
}

func (e *env) seedLocation(id, boothID string) {
	e.locations.locations[id] = models.Location{ID: id, BoothID: boothID, Name: "Loc " + id, Price: 100}
}

// env bundles the services under test with the fakes behind them.
type env struct {
	centers       *fakeCenters
	booths        *fakeBooths
	locations     *fakeLocations
	events        *fakeEvents
	schedules     *fakeSchedules
	registrations *fakeRegistrations
	publisher     *fakePublisher
	files         *fakeFiles
	cache         *fakeCache

	expoCenterSvc   *ExpoCenterService
	boothSvc        *BoothService
	locationSvc     *LocationService
	eventSvc        *EventService
	scheduleSvc     *ScheduleService
	registrationSvc *RegistrationService
}

func newEnv() *env {
	e := &env{
		centers:       newFakeCenters(),
		locations:     newFakeLocations(),
		schedules:     newFakeSchedules(),
		registrations: newFakeRegistrations(),
		publisher:     &fakePublisher{},
		files:         &fakeFiles{},
		cache:         newFakeCache(),
	}
	e.booths = newFakeBooths()
	e.events = newFakeEvents(e.booths)

	e.expoCenterSvc = &ExpoCenterService{centers: e.centers, events: e.events, files: e.files}
	e.boothSvc = &BoothService{booths: e.booths, centers: e.centers}
	e.locationSvc = &LocationService{
		locations: e.locations, booths: e.booths, registrations: e.registrations,
	}
	e.eventSvc = &EventService{
		tx: fakeTx{}, events: e.events, booths: e.booths, centers: e.centers,
		schedules: e.schedules, registrations: e.registrations, publisher: e.publisher,
	}
	e.scheduleSvc = &ScheduleService{
		tx: fakeTx{}, schedules: e.schedules, events: e.events, booths: e.booths,
		publisher: e.publisher,
	}
	e.registrationSvc = &RegistrationService{
		tx: fakeTx{}, registrations: e.registrations, events: e.events,
		locations: e.locations, publisher: e.publisher, cache: e.cache, files: e.files,
	}
	return e
}
