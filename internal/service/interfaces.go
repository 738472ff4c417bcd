package service

import (
	"context"
	"time"

	"expohall/internal/models"
)

// TxRunner runs fn inside one database transaction; the repositories pick
// the transaction up from the context.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ExpoCenterStore interface {
	Create(ctx context.Context, center *models.ExpoCenter) error
	GetByID(ctx context.Context, id string) (*models.ExpoCenter, error)
	List(ctx context.Context) ([]models.ExpoCenter, error)
	Update(ctx context.Context, center *models.ExpoCenter) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (*models.ExpoCenterStats, error)
}

type BoothStore interface {
	Create(ctx context.Context, booth *models.Booth) error
	GetByID(ctx context.Context, id string) (*models.Booth, error)
	List(ctx context.Context) ([]models.Booth, error)
	ListByExpoCenter(ctx context.Context, expoCenterID string) ([]models.Booth, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Booth, error)
	Update(ctx context.Context, booth *models.Booth) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, ids []string) error
	EventBookings(ctx context.Context, boothIDs []string) ([]models.EventBooking, error)
	AllEventBookings(ctx context.Context, expoCenterID string) ([]models.EventBooking, error)
	AddEventBookings(ctx context.Context, event *models.Event, boothIDs []string) error
	RemoveEventBookings(ctx context.Context, eventID string) error
	HasEventBookings(ctx context.Context, boothID string) (bool, error)
	ScheduleBookings(ctx context.Context, eventID string, slotDate time.Time, boothIDs []string) ([]models.ScheduleBooking, error)
	AddScheduleBookings(ctx context.Context, schedule *models.Schedule, boothIDs []string) error
	RemoveScheduleBookings(ctx context.Context, scheduleID string) error
}

type LocationStore interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id string) (*models.Location, error)
	ListByBooth(ctx context.Context, boothID string) ([]models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, id string) error
	HasRegistrations(ctx context.Context, locationID string) (bool, error)
	AddRegistrationBooking(ctx context.Context, booking *models.LocationBooking) error
	RemoveRegistrationBooking(ctx context.Context, registrationID string) error
}

type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]models.EventListItem, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.EventListItem, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
	ExistsForExpoCenter(ctx context.Context, expoCenterID string) (bool, error)
	BoothIDs(ctx context.Context, eventID string) ([]string, error)
}

type ScheduleStore interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	GetByID(ctx context.Context, id string) (*models.Schedule, error)
	List(ctx context.Context, eventID string) ([]models.ScheduleListItem, error)
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id string) error
	ExistsForEvent(ctx context.Context, eventID string) (bool, error)
	AddAttendee(ctx context.Context, scheduleID, userID string) (bool, error)
	RemoveAttendee(ctx context.Context, scheduleID, userID string) (bool, error)
	Attendees(ctx context.Context, scheduleID string) ([]string, error)
}

type RegistrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByID(ctx context.Context, id string) (*models.Registration, error)
	List(ctx context.Context, eventID, userID string) ([]models.RegistrationView, error)
	FindBySeat(ctx context.Context, eventID, boothID, locationID, excludeID string) (*models.Registration, error)
	Update(ctx context.Context, reg *models.Registration) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	ExistsForEvent(ctx context.Context, eventID string) (bool, error)
	BookedLocations(ctx context.Context, eventID string) ([]models.BookedLocation, error)
	BookedLocationIDs(ctx context.Context, eventID, boothID, excludeRegistrationID string) ([]string, error)
}

// Publisher is the booking lifecycle message bus. Publishing is best effort:
// a broker failure never rolls back a committed booking.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// EventIndexer keeps the full-text search index in step with the events
// table. A nil EventIndexer disables search.
type EventIndexer interface {
	IndexEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, eventID string) error
	SearchEvents(ctx context.Context, query string, size int) ([]string, error)
}

// AvailabilityCache holds the booked-locations view per event. A nil
// AvailabilityCache disables caching.
type AvailabilityCache interface {
	GetBookedLocations(ctx context.Context, eventID string) ([]models.BookedLocation, error)
	SetBookedLocations(ctx context.Context, eventID string, locations []models.BookedLocation)
	InvalidateBookedLocations(ctx context.Context, eventID string)
}

// FileStore releases uploaded files when their owning record goes away.
type FileStore interface {
	Remove(path string) error
}
