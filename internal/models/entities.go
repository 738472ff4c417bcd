package models

import (
	"time"
)

// Registration approval statuses
const (
	StatusWaiting  = "Waiting"
	StatusApproved = "Approved"
)

// ExpoCenter represents a physical venue containing booths
type ExpoCenter struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	City        string    `json:"city" db:"city"`
	Address     string    `json:"address" db:"address"`
	Country     string    `json:"country" db:"country"`
	Description string    `json:"description" db:"description"`
	Facilities  string    `json:"facilities" db:"facilities"`
	MapSvg      string    `json:"map_svg" db:"map_svg"`
	Images      []string  `json:"images" db:"images"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Booth represents a bookable space within an expo center
type Booth struct {
	ID           string    `json:"id" db:"id"`
	ExpoCenterID string    `json:"expo_center_id" db:"expo_center_id"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Location is a sub-unit of a booth, the seat assigned to one exhibitor
// registration
type Location struct {
	ID        string    `json:"id" db:"id"`
	BoothID   string    `json:"booth_id" db:"booth_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Event represents a multi-day exhibition occupying one or more booths
type Event struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Theme        string    `json:"theme" db:"theme"`
	DateFrom     time.Time `json:"date_from" db:"date_from"`
	DateTo       time.Time `json:"date_to" db:"date_to"`
	ExpoCenterID string    `json:"expo_center_id" db:"expo_center_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	BoothIDs     []string  `json:"booth_ids,omitempty"` // Not from the events table, filled from the booking ledger
}

// EventBooking is one entry in a booth's event ledger: the booth is held by
// eventID for [StartDate, EndDate]
type EventBooking struct {
	BoothID   string    `json:"booth_id" db:"booth_id"`
	EventID   string    `json:"event_id" db:"event_id"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
}

// Schedule represents a time-boxed session within an event
type Schedule struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	SessionType string    `json:"session_type" db:"session_type"`
	Speaker     string    `json:"speaker" db:"speaker"`
	SessionDate time.Time `json:"session_date" db:"session_date"`
	StartTime   string    `json:"start_time" db:"start_time"`
	EndTime     string    `json:"end_time" db:"end_time"`
	EventID     string    `json:"event_id" db:"event_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	BoothIDs    []string  `json:"booth_ids,omitempty"` // Filled from the booking ledger
	Attendees   []string  `json:"attendees,omitempty"` // Filled from schedule_attendees
}

// ScheduleBooking is one entry in a booth's schedule ledger: the booth is
// held by scheduleID on SlotDate for [StartTime, EndTime)
type ScheduleBooking struct {
	BoothID    string    `json:"booth_id" db:"booth_id"`
	ScheduleID string    `json:"schedule_id" db:"schedule_id"`
	EventID    string    `json:"event_id" db:"event_id"`
	SlotDate   time.Time `json:"slot_date" db:"slot_date"`
	StartTime  string    `json:"start_time" db:"start_time"`
	EndTime    string    `json:"end_time" db:"end_time"`
}

// Registration links one exhibitor to one location within one booth for the
// duration of an event
type Registration struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	EventID    string    `json:"event_id" db:"event_id"`
	BoothID    string    `json:"booth_id" db:"booth_id"`
	LocationID string    `json:"location_id" db:"location_id"`
	StallName  string    `json:"stall_name" db:"stall_name"`
	StaffName  string    `json:"staff_name" db:"staff_name"`
	Product    string    `json:"product" db:"product"`
	FilePath   string    `json:"file_path" db:"file_path"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// LocationBooking is one entry in a location's registration ledger
type LocationBooking struct {
	LocationID     string    `json:"location_id" db:"location_id"`
	RegistrationID string    `json:"registration_id" db:"registration_id"`
	EventID        string    `json:"event_id" db:"event_id"`
	BookedOn       time.Time `json:"booked_on" db:"booked_on"`
}
