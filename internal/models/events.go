package models

import "time"

// NATS message subjects
const (
	MsgEventBooked           = "event.booked"
	MsgEventRebooked         = "event.rebooked"
	MsgEventReleased         = "event.released"
	MsgScheduleBooked        = "schedule.booked"
	MsgScheduleRebooked      = "schedule.rebooked"
	MsgScheduleReleased      = "schedule.released"
	MsgRegistrationCreated   = "registration.created"
	MsgRegistrationUpdated   = "registration.updated"
	MsgRegistrationCancelled = "registration.cancelled"
)

// EventBookedMessage is published after an event reserves its booths
type EventBookedMessage struct {
	EventID   string    `json:"event_id"`
	BoothIDs  []string  `json:"booth_ids"`
	DateFrom  time.Time `json:"date_from"`
	DateTo    time.Time `json:"date_to"`
	Timestamp time.Time `json:"timestamp"`
}

// EventReleasedMessage is published after an event's booths are released
type EventReleasedMessage struct {
	EventID   string    `json:"event_id"`
	BoothIDs  []string  `json:"booth_ids"`
	Timestamp time.Time `json:"timestamp"`
}

// ScheduleBookedMessage is published after a session reserves its booths
type ScheduleBookedMessage struct {
	ScheduleID string    `json:"schedule_id"`
	EventID    string    `json:"event_id"`
	BoothIDs   []string  `json:"booth_ids"`
	SlotDate   time.Time `json:"slot_date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Timestamp  time.Time `json:"timestamp"`
}

// ScheduleReleasedMessage is published after a session's booths are released
type ScheduleReleasedMessage struct {
	ScheduleID string    `json:"schedule_id"`
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// RegistrationMessage is published on registration create/update/cancel
type RegistrationMessage struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	BoothID        string    `json:"booth_id"`
	LocationID     string    `json:"location_id"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}
