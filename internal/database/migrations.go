package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createExpoCentersTable,
		createBoothsTable,
		createLocationsTable,
		createEventsTable,
		createBoothEventBookingsTable,
		createSchedulesTable,
		createBoothScheduleBookingsTable,
		createScheduleAttendeesTable,
		createRegistrationsTable,
		createLocationRegistrationsTable,
		createBookingIndexes,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createExpoCentersTable = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";
CREATE TABLE IF NOT EXISTS expo_centers (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    name VARCHAR(255) NOT NULL,
    city VARCHAR(100) NOT NULL,
    address VARCHAR(255) NOT NULL,
    country VARCHAR(100) NOT NULL,
    description TEXT NOT NULL,
    facilities TEXT NOT NULL DEFAULT '',
    map_svg VARCHAR(500) NOT NULL,
    images TEXT[] NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (array_length(images, 1) >= 1)
);`

const createBoothsTable = `
CREATE TABLE IF NOT EXISTS booths (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    expo_center_id UUID NOT NULL REFERENCES expo_centers(id) ON DELETE CASCADE,
    name VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createLocationsTable = `
CREATE TABLE IF NOT EXISTS locations (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    booth_id UUID NOT NULL REFERENCES booths(id) ON DELETE CASCADE,
    name VARCHAR(255) NOT NULL,
    price NUMERIC(10,2) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    title VARCHAR(500) NOT NULL,
    description TEXT NOT NULL,
    theme VARCHAR(255) NOT NULL,
    date_from DATE NOT NULL,
    date_to DATE NOT NULL,
    expo_center_id UUID NOT NULL REFERENCES expo_centers(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (date_to >= date_from)
);`

// booth_event_bookings is the booth's event ledger and, read the other way,
// the set of booths an event reserved.
const createBoothEventBookingsTable = `
CREATE TABLE IF NOT EXISTS booth_event_bookings (
    id SERIAL PRIMARY KEY,
    booth_id UUID NOT NULL REFERENCES booths(id) ON DELETE CASCADE,
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    start_date DATE NOT NULL,
    end_date DATE NOT NULL,

    UNIQUE(booth_id, event_id)
);`

const createSchedulesTable = `
CREATE TABLE IF NOT EXISTS schedules (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    title VARCHAR(500) NOT NULL,
    session_type VARCHAR(100) NOT NULL,
    speaker VARCHAR(255) NOT NULL DEFAULT '',
    session_date DATE NOT NULL,
    start_time VARCHAR(5) NOT NULL,
    end_time VARCHAR(5) NOT NULL,
    event_id UUID NOT NULL REFERENCES events(id),
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (end_time >= start_time)
);`

const createBoothScheduleBookingsTable = `
CREATE TABLE IF NOT EXISTS booth_schedule_bookings (
    id SERIAL PRIMARY KEY,
    booth_id UUID NOT NULL REFERENCES booths(id) ON DELETE CASCADE,
    schedule_id UUID NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    slot_date DATE NOT NULL,
    start_time VARCHAR(5) NOT NULL,
    end_time VARCHAR(5) NOT NULL,

    UNIQUE(booth_id, schedule_id)
);`

const createScheduleAttendeesTable = `
CREATE TABLE IF NOT EXISTS schedule_attendees (
    id SERIAL PRIMARY KEY,
    schedule_id UUID NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
    user_id VARCHAR(255) NOT NULL,
    joined_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(schedule_id, user_id)
);`

// The unique index over (event_id, booth_id, location_id) is the database
// backstop for seat uniqueness; the service checks first and maps 23505 to
// a conflict if a racing request slips through.
const createRegistrationsTable = `
CREATE TABLE IF NOT EXISTS event_registrations (
    id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    user_id VARCHAR(255) NOT NULL,
    event_id UUID NOT NULL REFERENCES events(id),
    booth_id UUID NOT NULL REFERENCES booths(id),
    location_id UUID NOT NULL REFERENCES locations(id),
    stall_name VARCHAR(255) NOT NULL,
    staff_name VARCHAR(255) NOT NULL,
    product VARCHAR(255) NOT NULL,
    file_path VARCHAR(500) NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'Waiting',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(event_id, booth_id, location_id),
    CHECK (status IN ('Waiting', 'Approved'))
);`

const createLocationRegistrationsTable = `
CREATE TABLE IF NOT EXISTS location_registrations (
    id SERIAL PRIMARY KEY,
    location_id UUID NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
    registration_id UUID NOT NULL REFERENCES event_registrations(id) ON DELETE CASCADE,
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    booked_on DATE NOT NULL,

    UNIQUE(location_id, registration_id)
);`

const createBookingIndexes = `
CREATE INDEX IF NOT EXISTS booth_event_bookings_booth_idx
    ON booth_event_bookings (booth_id);
CREATE INDEX IF NOT EXISTS booth_event_bookings_event_idx
    ON booth_event_bookings (event_id);
CREATE INDEX IF NOT EXISTS booth_schedule_bookings_booth_date_idx
    ON booth_schedule_bookings (booth_id, slot_date);
CREATE INDEX IF NOT EXISTS booth_schedule_bookings_schedule_idx
    ON booth_schedule_bookings (schedule_id);
CREATE INDEX IF NOT EXISTS events_expo_center_idx
    ON events (expo_center_id);
CREATE INDEX IF NOT EXISTS schedules_event_date_idx
    ON schedules (event_id, session_date);
CREATE INDEX IF NOT EXISTS event_registrations_event_idx
    ON event_registrations (event_id);`
