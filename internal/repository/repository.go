package repository

import (
	"expohall/internal/database"
)

type Repositories struct {
	ExpoCenters   *ExpoCenterRepository
	Booths        *BoothRepository
	Locations     *LocationRepository
	Events        *EventRepository
	Schedules     *ScheduleRepository
	Registrations *RegistrationRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		ExpoCenters:   NewExpoCenterRepository(db),
		Booths:        NewBoothRepository(db),
		Locations:     NewLocationRepository(db),
		Events:        NewEventRepository(db),
		Schedules:     NewScheduleRepository(db),
		Registrations: NewRegistrationRepository(db),
	}
}
