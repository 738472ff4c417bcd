package service

import (
	"expohall/internal/cache"
	"expohall/internal/database"
	"expohall/internal/messaging"
	"expohall/internal/repository"
	"expohall/internal/search"
	"expohall/internal/storage"
)

type Services struct {
	ExpoCenters   *ExpoCenterService
	Booths        *BoothService
	Locations     *LocationService
	Events        *EventService
	Schedules     *ScheduleService
	Registrations *RegistrationService
}

// NewServices wires the concrete infrastructure into the booking services.
// The Elasticsearch and Valkey clients may be nil (feature disabled); they
// are only assigned into the interface fields when present, so the nil
// checks inside the services stay simple.
func NewServices(
	db *database.DB,
	repos *repository.Repositories,
	nats *messaging.NATSClient,
	es *search.ElasticsearchClient,
	valkey *cache.ValkeyClient,
	files *storage.LocalStore,
) *Services {
	var indexer EventIndexer
	if es != nil {
		indexer = es
	}
	var availability AvailabilityCache
	if valkey != nil {
		availability = valkey
	}

	expoCenters := &ExpoCenterService{
		centers: repos.ExpoCenters,
		events:  repos.Events,
		files:   files,
	}
	booths := &BoothService{
		booths:  repos.Booths,
		centers: repos.ExpoCenters,
	}
	locations := &LocationService{
		locations:     repos.Locations,
		booths:        repos.Booths,
		registrations: repos.Registrations,
	}
	events := &EventService{
		tx:            db,
		events:        repos.Events,
		booths:        repos.Booths,
		centers:       repos.ExpoCenters,
		schedules:     repos.Schedules,
		registrations: repos.Registrations,
		publisher:     nats,
		search:        indexer,
	}
	schedules := &ScheduleService{
		tx:        db,
		schedules: repos.Schedules,
		events:    repos.Events,
		booths:    repos.Booths,
		publisher: nats,
	}
	registrations := &RegistrationService{
		tx:            db,
		registrations: repos.Registrations,
		events:        repos.Events,
		locations:     repos.Locations,
		publisher:     nats,
		cache:         availability,
		files:         files,
	}

	return &Services{
		ExpoCenters:   expoCenters,
		Booths:        booths,
		Locations:     locations,
		Events:        events,
		Schedules:     schedules,
		Registrations: registrations,
	}
}
