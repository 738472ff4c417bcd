package api

import (
	"fmt"
	"net/http"

	"expohall/internal/cache"
	"expohall/internal/config"
	"expohall/internal/database"
	"expohall/internal/handlers"
	"expohall/internal/logger"
	"expohall/internal/messaging"
	"expohall/internal/middleware"
	"expohall/internal/repository"
	"expohall/internal/search"
	"expohall/internal/service"
	"expohall/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	valkey   *cache.ValkeyClient
	services *service.Services
}

// NewServer создает новый экземпляр сервера
func NewServer(cfg *config.Config) *Server {
	// Устанавливаем режим Gin
	gin.SetMode(cfg.GinMode)

	// Подключаемся к базе данных
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// Запускаем миграции
	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Подключаемся к NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", "error", err)
	}

	// Valkey и Elasticsearch опциональны
	valkeyClient, err := cache.NewValkeyClient(cfg.Valkey)
	if err != nil {
		logger.Fatal("Failed to connect to Valkey", "error", err)
	}

	esClient, err := search.NewElasticsearchClient(cfg.Search)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", "error", err)
	}

	files := storage.NewLocalStore(cfg.Storage)

	// Создаем репозитории и сервисы
	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, natsClient, esClient, valkeyClient, files)

	// Создаем роутер
	router := gin.New()

	// Применяем middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		valkey:   valkeyClient,
		services: services,
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	{
		centers := api.Group("/expo-centers")
		{
			centers.POST("", h.CreateExpoCenter)
			centers.GET("", h.ListExpoCenters)
			centers.GET("/:id", h.GetExpoCenter)
			centers.PUT("/:id", h.UpdateExpoCenter)
			centers.DELETE("/:id", h.DeleteExpoCenter)
			centers.GET("/:id/booths", h.ListExpoCenterBooths)
		}

		booths := api.Group("/booths")
		{
			booths.POST("", h.CreateBooth)
			booths.GET("", h.ListBooths)
			booths.GET("/:id", h.GetBooth)
			booths.PUT("/:id", h.UpdateBooth)
			booths.DELETE("/:id", h.DeleteBooth)
			booths.GET("/:id/locations", h.ListBoothLocations)
		}

		locations := api.Group("/locations")
		{
			locations.POST("", h.CreateLocation)
			locations.GET("/:id", h.GetLocation)
			locations.PUT("/:id", h.UpdateLocation)
			locations.DELETE("/:id", h.DeleteLocation)
		}

		events := api.Group("/events")
		{
			events.POST("", h.CreateEvent)
			events.GET("", h.ListEvents)
			// статический маршрут регистрируется до параметрического
			events.GET("/available-booths", h.GetAvailableBoothsForEvent)
			events.GET("/:id", h.GetEvent)
			events.PUT("/:id", h.UpdateEvent)
			events.DELETE("/:id", h.DeleteEvent)
			events.GET("/:id/available-dates", h.GetAvailableDates)
			events.GET("/:id/booked-locations", h.GetBookedLocations)
		}

		schedules := api.Group("/schedules")
		{
			schedules.POST("", h.CreateSchedule)
			schedules.GET("", h.ListSchedules)
			schedules.GET("/available-booths", h.GetAvailableBoothsForSchedule)
			schedules.GET("/:id", h.GetSchedule)
			schedules.PUT("/:id", h.UpdateSchedule)
			schedules.DELETE("/:id", h.DeleteSchedule)
			schedules.POST("/:id/attendees", h.JoinSchedule)
			schedules.DELETE("/:id/attendees/:userId", h.LeaveSchedule)
		}

		registrations := api.Group("/registrations")
		{
			registrations.POST("", h.CreateRegistration)
			registrations.GET("", h.ListRegistrations)
			registrations.GET("/:id", h.GetRegistration)
			registrations.PUT("/:id", h.UpdateRegistration)
			registrations.PATCH("/:id/status", h.UpdateRegistrationStatus)
			registrations.DELETE("/:id", h.DeleteRegistration)
		}

		api.GET("/stats/expo-centers/:id", h.GetExpoCenterStats)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.Health(c.Request.Context())

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbHealth.Status,
		"service":  "expohall-api",
		"database": dbHealth,
	})
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			logger.Get().Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
