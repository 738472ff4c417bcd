package handlers

import (
	"net/http"

	apperrors "expohall/internal/errors"
	"expohall/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateEvent обрабатывает POST /api/events
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	event, err := h.services.Events.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// ListEvents обрабатывает GET /api/events.
// Параметр q включает полнотекстовый поиск по названию, теме и описанию.
func (h *Handlers) ListEvents(c *gin.Context) {
	events, err := h.services.Events.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent обрабатывает GET /api/events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	event, err := h.services.Events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent обрабатывает PUT /api/events/:id
func (h *Handlers) UpdateEvent(c *gin.Context) {
	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	event, err := h.services.Events.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent обрабатывает DELETE /api/events/:id
func (h *Handlers) DeleteEvent(c *gin.Context) {
	if err := h.services.Events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// GetAvailableBoothsForEvent обрабатывает GET /api/events/available-booths
func (h *Handlers) GetAvailableBoothsForEvent(c *gin.Context) {
	expoCenterID := c.Query("expoCenterId")
	dateFrom := c.Query("dateFrom")
	dateTo := c.Query("dateTo")
	if expoCenterID == "" || dateFrom == "" || dateTo == "" {
		handleServiceError(c, apperrors.Validation("expoCenterId, dateFrom and dateTo are required"))
		return
	}

	booths, err := h.services.Events.AvailableBooths(c.Request.Context(),
		expoCenterID, dateFrom, dateTo, c.Query("excludeEventId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booths)
}

// GetBookedLocations обрабатывает GET /api/events/:id/booked-locations
func (h *Handlers) GetBookedLocations(c *gin.Context) {
	booked, err := h.services.Registrations.BookedLocations(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booked)
}

// GetAvailableDates обрабатывает GET /api/events/:id/available-dates
func (h *Handlers) GetAvailableDates(c *gin.Context) {
	dates, err := h.services.Schedules.AvailableDates(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}
