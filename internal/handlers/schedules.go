package handlers

import (
	"net/http"

	apperrors "expohall/internal/errors"
	"expohall/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateSchedule обрабатывает POST /api/schedules
func (h *Handlers) CreateSchedule(c *gin.Context) {
	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	schedule, err := h.services.Schedules.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// ListSchedules обрабатывает GET /api/schedules с необязательным eventId
func (h *Handlers) ListSchedules(c *gin.Context) {
	schedules, err := h.services.Schedules.List(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// GetSchedule обрабатывает GET /api/schedules/:id
func (h *Handlers) GetSchedule(c *gin.Context) {
	schedule, err := h.services.Schedules.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// UpdateSchedule обрабатывает PUT /api/schedules/:id
func (h *Handlers) UpdateSchedule(c *gin.Context) {
	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	schedule, err := h.services.Schedules.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule обрабатывает DELETE /api/schedules/:id
func (h *Handlers) DeleteSchedule(c *gin.Context) {
	if err := h.services.Schedules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deleted"})
}

// JoinSchedule обрабатывает POST /api/schedules/:id/attendees
func (h *Handlers) JoinSchedule(c *gin.Context) {
	var req models.JoinScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.services.Schedules.Join(c.Request.Context(), c.Param("id"), req.UserID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "joined"})
}

// LeaveSchedule обрабатывает DELETE /api/schedules/:id/attendees/:userId
func (h *Handlers) LeaveSchedule(c *gin.Context) {
	if err := h.services.Schedules.Leave(c.Request.Context(), c.Param("id"), c.Param("userId")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "left"})
}

// GetAvailableBoothsForSchedule обрабатывает GET /api/schedules/available-booths
func (h *Handlers) GetAvailableBoothsForSchedule(c *gin.Context) {
	eventID := c.Query("eventId")
	date := c.Query("date")
	startTime := c.Query("startTime")
	endTime := c.Query("endTime")
	if eventID == "" || date == "" || startTime == "" || endTime == "" {
		handleServiceError(c, apperrors.Validation("eventId, date, startTime and endTime are required"))
		return
	}

	booths, err := h.services.Schedules.AvailableBooths(c.Request.Context(),
		eventID, date, startTime, endTime, c.Query("excludeScheduleId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booths)
}
