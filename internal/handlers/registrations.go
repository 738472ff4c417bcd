package handlers

import (
	"net/http"

	"expohall/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateRegistration обрабатывает POST /api/registrations
func (h *Handlers) CreateRegistration(c *gin.Context) {
	var req models.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	reg, err := h.services.Registrations.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reg)
}

// ListRegistrations обрабатывает GET /api/registrations с необязательными
// фильтрами eventId и userId
func (h *Handlers) ListRegistrations(c *gin.Context) {
	regs, err := h.services.Registrations.List(c.Request.Context(),
		c.Query("eventId"), c.Query("userId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, regs)
}

// GetRegistration обрабатывает GET /api/registrations/:id
func (h *Handlers) GetRegistration(c *gin.Context) {
	reg, err := h.services.Registrations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// UpdateRegistration обрабатывает PUT /api/registrations/:id
func (h *Handlers) UpdateRegistration(c *gin.Context) {
	var req models.UpdateRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	reg, err := h.services.Registrations.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// UpdateRegistrationStatus обрабатывает PATCH /api/registrations/:id/status
func (h *Handlers) UpdateRegistrationStatus(c *gin.Context) {
	var req models.UpdateRegistrationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	reg, err := h.services.Registrations.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// DeleteRegistration обрабатывает DELETE /api/registrations/:id
func (h *Handlers) DeleteRegistration(c *gin.Context) {
	if err := h.services.Registrations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "registration cancelled"})
}
