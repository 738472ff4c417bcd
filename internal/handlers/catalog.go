package handlers

import (
	"net/http"

	"expohall/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateExpoCenter обрабатывает POST /api/expo-centers
func (h *Handlers) CreateExpoCenter(c *gin.Context) {
	var req models.CreateExpoCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	center, err := h.services.ExpoCenters.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, center)
}

// ListExpoCenters обрабатывает GET /api/expo-centers
func (h *Handlers) ListExpoCenters(c *gin.Context) {
	centers, err := h.services.ExpoCenters.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, centers)
}

// GetExpoCenter обрабатывает GET /api/expo-centers/:id
func (h *Handlers) GetExpoCenter(c *gin.Context) {
	center, err := h.services.ExpoCenters.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, center)
}

// UpdateExpoCenter обрабатывает PUT /api/expo-centers/:id
func (h *Handlers) UpdateExpoCenter(c *gin.Context) {
	var req models.UpdateExpoCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	center, err := h.services.ExpoCenters.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, center)
}

// DeleteExpoCenter обрабатывает DELETE /api/expo-centers/:id
func (h *Handlers) DeleteExpoCenter(c *gin.Context) {
	if err := h.services.ExpoCenters.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expo center deleted"})
}

// GetExpoCenterStats обрабатывает GET /api/stats/expo-centers/:id
func (h *Handlers) GetExpoCenterStats(c *gin.Context) {
	stats, err := h.services.ExpoCenters.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CreateBooth обрабатывает POST /api/booths
func (h *Handlers) CreateBooth(c *gin.Context) {
	var req models.CreateBoothRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booth, err := h.services.Booths.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booth)
}

// ListBooths обрабатывает GET /api/booths
func (h *Handlers) ListBooths(c *gin.Context) {
	booths, err := h.services.Booths.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booths)
}

// ListExpoCenterBooths обрабатывает GET /api/expo-centers/:id/booths
func (h *Handlers) ListExpoCenterBooths(c *gin.Context) {
	booths, err := h.services.Booths.ListByExpoCenter(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booths)
}

// GetBooth обрабатывает GET /api/booths/:id
func (h *Handlers) GetBooth(c *gin.Context) {
	booth, err := h.services.Booths.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booth)
}

// UpdateBooth обрабатывает PUT /api/booths/:id
func (h *Handlers) UpdateBooth(c *gin.Context) {
	var req models.UpdateBoothRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	booth, err := h.services.Booths.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booth)
}

// DeleteBooth обрабатывает DELETE /api/booths/:id
func (h *Handlers) DeleteBooth(c *gin.Context) {
	if err := h.services.Booths.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booth deleted"})
}

// CreateLocation обрабатывает POST /api/locations
func (h *Handlers) CreateLocation(c *gin.Context) {
	var req models.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	location, err := h.services.Locations.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

// GetLocation обрабатывает GET /api/locations/:id
func (h *Handlers) GetLocation(c *gin.Context) {
	location, err := h.services.Locations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// ListBoothLocations обрабатывает GET /api/booths/:id/locations.
// С параметром eventId отдаёт только свободные места.
func (h *Handlers) ListBoothLocations(c *gin.Context) {
	locations, err := h.services.Locations.ListByBooth(c.Request.Context(),
		c.Param("id"), c.Query("eventId"), c.Query("excludeRegistrationId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// UpdateLocation обрабатывает PUT /api/locations/:id
func (h *Handlers) UpdateLocation(c *gin.Context) {
	var req models.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	location, err := h.services.Locations.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

// DeleteLocation обрабатывает DELETE /api/locations/:id
func (h *Handlers) DeleteLocation(c *gin.Context) {
	if err := h.services.Locations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "location deleted"})
}
