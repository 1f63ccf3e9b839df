package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LocationResponse represents the API response for a single location.
type LocationResponse struct {
	ID       string `json:"id"`
	Timezone string `json:"timezone"`
}

// GetLocations handles the GET /locations request.
func (h *Handler) GetLocations(c *gin.Context) {
	locations, err := h.store.ListLocations(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve locations"})
		return
	}

	responses := make([]LocationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, LocationResponse{ID: loc.ID, Timezone: loc.Timezone})
	}
	c.JSON(http.StatusOK, responses)
}
