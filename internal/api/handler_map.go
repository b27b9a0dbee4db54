package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kaposvar-plus-backend/internal/occupancy"
)

// GetMapZones handles GET /api/map/zones.
func (h *Handler) GetMapZones(c *gin.Context) {
	c.JSON(http.StatusOK, occupancy.Zones())
}

type spotsResponse struct {
	Spots       []occupancy.SpotStatus `json:"spots"`
	GeneratedAt time.Time              `json:"generatedAt"`
}

// GetMapSpots handles GET /api/map/spots: the spot catalog with the
// current mock occupancy.
func (h *Handler) GetMapSpots(c *gin.Context) {
	spots, generatedAt := h.occupancy.Snapshot()
	c.JSON(http.StatusOK, spotsResponse{Spots: spots, GeneratedAt: generatedAt})
}
