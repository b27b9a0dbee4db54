package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultParkingVolume = 1200
	defaultSystemFeeFt   = 90
	minSystemFeeFt       = 20
	maxSystemFeeFt       = 200
)

// GetRevenueEstimate handles GET /api/admin/revenue: the revenue
// simulator. Estimated additional annual revenue is volume × fee × 365,
// with the fee clamped to the slider range of the dashboard.
func (h *Handler) GetRevenueEstimate(c *gin.Context) {
	volume := intQuery(c, "volume", defaultParkingVolume)
	if volume < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "volume must be non-negative"})
		return
	}

	fee := intQuery(c, "fee", defaultSystemFeeFt)
	if fee < minSystemFeeFt {
		fee = minSystemFeeFt
	}
	if fee > maxSystemFeeFt {
		fee = maxSystemFeeFt
	}

	c.JSON(http.StatusOK, gin.H{
		"parkingVolume":     volume,
		"systemFeeFt":       fee,
		"estimatedAnnualFt": int64(volume) * int64(fee) * 365,
	})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
