package api

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"kaposvar-plus-backend/internal/parking"
)

type startSessionRequest struct {
	Plate string `json:"plate" binding:"required"`
	Zone  string `json:"zone" binding:"required"`
}

// sessionResponse carries a session together with its billing totals.
type sessionResponse struct {
	Session parking.Session `json:"session"`
	Totals  parking.Totals  `json:"totals"`
}

// StartSession handles POST /api/parking/sessions. Starting overwrites
// any prior record, active or stopped.
func (h *Handler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plate := strings.ToUpper(strings.TrimSpace(req.Plate))
	session, err := h.ledger.Start(c.Request.Context(), plate, req.Zone)
	if err != nil {
		if errors.Is(err, parking.ErrBadPlate) || errors.Is(err, parking.ErrUnknownZone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sessionResponse{
		Session: session,
		Totals:  h.ledger.Totals(session, h.now()),
	})
}

// GetSession handles GET /api/parking/sessions/current.
func (h *Handler) GetSession(c *gin.Context) {
	session, ok := h.ledger.Active(c.Request.Context())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active parking session"})
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		Session: session,
		Totals:  h.ledger.Totals(session, h.now()),
	})
}

// StopSession handles DELETE /api/parking/sessions/current. Stopping
// with no active session is a 404, matching the idempotent no-op of
// the ledger.
func (h *Handler) StopSession(c *gin.Context) {
	session, ok := h.ledger.Stop(c.Request.Context())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active parking session"})
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		Session: session,
		Totals:  h.ledger.Totals(session, h.now()),
	})
}

// GetLedgerZones handles GET /api/parking/zones.
func (h *Handler) GetLedgerZones(c *gin.Context) {
	zones := h.ledger.Zones()
	out := make([]parking.LedgerZone, 0, len(zones))
	for _, z := range zones {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}
