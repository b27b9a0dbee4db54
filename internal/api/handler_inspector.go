package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kaposvar-plus-backend/internal/inspector"
)

type validateRequest struct {
	Plate string `json:"plate" binding:"required"`
}

type validateResponse struct {
	Plate      string          `json:"plate"`
	State      inspector.State `json:"state"`
	Zone       string          `json:"zone,omitempty"`
	ValidUntil int64           `json:"validUntil,omitempty"`
}

// ValidatePlate handles POST /api/inspector/validate. The plate may
// arrive as a bare string or as a decoded QR payload carrying a
// "plate" field; either way it is normalized to uppercase before the
// exact-match lookup.
func (h *Handler) ValidatePlate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plate := strings.ToUpper(strings.TrimSpace(decodePlatePayload(req.Plate)))
	if plate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plate is required"})
		return
	}

	if h.validateDelay > 0 {
		time.Sleep(h.validateDelay)
	}

	ctx := c.Request.Context()
	resp := validateResponse{
		Plate: plate,
		State: h.snapshot.Validate(ctx, plate, h.now()),
	}
	if row, ok := h.snapshot.Record(ctx, plate); ok {
		resp.Zone = row.Zone
		resp.ValidUntil = row.ValidUntil
	}
	c.JSON(http.StatusOK, resp)
}

// decodePlatePayload unwraps a scanned QR payload. Decoders may hand
// over either the plate itself or a JSON object with a plate field.
func decodePlatePayload(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	var payload struct {
		Plate string `json:"plate"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return trimmed
	}
	return payload.Plate
}

// GetSnapshot handles GET /api/inspector/snapshot.
func (h *Handler) GetSnapshot(c *gin.Context) {
	rows := h.snapshot.Rows(c.Request.Context())
	if rows == nil {
		rows = []inspector.Row{}
	}
	c.JSON(http.StatusOK, rows)
}

// RefreshSnapshot handles POST /api/inspector/snapshot/refresh. The
// whole row list is replaced; an empty body loads the demo snapshot.
func (h *Handler) RefreshSnapshot(c *gin.Context) {
	var rows []inspector.Row
	if err := c.ShouldBindJSON(&rows); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(rows) == 0 {
		rows = inspector.DemoRows(h.now())
	}
	if err := h.snapshot.Refresh(c.Request.Context(), rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
