package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kaposvar-plus-backend/internal/parking"
)

// GetCars handles GET /api/cars.
func (h *Handler) GetCars(c *gin.Context) {
	cars := h.meter.Cars(c.Request.Context())
	if cars == nil {
		cars = []parking.Car{}
	}
	c.JSON(http.StatusOK, cars)
}

type addCarRequest struct {
	Name  string `json:"name" binding:"required"`
	Plate string `json:"plate" binding:"required"`
}

// AddCar handles POST /api/cars.
func (h *Handler) AddCar(c *gin.Context) {
	var req addCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := h.meter.AddCar(c.Request.Context(), req.Name, req.Plate)
	if err != nil {
		if errors.Is(err, parking.ErrEmptyName) || errors.Is(err, parking.ErrShortPlate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, car)
}

type selectRequest struct {
	ID string `json:"id" binding:"required"`
}

// SelectCar handles PUT /api/cars/selected. Selection is rejected with
// a 409 while parking is active.
func (h *Handler) SelectCar(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.meter.SelectCar(c.Request.Context(), req.ID); err != nil {
		c.JSON(selectionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectZone handles PUT /api/meter/zone.
func (h *Handler) SelectZone(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.meter.SelectZone(c.Request.Context(), req.ID); err != nil {
		c.JSON(selectionStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func selectionStatus(err error) int {
	switch {
	case errors.Is(err, parking.ErrSessionActive):
		return http.StatusConflict
	case errors.Is(err, parking.ErrUnknownCar), errors.Is(err, parking.ErrUnknownZone):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetMeterZones handles GET /api/meter/zones.
func (h *Handler) GetMeterZones(c *gin.Context) {
	c.JSON(http.StatusOK, parking.MeterZones())
}

// StartMeter handles POST /api/meter/start.
func (h *Handler) StartMeter(c *gin.Context) {
	startedAt, err := h.meter.Start(c.Request.Context())
	if err != nil {
		if errors.Is(err, parking.ErrNoSelection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"startedAt": startedAt.UnixMilli()})
}

// StopMeter handles POST /api/meter/stop. Idempotent: stopping an idle
// meter succeeds.
func (h *Handler) StopMeter(c *gin.Context) {
	if err := h.meter.Stop(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.meter.Status(c.Request.Context(), h.now()))
}

// GetMeter handles GET /api/meter.
func (h *Handler) GetMeter(c *gin.Context) {
	c.JSON(http.StatusOK, h.meter.Status(c.Request.Context(), h.now()))
}

// RecordLocation handles PUT /api/meter/location. The geolocation fix
// comes from the client; the server only stores it and auto-selects a
// zone when none is picked yet.
func (h *Handler) RecordLocation(c *gin.Context) {
	var loc parking.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.meter.RecordLocation(c.Request.Context(), loc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
