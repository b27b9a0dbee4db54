package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kaposvar-plus-backend/internal/tickets"
)

// GetEvents handles GET /api/events.
func (h *Handler) GetEvents(c *gin.Context) {
	c.JSON(http.StatusOK, h.office.Events())
}

// GetEvent handles GET /api/events/:id.
func (h *Handler) GetEvent(c *gin.Context) {
	event, ok := h.office.Event(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

type purchaseRequest struct {
	Seats []string `json:"seats" binding:"required"`
}

// PurchaseSeats handles POST /api/events/:id/purchases.
func (h *Handler) PurchaseSeats(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	purchase, err := h.office.Purchase(c.Request.Context(), c.Param("id"), req.Seats)
	if err != nil {
		switch {
		case errors.Is(err, tickets.ErrUnknownEvent):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, tickets.ErrNoSeats):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

// GetPurchases handles GET /api/tickets.
func (h *Handler) GetPurchases(c *gin.Context) {
	purchases := h.office.Purchases(c.Request.Context())
	if purchases == nil {
		purchases = []tickets.Purchase{}
	}
	c.JSON(http.StatusOK, purchases)
}
