package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kaposvar-plus-backend/internal/account"
)

type loginRequest struct {
	UserID   string `json:"userId" binding:"required"`
	UserName string `json:"userName"`
}

// Login handles POST /api/account/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.accounts.Login(c.Request.Context(), req.UserID, req.UserName)
	if err != nil {
		if errors.Is(err, account.ErrMissingUserID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// Logout handles POST /api/account/logout.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAccount handles GET /api/account.
func (h *Handler) GetAccount(c *gin.Context) {
	c.JSON(http.StatusOK, h.accounts.Current(c.Request.Context()))
}

// GetCard handles GET /api/account/card.
func (h *Handler) GetCard(c *gin.Context) {
	card, ok := h.accounts.Card(c.Request.Context())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, card)
}
