package controller

import (
	"errors"
	"net/http"

	"rentdesk/internal/pkg/listings"

	"github.com/gin-gonic/gin"
)

// UpdateListingController handles listing edits and the status toggle.
type UpdateListingController struct {
	svc *listings.Service
}

func NewUpdateListingController(svc *listings.Service) *UpdateListingController {
	return &UpdateListingController{svc: svc}
}

func (h *UpdateListingController) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req listings.DressInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		dress, err := h.svc.UpdateDress(c.Request.Context(), c.Param("dressId"), req)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, dress)
	}
}

type statusRequest struct {
	Status *bool `json:"status" binding:"required"`
}

func (h *UpdateListingController) SetStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		dress, err := h.svc.SetDressStatus(c.Request.Context(), c.Param("dressId"), *req.Status)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, dress)
	}
}

func (h *UpdateListingController) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, listings.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, listings.ErrNameEmpty):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
