package controller

import (
	"errors"
	"net/http"

	"rentdesk/internal/pkg/listings"

	"github.com/gin-gonic/gin"
)

// CreateListingController handles the create-listing endpoint only.
type CreateListingController struct {
	svc *listings.Service
}

func NewCreateListingController(svc *listings.Service) *CreateListingController {
	return &CreateListingController{svc: svc}
}

func (h *CreateListingController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req listings.DressInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		dress, err := h.svc.CreateDress(c.Request.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, listings.ErrNameEmpty) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, dress)
	}
}
