package controller

import (
	"errors"
	"net/http"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
	"rentdesk/internal/pkg/disputes/application/usecase"
	repository "rentdesk/internal/pkg/disputes/persistence/repository/port"

	"github.com/gin-gonic/gin"
)

type createDisputeRequest struct {
	BookingID   string   `json:"bookingId" binding:"required"`
	Reason      string   `json:"reason" binding:"required"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence"`
}

// CreateDisputeController opens a new dispute from the dispute form.
type CreateDisputeController struct {
	create   *usecase.CreateDisputeUseCase
	bookings repository.DisputeRepository
}

func NewCreateDisputeController(create *usecase.CreateDisputeUseCase, repo repository.DisputeRepository) *CreateDisputeController {
	return &CreateDisputeController{create: create, bookings: repo}
}

func (h *CreateDisputeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createDisputeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var evidence []usecase.EvidenceUpload
		for _, name := range req.Evidence {
			evidence = append(evidence, usecase.EvidenceUpload{Filename: name})
		}

		d, err := h.create.Execute(c.Request.Context(), usecase.CreateDisputeInput{
			BookingID:   req.BookingID,
			Reason:      req.Reason,
			Description: req.Description,
			Evidence:    evidence,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, disputes.ErrBookingMissing) || errors.Is(err, disputes.ErrReasonRequired) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

// BookingOptions serves the bookings dropdown for the dispute form.
func (h *CreateDisputeController) BookingOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		opts, err := h.bookings.ListBookingOptions(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": opts})
	}
}
