package controller

import (
	"errors"
	"net/http"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
	"rentdesk/internal/pkg/disputes/application/usecase"

	"github.com/gin-gonic/gin"
)

type supportMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// SupportMessageController records a lender-to-support message on a dispute.
type SupportMessageController struct {
	send *usecase.SendSupportMessageUseCase
}

func NewSupportMessageController(send *usecase.SendSupportMessageUseCase) *SupportMessageController {
	return &SupportMessageController{send: send}
}

func (h *SupportMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req supportMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		d, err := h.send.Execute(c.Request.Context(), usecase.SendSupportMessageInput{
			DisputeID: c.Param("disputeId"),
			Message:   req.Message,
		})
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, disputes.ErrNotFound):
				status = http.StatusNotFound
			case errors.Is(err, usecase.ErrEmptySupportMessage):
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}
