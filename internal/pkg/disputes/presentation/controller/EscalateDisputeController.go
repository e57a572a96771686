package controller

import (
	"errors"
	"net/http"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
	"rentdesk/internal/pkg/disputes/application/usecase"

	"github.com/gin-gonic/gin"
)

type escalateDisputeRequest struct {
	Reason      string   `json:"reason" binding:"required"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Evidence    []string `json:"evidence"`
}

// EscalateDisputeController hands an open dispute to the resolution team.
type EscalateDisputeController struct {
	escalate *usecase.EscalateDisputeUseCase
}

func NewEscalateDisputeController(escalate *usecase.EscalateDisputeUseCase) *EscalateDisputeController {
	return &EscalateDisputeController{escalate: escalate}
}

func (h *EscalateDisputeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req escalateDisputeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var evidence []usecase.EvidenceUpload
		for _, name := range req.Evidence {
			evidence = append(evidence, usecase.EvidenceUpload{Filename: name})
		}

		d, err := h.escalate.Execute(c.Request.Context(), usecase.EscalateDisputeInput{
			DisputeID:          c.Param("disputeId"),
			Reason:             req.Reason,
			Description:        req.Description,
			Priority:           disputes.Priority(req.Priority),
			AdditionalEvidence: evidence,
		})
		if err != nil {
			c.JSON(escalateStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func escalateStatus(err error) int {
	switch {
	case errors.Is(err, disputes.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, disputes.ErrNotEscalatable):
		return http.StatusConflict
	case errors.Is(err, disputes.ErrReasonRequired):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
