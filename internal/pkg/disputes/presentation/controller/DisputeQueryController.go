package controller

import (
	"errors"
	"net/http"

	disputes "rentdesk/internal/pkg/disputes/application/domain"
	"rentdesk/internal/pkg/disputes/application/usecase"

	"github.com/gin-gonic/gin"
)

// DisputeQueryController serves the read side of the disputes board.
type DisputeQueryController struct {
	list *usecase.ListDisputesUseCase
	get  *usecase.GetDisputeUseCase
}

func NewDisputeQueryController(list *usecase.ListDisputesUseCase, get *usecase.GetDisputeUseCase) *DisputeQueryController {
	return &DisputeQueryController{list: list, get: get}
}

func (h *DisputeQueryController) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := h.list.Execute(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"disputes": out, "count": len(out)})
	}
}

func (h *DisputeQueryController) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := h.get.Execute(c.Request.Context(), usecase.GetDisputeInput{
			DisputeID: c.Param("disputeId"),
		})
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, disputes.ErrNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// Reasons serves the static reason lists used by the dispute and escalation
// forms.
func (h *DisputeQueryController) Reasons() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"disputeReasons":    disputes.DisputeReasons(),
			"escalationReasons": disputes.EscalationReasons(),
		})
	}
}
