package http

import (
	"rentdesk/internal/pkg/disputes/application/usecase"
	repository "rentdesk/internal/pkg/disputes/persistence/repository/port"
	"rentdesk/internal/pkg/disputes/presentation/controller"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers dispute endpoints under the given router group.
func RegisterRoutes(g *gin.RouterGroup, repo repository.DisputeRepository) {
	queryCtl := controller.NewDisputeQueryController(
		usecase.NewListDisputesUseCase(repo),
		usecase.NewGetDisputeUseCase(repo),
	)
	createCtl := controller.NewCreateDisputeController(usecase.NewCreateDisputeUseCase(repo), repo)
	escalateCtl := controller.NewEscalateDisputeController(usecase.NewEscalateDisputeUseCase(repo))
	messageCtl := controller.NewSupportMessageController(usecase.NewSendSupportMessageUseCase(repo))

	g.GET("/disputes", queryCtl.List())
	g.GET("/disputes/reasons", queryCtl.Reasons())
	g.GET("/disputes/bookings", createCtl.BookingOptions())
	g.GET("/disputes/:disputeId", queryCtl.Get())
	g.POST("/disputes", createCtl.Handle())
	g.POST("/disputes/:disputeId/escalate", escalateCtl.Handle())
	g.POST("/disputes/:disputeId/messages", messageCtl.Handle())
}
