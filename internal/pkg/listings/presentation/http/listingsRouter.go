package http

import (
	"rentdesk/internal/pkg/listings"
	"rentdesk/internal/pkg/listings/presentation/controller"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers listings endpoints under the given router group.
func RegisterRoutes(g *gin.RouterGroup, svc *listings.Service) {
	queryCtl := controller.NewListingQueryController(svc)
	createCtl := controller.NewCreateListingController(svc)
	updateCtl := controller.NewUpdateListingController(svc)

	g.GET("/listings", queryCtl.List())
	g.GET("/listings/counts", queryCtl.Counts())
	g.GET("/listings/popular", queryCtl.MostPopular())
	g.GET("/listings/:dressId", queryCtl.Get())
	g.GET("/listings/:dressId/reports", queryCtl.ConditionReports())
	g.GET("/listings/:dressId/audit", queryCtl.AuditLog())
	g.GET("/listings/:dressId/bookings", queryCtl.Bookings())
	g.POST("/listings", createCtl.Handle())
	g.PUT("/listings/:dressId", updateCtl.Update())
	g.PATCH("/listings/:dressId/status", updateCtl.SetStatus())
}
