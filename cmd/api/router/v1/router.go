package v1

import (
	"rentdesk/internal/infrastructure/realtime"
	chathttp "rentdesk/internal/pkg/chat/presentation/http"
	repository "rentdesk/internal/pkg/disputes/persistence/repository/port"
	disputeshttp "rentdesk/internal/pkg/disputes/presentation/http"
	"rentdesk/internal/pkg/listings"
	listingshttp "rentdesk/internal/pkg/listings/presentation/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1
func RegisterRoutes(r *gin.Engine, hub *realtime.Hub, listingsSvc *listings.Service, disputeRepo repository.DisputeRepository) {
	v1 := r.Group("/api/v1")
	chathttp.RegisterRoutes(v1, hub)
	listingshttp.RegisterRoutes(v1, listingsSvc)
	disputeshttp.RegisterRoutes(v1, disputeRepo)
}
