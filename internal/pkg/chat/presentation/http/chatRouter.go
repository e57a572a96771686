package http

import (
	"rentdesk/internal/infrastructure/realtime"
	"rentdesk/internal/pkg/chat/presentation/controller"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the realtime chat endpoint under the given router
// group. It constructs the socket controller and binds it directly.
func RegisterRoutes(g *gin.RouterGroup, hub *realtime.Hub) {
	socketCtl := controller.NewChatSocketController(hub)
	quickReplyCtl := controller.NewQuickReplyController()

	// GET /api/v1/chat/ws -> websocket endpoint for realtime chat
	g.GET("/chat/ws", socketCtl.Handle())
	g.GET("/chat/quick-replies", quickReplyCtl.Handle())
}
