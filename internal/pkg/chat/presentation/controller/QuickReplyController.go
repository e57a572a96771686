package controller

import (
	"net/http"

	chat "rentdesk/internal/pkg/chat/domain"

	"github.com/gin-gonic/gin"
)

// QuickReplyController serves the canned responses offered by the compose box.
type QuickReplyController struct{}

func NewQuickReplyController() *QuickReplyController {
	return &QuickReplyController{}
}

func (h *QuickReplyController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"quickReplies": chat.QuickReplies()})
	}
}
