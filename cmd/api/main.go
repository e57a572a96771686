package main

import (
	"log"
	"net/http"
	"os"

	v1 "rentdesk/cmd/api/router/v1"
	"rentdesk/internal/infrastructure/realtime"
	chat "rentdesk/internal/pkg/chat/domain"
	"rentdesk/internal/pkg/chat/session"
	"rentdesk/internal/pkg/disputes/persistence/repository/adapter"
	"rentdesk/internal/pkg/listings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	hub := realtime.NewHub()
	defer hub.Close()

	listingsSvc := listings.NewService()
	disputeRepo := adapter.NewMemoryDisputeRepository()

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, hub, listingsSvc, disputeRepo)

	// When a realtime endpoint is configured the dashboard session runs
	// against it; otherwise messaging falls back to local simulation.
	realtimeEnabled := os.Getenv("CHAT_REALTIME_ENABLED") != "false"
	if wsURL := os.Getenv("CHAT_WS_URL"); wsURL != "" && realtimeEnabled {
		sess := startSession(wsURL)
		defer sess.Close()
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	// Start HTTP server (blocks until shutdown)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func startSession(wsURL string) *session.Session {
	var sess *session.Session
	client := realtime.NewClient(realtime.ClientOptions{
		URL: wsURL,
		OnMessage: func(data []byte) {
			sess.HandleInbound(data)
		},
		OnStatus: func(s realtime.Snapshot) {
			log.Printf("chat connection: state=%s attempt=%d", s.State, s.Attempt)
		},
	})
	sess = session.New(client, chat.SeedConversations(), chat.SeedMessages(), session.DefaultDelays())
	client.Enable()
	return sess
}
