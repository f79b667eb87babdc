package events

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"
	"github.com/hopeIsCo0l/AnuTest/pkg/roles"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const clientBuffer = 64

type Snapshot struct {
	Items        []models.InventoryItem `json:"items"`
	Recipes      []models.Recipe        `json:"recipes"`
	Batches      []models.Batch         `json:"batches"`
	Transactions []models.Transaction   `json:"transactions"`
	SlotsUsed    int                    `json:"slots_used"`
	SlotsTotal   int                    `json:"slots_total"`
}

type EventsHandler struct {
	hub       *Hub
	r         *repository.Repository
	slots     int
	heartbeat time.Duration
}

func NewEventsHandler(hub *Hub, r *repository.Repository, slots int) *EventsHandler {
	return &EventsHandler{hub: hub, r: r, slots: slots, heartbeat: 30 * time.Second}
}

func (h *EventsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/events", security.Authorize(roles.Staff), h.Stream)
	router.GET("/snapshot", security.Authorize(roles.Staff), h.GetSnapshot)
}

func (h *EventsHandler) GetSnapshot(c *gin.Context) {
	state := h.r.Snapshot()
	c.JSON(http.StatusOK, Snapshot{
		Items:        state.Items,
		Recipes:      state.Recipes,
		Batches:      state.Batches,
		Transactions: state.Ledger,
		SlotsUsed:    len(state.Batches),
		SlotsTotal:   h.slots,
	})
}

func (h *EventsHandler) Stream(c *gin.Context) {
	client := &Client{
		ID:     uuid.NewString(),
		Actor:  security.ActorName(c),
		Events: make(chan Event, clientBuffer),
	}
	h.hub.Register(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.Writer.WriteString("event: connected\ndata: {\"client_id\":\"" + client.ID + "\"}\n\n")
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			h.hub.Unregister(client.ID)
			return
		case event, ok := <-client.Events:
			if !ok {
				return
			}
			c.Writer.WriteString(fmt.Sprintf("event: %s\ndata: %s\n\n", event.EventType, event.Data))
			c.Writer.Flush()
		case <-heartbeat.C:
			c.Writer.WriteString(": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}
