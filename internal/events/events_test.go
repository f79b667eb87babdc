package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hopeIsCo0l/AnuTest/internal/repository"
	"github.com/hopeIsCo0l/AnuTest/internal/seed"
	"github.com/hopeIsCo0l/AnuTest/pkg/models"
	"github.com/hopeIsCo0l/AnuTest/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHub_BroadcastSkipsFullClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	fast := &Client{ID: "fast", Events: make(chan Event, 2)}
	slow := &Client{ID: "slow", Events: make(chan Event)}
	hub.Register(fast)
	hub.Register(slow)
	assert.Equal(t, 2, hub.Len())

	hub.Broadcast(Event{EventType: "ping", Data: "{}"})

	select {
	case event := <-fast.Events:
		assert.Equal(t, "ping", event.EventType)
	default:
		t.Fatal("fast client did not receive the event")
	}

	hub.Unregister("slow")
	hub.Unregister("missing")
	assert.Equal(t, 1, hub.Len())
	_, open := <-slow.Events
	assert.False(t, open)
}

func TestHub_OnCommitFromRepository(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := &Client{ID: "c1", Events: make(chan Event, 4)}
	hub.Register(client)

	repo := repository.NewRepository(repository.State{})
	repo.OnCommit(hub.OnCommit)
	require.NoError(t, repo.WithTransaction("stocks.restock", func(tx *repository.Tx) error {
		tx.Append("Abebe", "Restocked 5 kg of Sugar", models.RestockEvent{ItemID: "rm_sugar", Amount: decimal.NewFromInt(5)})
		return nil
	}))

	event := <-client.Events
	assert.Equal(t, EventStateChanged, event.EventType)

	var payload StateChanged
	require.NoError(t, json.Unmarshal([]byte(event.Data), &payload))
	assert.Equal(t, "stocks.restock", payload.Operation)
	assert.Equal(t, []string{repo.Snapshot().Ledger[0].ID}, payload.TransactionIDs)
}

func newTestRouter(t *testing.T, h *EventsHandler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api", func(c *gin.Context) {
		c.Set(security.ContextRole, "staff")
		c.Set(security.ContextName, "Abebe")
		c.Next()
	})
	h.RegisterRoutes(api)
	return router
}

func TestGetSnapshot(t *testing.T) {
	state, err := seed.Default()
	require.NoError(t, err)
	router := newTestRouter(t, NewEventsHandler(NewHub(zap.NewNop()), repository.NewRepository(state), 3))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items      []json.RawMessage `json:"items"`
		Recipes    []json.RawMessage `json:"recipes"`
		SlotsUsed  int               `json:"slots_used"`
		SlotsTotal int               `json:"slots_total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 12)
	assert.Len(t, body.Recipes, 5)
	assert.Equal(t, 0, body.SlotsUsed)
	assert.Equal(t, 3, body.SlotsTotal)
}

func TestStream_DeliversCommittedChanges(t *testing.T) {
	hub := NewHub(zap.NewNop())
	handler := NewEventsHandler(hub, repository.NewRepository(repository.State{}), 3)
	handler.heartbeat = time.Hour
	router := newTestRouter(t, handler)

	w := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/events", nil))
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	var clientID string
	hub.mu.RLock()
	for id, client := range hub.clients {
		clientID = id
		assert.Equal(t, "Abebe", client.Actor)
	}
	hub.mu.RUnlock()

	hub.OnCommit("admin.reset", nil)
	hub.Unregister(clientID)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream did not return after unregister")
	}

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "event: connected\ndata: {\"client_id\":\""+clientID+"\"}")
	assert.Contains(t, w.Body.String(), "event: state_changed\ndata: {\"operation\":\"admin.reset\",\"transaction_ids\":[]}")
}
