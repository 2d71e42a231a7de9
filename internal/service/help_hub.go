package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"calm_learning_hub/pkg/logger"
	"calm_learning_hub/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	shardCount     = 32
	onlineTTL      = 2 * time.Minute
	helpChannel    = "help_channel"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSMessage is the envelope pushed over the help websocket.
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const (
	EventNewHelpRequest = "NEW_HELP_REQUEST"
	EventHelpResolved   = "HELP_RESOLVED"
)

type Client struct {
	Hub     *HelpHub
	Conn    *websocket.Conn
	Send    chan []byte
	UserID  uint
	Limiter *rate.Limiter
}

// readPump only keeps the connection alive; the help websocket is a push
// channel, learners create requests over HTTP.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("WebSocket unexpected close", zap.Error(err), zap.Uint("userId", c.UserID))
			}
			break
		}

		if !c.Limiter.Allow() {
			continue
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if n := len(c.Send); n > 0 {
				for i := 0; i < n; i++ {
					w.Write(<-c.Send)
				}
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type shard struct {
	clients map[uint]*Client
	mu      sync.RWMutex
}

// HelpHub delivers help-request events to connected grown-ups and learners.
// Presence lives in Redis so delivery works across instances.
type HelpHub struct {
	shards     [shardCount]*shard
	register   chan *Client
	unregister chan *Client
	Redis      *redis.Client
	ctx        context.Context
}

func NewHelpHub(rdb *redis.Client) *HelpHub {
	h := &HelpHub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		Redis:      rdb,
		ctx:        context.Background(),
	}
	for i := 0; i < shardCount; i++ {
		h.shards[i] = &shard{
			clients: make(map[uint]*Client),
		}
	}
	return h
}

func (h *HelpHub) getShard(userID uint) *shard {
	return h.shards[userID%shardCount]
}

type PubSubMessage struct {
	TargetUsers []uint          `json:"targetUsers"`
	Payload     json.RawMessage `json:"payload"`
}

func (h *HelpHub) Run() {
	pubsub := h.Redis.Subscribe(h.ctx, helpChannel)
	go func() {
		ch := pubsub.Channel()
		for msg := range ch {
			var psMsg PubSubMessage
			if err := json.Unmarshal([]byte(msg.Payload), &psMsg); err != nil {
				logger.Log.Error("PubSub unmarshal error", zap.Error(err))
				continue
			}
			h.pushToLocalRawUsers(psMsg.TargetUsers, psMsg.Payload)
		}
	}()

	// Presence writes are batched; heartbeat renews the TTLs.
	ticker := time.NewTicker(500 * time.Millisecond)
	heartbeatTicker := time.NewTicker(1 * time.Minute)
	defer func() {
		ticker.Stop()
		heartbeatTicker.Stop()
	}()

	type statusUpdate struct {
		userID uint
		status string
	}
	var pendingUpdates []statusUpdate

	for {
		select {
		case client := <-h.register:
			s := h.getShard(client.UserID)
			s.mu.Lock()
			s.clients[client.UserID] = client
			s.mu.Unlock()
			pendingUpdates = append(pendingUpdates, statusUpdate{client.UserID, "online"})
			monitoring.HelpOnlineUsers.Inc()

		case client := <-h.unregister:
			s := h.getShard(client.UserID)
			s.mu.Lock()
			if _, ok := s.clients[client.UserID]; ok {
				delete(s.clients, client.UserID)
				close(client.Send)
				monitoring.HelpOnlineUsers.Dec()
			}
			s.mu.Unlock()
			pendingUpdates = append(pendingUpdates, statusUpdate{client.UserID, "offline"})

		case <-heartbeatTicker.C:
			h.refreshOnlineStatus()

		case <-ticker.C:
			if len(pendingUpdates) == 0 {
				continue
			}

			pipe := h.Redis.Pipeline()
			for _, update := range pendingUpdates {
				key := fmt.Sprintf("user:online:%d", update.userID)
				if update.status == "online" {
					pipe.Set(h.ctx, key, "true", onlineTTL)
				} else {
					pipe.Del(h.ctx, key)
				}
			}
			_, err := pipe.Exec(h.ctx)
			if err != nil {
				logger.Log.Error("Redis pipeline error", zap.Error(err))
			}
			pendingUpdates = pendingUpdates[:0]
		}
	}
}

func (h *HelpHub) refreshOnlineStatus() {
	pipe := h.Redis.Pipeline()
	count := 0
	for i := 0; i < shardCount; i++ {
		s := h.shards[i]
		s.mu.RLock()
		for userID := range s.clients {
			pipe.Expire(h.ctx, fmt.Sprintf("user:online:%d", userID), onlineTTL)
			count++
		}
		s.mu.RUnlock()
	}
	if count > 0 {
		pipe.Exec(h.ctx)
		logger.Log.Debug("Refreshed online status", zap.Int("count", count))
	}
}

// Stop closes every connection and clears presence keys.
func (h *HelpHub) Stop() {
	logger.Log.Info("HelpHub stopping: clearing online status and closing connections...")

	var allUserIDs []uint
	for i := 0; i < shardCount; i++ {
		s := h.shards[i]
		s.mu.Lock()
		for userID, client := range s.clients {
			allUserIDs = append(allUserIDs, userID)
			close(client.Send)
			delete(s.clients, userID)
		}
		s.mu.Unlock()
	}

	if len(allUserIDs) > 0 {
		pipe := h.Redis.Pipeline()
		for _, userID := range allUserIDs {
			pipe.Del(h.ctx, fmt.Sprintf("user:online:%d", userID))
		}
		pipe.Exec(h.ctx)
	}

	monitoring.HelpOnlineUsers.Set(0)
	logger.Log.Info("HelpHub stopped", zap.Int("closedConnections", len(allUserIDs)))
}

// PushToUsers publishes through Redis so every instance can deliver to its
// local connections.
func (h *HelpHub) PushToUsers(userIDs []uint, msg WSMessage) {
	msgBytes, _ := json.Marshal(msg)
	psMsg := PubSubMessage{
		TargetUsers: userIDs,
		Payload:     msgBytes,
	}
	payload, _ := json.Marshal(psMsg)
	h.Redis.Publish(h.ctx, helpChannel, payload)
	monitoring.HelpEventCounter.WithLabelValues(msg.Type, "out").Inc()
}

func (h *HelpHub) pushToLocalRawUsers(userIDs []uint, payload []byte) {
	for _, id := range userIDs {
		s := h.getShard(id)
		s.mu.RLock()
		if client, ok := s.clients[id]; ok {
			select {
			case client.Send <- payload:
			default:
			}
		}
		s.mu.RUnlock()
	}
}

func (h *HelpHub) IsUserOnline(userID uint) bool {
	s := h.getShard(userID)
	s.mu.RLock()
	_, ok := s.clients[userID]
	s.mu.RUnlock()
	if ok {
		return true
	}

	// Multi-instance deployments check Redis.
	val, err := h.Redis.Get(h.ctx, fmt.Sprintf("user:online:%d", userID)).Result()
	return err == nil && val == "true"
}

func ServeWs(hub *HelpHub, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}
	client := &Client{
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		UserID:  userID,
		Limiter: rate.NewLimiter(rate.Limit(30), 50),
	}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}
