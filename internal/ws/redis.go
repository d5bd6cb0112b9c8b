package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/servetrainer/backend/internal/config"
)

var rdbClient *redis.Client
var wsConfig *config.Config

const sessionChannel = "session_events"

func SetRedisClient(r *redis.Client, cfg *config.Config) {
	rdbClient = r
	wsConfig = cfg
}

// sessionEvent wraps a broadcast payload with its session token so that
// every instance can route it to the right local room.
type sessionEvent struct {
	Session string          `json:"session"`
	Payload json.RawMessage `json:"payload"`
}

// PublishSessionEvent publishes a session payload to Redis. Returns false
// when Redis is not configured or the publish failed, in which case the
// caller should broadcast locally instead.
func PublishSessionEvent(sessionToken string, payload []byte) bool {
	if rdbClient == nil {
		return false
	}
	data, err := json.Marshal(sessionEvent{Session: sessionToken, Payload: payload})
	if err != nil {
		return false
	}
	if err := rdbClient.Publish(context.Background(), sessionChannel, data).Err(); err != nil {
		log.Printf("[WS] Failed to publish session event: %v", err)
		return false
	}
	return true
}

// StartSessionEventSubscriber subscribes to the session channel and relays
// incoming events to the local session rooms.
func StartSessionEventSubscriber(ctx context.Context) {
	if rdbClient == nil {
		log.Println("[WS] Redis client not set; session event subscriber not started")
		return
	}

	pubsub := rdbClient.Subscribe(ctx, sessionChannel)
	ch := pubsub.Channel()
	go func() {
		log.Println("[WS] session_events subscriber started")
		for msg := range ch {
			var evt sessionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				log.Printf("[WS] invalid session event payload: %v", err)
				continue
			}
			SessionHub.BroadcastToSession(evt.Session, evt.Payload)
		}
	}()
}
