package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 5 * time.Second

// NewRedisClient connects to redis and checks it answers.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            addr,
		Password:        password,
		MaxRetries:      5,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		PoolSize:        5,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

type relayEnvelope struct {
	Room      string          `json:"room,omitempty"`
	Broadcast bool            `json:"broadcast,omitempty"`
	Except    string          `json:"except,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// RedisRelay is a Pusher that fans pushes out to every server instance
// through a redis channel. Each instance delivers to its own Hub.
type RedisRelay struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *slog.Logger
	pubsub  *redis.PubSub
}

func NewRedisRelay(client *redis.Client, channel string, hub *Hub, logger *slog.Logger) *RedisRelay {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRelay{
		client:  client,
		channel: channel,
		hub:     hub,
		logger:  logger,
	}
}

func (r *RedisRelay) PushToRoom(room string, msg Message) error {
	return r.publish(relayEnvelope{Room: room}, msg)
}

func (r *RedisRelay) BroadcastExcept(senderID string, msg Message) error {
	return r.publish(relayEnvelope{Broadcast: true, Except: senderID}, msg)
}

func (r *RedisRelay) publish(env relayEnvelope, msg Message) error {
	payload, err := msg.encode()
	if err != nil {
		return err
	}
	env.Payload = payload

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode relay envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", r.channel, err)
	}
	return nil
}

// Start subscribes to the relay channel and delivers incoming pushes until
// ctx is cancelled or Close is called. The subscription is confirmed before
// Start returns.
func (r *RedisRelay) Start(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}
	r.pubsub = pubsub

	go r.run(ctx, pubsub.Channel())

	r.logger.Info("push_relay_started", "channel", r.channel)
	return nil
}

func (r *RedisRelay) run(ctx context.Context, messages <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-messages:
			if !ok {
				return
			}
			r.deliver([]byte(m.Payload))
		}
	}
}

func (r *RedisRelay) deliver(data []byte) {
	var env relayEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		r.logger.Warn("push_relay_decode_failed", "error", err)
		return
	}

	if env.Broadcast {
		r.hub.broadcastRaw(env.Except, env.Payload)
		return
	}
	r.hub.pushRaw(env.Room, env.Payload)
}

// Close stops the subscription.
func (r *RedisRelay) Close() error {
	if r.pubsub == nil {
		return nil
	}
	return r.pubsub.Close()
}
