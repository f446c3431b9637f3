package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisMessageBroker implements MessageBroker using Redis pub/sub
type RedisMessageBroker struct {
	client  *redis.Client
	channel string
}

func NewRedisMessageBroker(ctx context.Context, redisURL, channel string) (*RedisMessageBroker, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisMessageBroker{
		client:  client,
		channel: channel,
	}, nil
}

func (r *RedisMessageBroker) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, r.channel, data).Err()
}

// Subscribe streams events until ctx is cancelled. Malformed payloads are skipped.
func (r *RedisMessageBroker) Subscribe(ctx context.Context) (<-chan Event, error) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	// wait for the subscription confirmation so no publish is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	events := make(chan Event, 100)

	go func() {
		defer close(events)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					continue
				}
				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, nil
}

func (r *RedisMessageBroker) Close() error {
	return r.client.Close()
}
