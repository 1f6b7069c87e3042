package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "kedaistock:realtime:"

type (
	redisBroker struct {
		rdb *redis.Client
	}
)

// NewRedisBroker returns a broker backed by Redis pub/sub so change events
// fan out across service instances.
func NewRedisBroker(rdb *redis.Client) Broker {
	return &redisBroker{rdb: rdb}
}

func (b *redisBroker) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, channelPrefix+event.Table, payload).Err()
}

func (b *redisBroker) Subscribe(ctx context.Context, tables ...string) (*Subscription, error) {
	channels := make([]string, 0, len(tables))
	for _, table := range tables {
		channels = append(channels, channelPrefix+table)
	}

	pubsub := b.rdb.Subscribe(ctx, channels...)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := &Subscription{C: make(chan Event, 16)}
	done := make(chan struct{})
	sub.cancel = func() {
		close(done)
		_ = pubsub.Close()
	}

	go func() {
		defer close(sub.C)
		ch := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("realtime: dropping undecodable event: %v", err)
					continue
				}
				select {
				case sub.C <- event:
				case <-done:
					return
				}
			}
		}
	}()

	return sub, nil
}
