package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
)

// RedisFeed implements the wallet change feed on top of Redis pub/sub.
// Every wallet mutation is published to a single channel; subscribers
// filter by account on the receiving side.
type RedisFeed struct {
	client  *redis.Client
	channel string
	logger  core.Logger

	mu   sync.Mutex
	subs map[int64]*subscription
	next int64
	sub  *redis.PubSub
	done chan struct{}
}

type subscription struct {
	accountID string
	handler   func(persistence.WalletEvent)
}

// NewRedisFeed creates a feed backed by the given Redis client. The
// subscriber goroutine is started lazily on the first Subscribe call.
func NewRedisFeed(client *redis.Client, channel string, logger core.Logger) *RedisFeed {
	return &RedisFeed{
		client:  client,
		channel: channel,
		logger:  logger,
		subs:    make(map[int64]*subscription),
	}
}

// Publish pushes a wallet change to the shared channel
func (f *RedisFeed) Publish(ctx context.Context, event persistence.WalletEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling wallet event: %w", err)
	}

	if err := f.client.Publish(ctx, f.channel, payload).Err(); err != nil {
		return fmt.Errorf("publishing wallet event: %w", err)
	}

	return nil
}

// Subscribe registers a handler for one account's wallet changes and
// returns an unsubscribe function
func (f *RedisFeed) Subscribe(ctx context.Context, accountID string, handler func(persistence.WalletEvent)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sub == nil {
		sub := f.client.Subscribe(ctx, f.channel)
		if _, err := sub.Receive(ctx); err != nil {
			return nil, fmt.Errorf("subscribing to wallet feed: %w", err)
		}
		f.sub = sub
		f.done = make(chan struct{})
		go f.dispatch(sub.Channel(), f.done)
	}

	id := f.next
	f.next++
	f.subs[id] = &subscription{accountID: accountID, handler: handler}

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}, nil
}

// Close tears down the Redis subscription and stops the dispatch loop
func (f *RedisFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sub == nil {
		return nil
	}

	close(f.done)
	err := f.sub.Close()
	f.sub = nil
	f.subs = make(map[int64]*subscription)
	return err
}

func (f *RedisFeed) dispatch(messages <-chan *redis.Message, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event persistence.WalletEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				f.logger.Warn("Dropping malformed wallet feed payload", map[string]any{
					"error": err.Error(),
				})
				continue
			}

			f.mu.Lock()
			handlers := make([]func(persistence.WalletEvent), 0, len(f.subs))
			for _, s := range f.subs {
				if s.accountID == event.AccountID {
					handlers = append(handlers, s.handler)
				}
			}
			f.mu.Unlock()

			for _, h := range handlers {
				h(event)
			}
		}
	}
}
