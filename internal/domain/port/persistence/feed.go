package persistence

import (
	"context"
	"time"
)

// WalletEvent is a row-level wallet mutation pushed to subscribed observers.
// Delivery is best-effort with last-write-wins display semantics; no ordering
// guarantee is made across rapid updates.
type WalletEvent struct {
	AccountID    string    `json:"account_id"`
	Balance      int64     `json:"balance"`
	TotalWagered int64     `json:"total_wagered"`
	Level        int       `json:"level"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// WalletFeed is the realtime change feed for wallet mutations
type WalletFeed interface {
	// Publish pushes a wallet change to subscribers. Failures must not fail
	// the settlement that produced the event.
	Publish(ctx context.Context, event WalletEvent) error

	// Subscribe registers a callback for one account's wallet changes and
	// returns an unsubscribe function
	Subscribe(ctx context.Context, accountID string, handler func(WalletEvent)) (func(), error)
}
