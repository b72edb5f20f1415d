package persistence

import (
	"context"

	"github.com/crownplay/casino-engine/internal/domain/entity"
)

// SettlementRepository stores the append-only history of resolved wagers
type SettlementRepository interface {
	// Create saves a new settlement record
	//
	// Possible errors:
	// - ErrDuplicateToken: if a settlement with the same token already exists
	// - ErrPersistenceUnavailable: if storage fails
	Create(ctx context.Context, settlement *entity.Settlement) error

	// GetByToken retrieves a settlement by its idempotency token
	//
	// Possible errors:
	// - ErrSettlementNotFound: if no settlement carries the token
	GetByToken(ctx context.Context, token string) (*entity.Settlement, error)

	// TokenExists checks whether a settlement token was already used.
	// Fast path for idempotency checking before any locking.
	TokenExists(ctx context.Context, token string) (bool, error)

	// ListByAccount returns the most recent settlements for an account
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*entity.Settlement, error)
}

// RewardRepository stores daily reward claims
type RewardRepository interface {
	// CreateClaim records one reward grant
	CreateClaim(ctx context.Context, claim *entity.LevelRewardClaim) error
}

// ChatRepository stores chat messages
type ChatRepository interface {
	// CreateMessage appends a chat line (plain or tip)
	CreateMessage(ctx context.Context, message *entity.ChatMessage) error

	// ListRecent returns the latest messages, newest last
	ListRecent(ctx context.Context, limit int) ([]*entity.ChatMessage, error)
}
