package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating writes across multiple
// repositories so a settlement (wallet update + history insert) commits or
// rolls back as one
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetWalletRepository returns a wallet repository bound to the current transaction
	GetWalletRepository(ctx context.Context) WalletRepository

	// GetSettlementRepository returns a settlement repository bound to the current transaction
	GetSettlementRepository(ctx context.Context) SettlementRepository

	// GetRewardRepository returns a reward repository bound to the current transaction
	GetRewardRepository(ctx context.Context) RewardRepository

	// GetChatRepository returns a chat repository bound to the current transaction
	GetChatRepository(ctx context.Context) ChatRepository

	// GetJackpotRepository returns a jackpot repository bound to the current transaction
	GetJackpotRepository(ctx context.Context) JackpotRepository

	// GetCrashRepository returns a crash repository bound to the current transaction
	GetCrashRepository(ctx context.Context) CrashRepository
}
