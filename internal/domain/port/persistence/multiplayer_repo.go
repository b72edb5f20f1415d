package persistence

import (
	"context"
	"time"

	"github.com/crownplay/casino-engine/internal/domain/entity"
)

// JackpotRepository manages shared two-player pot rows
type JackpotRepository interface {
	// Create inserts a new waiting game
	Create(ctx context.Context, game *entity.JackpotGame) error

	// FindOldestWaiting returns the oldest waiting game not created by the
	// given account, or ErrNoGameAvailable when none exists
	FindOldestWaiting(ctx context.Context, excludeCreatorID string) (*entity.JackpotGame, error)

	// Claim transitions a waiting game to playing for the joiner. The update
	// is conditional on status still being "waiting": when two joiners race,
	// exactly one claim succeeds and the loser gets ErrNoGameAvailable.
	Claim(ctx context.Context, gameID, joinerID string, joinerBet int64, joinedAt, countdownEnd time.Time) error

	// GetByID retrieves a game row
	GetByID(ctx context.Context, gameID string) (*entity.JackpotGame, error)

	// ListPlayingDue returns playing games whose countdown has elapsed
	ListPlayingDue(ctx context.Context, now time.Time) ([]*entity.JackpotGame, error)

	// ListStaleWaiting returns waiting games created before the cutoff
	ListStaleWaiting(ctx context.Context, cutoff time.Time) ([]*entity.JackpotGame, error)

	// Complete marks a game finished with its winner. Conditional on the game
	// still being in playing state.
	Complete(ctx context.Context, gameID, winnerID string, completedAt time.Time) error

	// Void removes a stale waiting game so its creator can be refunded.
	// Conditional on the game still being in waiting state.
	Void(ctx context.Context, gameID string) error
}

// CrashRepository manages crash rounds and their bets
type CrashRepository interface {
	// GetOpenRound returns the current waiting or running round, or
	// ErrNoGameAvailable when none exists
	GetOpenRound(ctx context.Context) (*entity.CrashRound, error)

	// CreateRound inserts a new waiting round
	CreateRound(ctx context.Context, round *entity.CrashRound) error

	// GetRound retrieves a round by ID
	GetRound(ctx context.Context, roundID string) (*entity.CrashRound, error)

	// StartRound transitions a waiting round to running. Conditional on the
	// round still waiting.
	StartRound(ctx context.Context, roundID string, startedAt time.Time) error

	// CompleteRound marks a round crashed. Conditional on the round running.
	CompleteRound(ctx context.Context, roundID string, completedAt time.Time) error

	// CreateBet inserts an active bet against a round
	CreateBet(ctx context.Context, bet *entity.CrashBet) error

	// GetActiveBet returns the account's active bet, or ErrNoGameAvailable
	GetActiveBet(ctx context.Context, accountID string) (*entity.CrashBet, error)

	// Cashout transitions an active bet to won with its multiplier. The update
	// is conditional on the bet still being active so a cashout racing the
	// crash sweep settles exactly once.
	Cashout(ctx context.Context, betID string, multiplier float64, wonAmount int64, cashedOutAt time.Time) error

	// ListActiveBets returns the active bets on a round
	ListActiveBets(ctx context.Context, roundID string) ([]*entity.CrashBet, error)

	// MarkLost transitions an active bet to lost. Conditional on the bet
	// still being active.
	MarkLost(ctx context.Context, betID string) error
}
