package entity

import (
	"time"

	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// GameType identifies which game a settlement belongs to
type GameType string

// Game types
const (
	GameCoinflip  GameType = "coinflip"
	GameBlackjack GameType = "blackjack"
	GameSlots     GameType = "slots"
	GameUpgrader  GameType = "upgrader"
	GameCrash     GameType = "crash"
	GameJackpot   GameType = "jackpot"
)

// IsValidGameType validates a game type string
func IsValidGameType(gameType string) bool {
	switch GameType(gameType) {
	case GameCoinflip, GameBlackjack, GameSlots, GameUpgrader, GameCrash, GameJackpot:
		return true
	}
	return false
}

// Result is the recorded outcome of a settlement
type Result string

// Results. Push refunds the stake: won_amount equals the bet.
const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultPush Result = "push"
)

// Settlement is the immutable record of one resolved wager. The token is a
// client-generated idempotency key: a unique index on it makes replayed
// submissions return the original record instead of double-debiting.
type Settlement struct {
	ID            uint64
	Token         string
	AccountID     string
	GameType      GameType
	BetAmount     int64
	Result        Result
	WonAmount     int64
	ResultBalance int64
	CreatedAt     time.Time
}

// NewSettlement creates a settlement record for a resolved outcome
func NewSettlement(
	token string,
	accountID string,
	gameType GameType,
	bet int64,
	result Result,
	wonAmount int64,
	resultBalance int64,
	timeProvider coreport.TimeProvider,
) (*Settlement, error) {
	if token == "" {
		return nil, errs.ErrInvalidToken
	}
	if accountID == "" {
		return nil, errs.ErrAccountNotFound
	}
	if !IsValidGameType(string(gameType)) {
		return nil, errs.ErrInvalidGameType
	}
	if bet <= 0 {
		return nil, errs.ErrInvalidBet
	}

	return &Settlement{
		Token:         token,
		AccountID:     accountID,
		GameType:      gameType,
		BetAmount:     bet,
		Result:        result,
		WonAmount:     wonAmount,
		ResultBalance: resultBalance,
		CreatedAt:     timeProvider.Now(),
	}, nil
}

// LevelRewardClaim records one daily reward grant
type LevelRewardClaim struct {
	ID        uint64
	AccountID string
	Level     int
	Amount    int64
	ClaimedAt time.Time
}

// ChatMessage is a chat line, optionally carrying a tip transfer
type ChatMessage struct {
	ID             uint64
	AccountID      string
	Content        string
	IsTip          bool
	TipAmount      int64
	TipRecipientID string
	CreatedAt      time.Time
}
