// Package wallet serves the read side: balance snapshots, wager history, and
// the leaderboard. No mutation happens here.
package wallet

import (
	"context"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
)

const (
	// DefaultHistoryLimit caps a history page
	DefaultHistoryLimit = 50

	// DefaultLeaderboardSize is how many wallets the leaderboard shows
	DefaultLeaderboardSize = 10
)

// Snapshot is the read model of one wallet
type Snapshot struct {
	AccountID       string
	Balance         int64
	BalanceDisplay  string
	TotalWagered    int64
	WageredDisplay  string
	TotalGames      uint64
	Level           int
	NextLevelAt     int64
	RewardClaimable bool
	DailyReward     int64
}

// LeaderboardEntry is one ranked wallet
type LeaderboardEntry struct {
	Rank           int
	AccountID      string
	TotalWagered   int64
	WageredDisplay string
	Level          int
}

// Service answers wallet read queries
type Service struct {
	walletRepo     persistence.WalletRepository
	settlementRepo persistence.SettlementRepository
	gate           *session.Gate
	timeProvider   coreport.TimeProvider
	logger         coreport.Logger
}

// NewService creates the wallet read service
func NewService(
	walletRepo persistence.WalletRepository,
	settlementRepo persistence.SettlementRepository,
	gate *session.Gate,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		walletRepo:     walletRepo,
		settlementRepo: settlementRepo,
		gate:           gate,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Get returns the caller's wallet snapshot
func (s *Service) Get(ctx context.Context, identity *entity.Identity) (*Snapshot, error) {
	if err := s.gate.RequireSession(identity); err != nil {
		return nil, err
	}

	w, err := s.walletRepo.GetByAccountID(ctx, identity.AccountID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		AccountID:       w.AccountID,
		Balance:         w.Balance(),
		BalanceDisplay:  entity.FormatAmount(w.Balance()),
		TotalWagered:    w.TotalWagered(),
		WageredDisplay:  entity.FormatAmount(w.TotalWagered()),
		TotalGames:      w.TotalGames,
		Level:           w.Level,
		NextLevelAt:     entity.WagerForLevel(w.Level + 1),
		RewardClaimable: entity.CanClaimReward(w.LastRewardClaim, s.timeProvider.Now()),
		DailyReward:     entity.DailyReward(w.Level),
	}, nil
}

// History returns the caller's most recent settlements
func (s *Service) History(ctx context.Context, identity *entity.Identity, limit int) ([]*entity.Settlement, error) {
	if err := s.gate.RequireSession(identity); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > DefaultHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return s.settlementRepo.ListByAccount(ctx, identity.AccountID, limit)
}

// Leaderboard returns wallets ranked by lifetime wagered total. Public; no
// session required.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultLeaderboardSize
	}
	wallets, err := s.walletRepo.TopByWagered(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(wallets))
	for i, w := range wallets {
		entries = append(entries, &LeaderboardEntry{
			Rank:           i + 1,
			AccountID:      w.AccountID,
			TotalWagered:   w.TotalWagered(),
			WageredDisplay: entity.FormatAmount(w.TotalWagered()),
			Level:          w.Level,
		})
	}
	return entries, nil
}
