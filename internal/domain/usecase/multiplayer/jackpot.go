// Package multiplayer implements the shared-row games: two-player jackpot
// pots and crash rounds. Both hinge on conditional state transitions so that
// racing players and the background sweeps settle every row exactly once.
package multiplayer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
)

const (
	// DefaultCountdown is how long a claimed pot spins before the winner is
	// drawn
	DefaultCountdown = 30 * time.Second

	// DefaultWaitingTTL is how long an unclaimed pot stays open before the
	// void sweep refunds its creator
	DefaultWaitingTTL = 10 * time.Minute

	// claimAttempts bounds how many waiting rows a joiner races for before
	// giving up
	claimAttempts = 3
)

// JackpotService runs the two-player pot game
type JackpotService struct {
	uow          persistence.UnitOfWork
	walletRepo   persistence.WalletRepository
	jackpotRepo  persistence.JackpotRepository
	feed         persistence.WalletFeed
	gate         *session.Gate
	rng          coreport.Rand
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	minBet       int64
	countdown    time.Duration
	waitingTTL   time.Duration
}

// NewJackpotService creates the jackpot service
func NewJackpotService(
	uow persistence.UnitOfWork,
	walletRepo persistence.WalletRepository,
	jackpotRepo persistence.JackpotRepository,
	feed persistence.WalletFeed,
	gate *session.Gate,
	rng coreport.Rand,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	minBet int64,
	countdown time.Duration,
	waitingTTL time.Duration,
) *JackpotService {
	if countdown <= 0 {
		countdown = DefaultCountdown
	}
	if waitingTTL <= 0 {
		waitingTTL = DefaultWaitingTTL
	}
	return &JackpotService{
		uow:          uow,
		walletRepo:   walletRepo,
		jackpotRepo:  jackpotRepo,
		feed:         feed,
		gate:         gate,
		rng:          rng,
		timeProvider: timeProvider,
		logger:       logger,
		minBet:       minBet,
		countdown:    countdown,
		waitingTTL:   waitingTTL,
	}
}

// Create opens a new waiting pot funded by the creator's stake. The stake is
// debited immediately; it comes back only through a win or a void refund.
func (s *JackpotService) Create(ctx context.Context, identity *entity.Identity, bet int64) (*entity.JackpotGame, error) {
	if err := s.gate.Authorize(ctx, identity); err != nil {
		return nil, err
	}
	if bet < s.minBet {
		return nil, errs.NewBelowMinimumError(string(entity.GameJackpot), bet, s.minBet)
	}

	now := s.timeProvider.Now()
	game := &entity.JackpotGame{
		ID:         uuid.NewString(),
		CreatorID:  identity.AccountID,
		CreatorBet: bet,
		Status:     entity.StatusWaiting,
		CreatedAt:  now,
	}

	wallet, err := s.debitStake(ctx, identity.AccountID, bet, func(txCtx context.Context) error {
		return s.uow.GetJackpotRepository(txCtx).Create(txCtx, game)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Jackpot created", map[string]any{
		"game_id":    game.ID,
		"account_id": identity.AccountID,
		"bet":        bet,
	})
	s.publish(ctx, wallet)
	return game, nil
}

// Join claims the oldest waiting pot not created by the caller. The claim is
// a conditional update, so when two joiners race for the same row exactly one
// succeeds; the loser retries against the next row a bounded number of times
// before failing with ErrNoGameAvailable.
func (s *JackpotService) Join(ctx context.Context, identity *entity.Identity, bet int64) (*entity.JackpotGame, error) {
	if err := s.gate.Authorize(ctx, identity); err != nil {
		return nil, err
	}
	if bet < s.minBet {
		return nil, errs.NewBelowMinimumError(string(entity.GameJackpot), bet, s.minBet)
	}

	for attempt := 0; attempt < claimAttempts; attempt++ {
		game, err := s.jackpotRepo.FindOldestWaiting(ctx, identity.AccountID)
		if err != nil {
			return nil, err
		}

		now := s.timeProvider.Now()
		countdownEnd := now.Add(s.countdown)
		wallet, err := s.debitStake(ctx, identity.AccountID, bet, func(txCtx context.Context) error {
			return s.uow.GetJackpotRepository(txCtx).Claim(txCtx, game.ID, identity.AccountID, bet, now, countdownEnd)
		})
		if errors.Is(err, errs.ErrNoGameAvailable) {
			// lost the claim race, try the next waiting row
			continue
		}
		if err != nil {
			return nil, err
		}

		game.JoinerID = identity.AccountID
		game.JoinerBet = bet
		game.Status = entity.StatusPlaying
		game.JoinedAt = &now
		game.CountdownEnd = &countdownEnd

		s.logger.Info("Jackpot joined", map[string]any{
			"game_id":    game.ID,
			"account_id": identity.AccountID,
			"bet":        bet,
			"pot":        game.Pot(),
		})
		s.publish(ctx, wallet)
		return game, nil
	}
	return nil, errs.ErrNoGameAvailable
}

// SettleDue draws winners for playing pots whose countdown has elapsed. Run
// from the scheduler; each game settles independently so one bad row does not
// block the sweep.
func (s *JackpotService) SettleDue(ctx context.Context) error {
	now := s.timeProvider.Now()
	due, err := s.jackpotRepo.ListPlayingDue(ctx, now)
	if err != nil {
		return err
	}
	for _, game := range due {
		if err := s.settleGame(ctx, game); err != nil {
			s.logger.Error("Failed to settle jackpot", map[string]any{
				"game_id": game.ID,
				"error":   err.Error(),
			})
		}
	}
	return nil
}

// VoidStale refunds creators of waiting pots that nobody joined within the
// TTL. The void is conditional on the row still waiting so a refund can never
// race a successful claim.
func (s *JackpotService) VoidStale(ctx context.Context) error {
	cutoff := s.timeProvider.Now().Add(-s.waitingTTL)
	stale, err := s.jackpotRepo.ListStaleWaiting(ctx, cutoff)
	if err != nil {
		return err
	}
	for _, game := range stale {
		if err := s.voidGame(ctx, game); err != nil {
			s.logger.Error("Failed to void stale jackpot", map[string]any{
				"game_id": game.ID,
				"error":   err.Error(),
			})
		}
	}
	return nil
}

// settleGame draws the winner weighted by stake and pays the pot. The winner
// credit, both wager aggregates, both settlement records, and the completed
// transition commit in one transaction.
func (s *JackpotService) settleGame(ctx context.Context, game *entity.JackpotGame) error {
	winnerID := game.CreatorID
	loserID := game.JoinerID
	winnerBet := game.CreatorBet
	loserBet := game.JoinerBet
	if int64(s.rng.Float64()*float64(game.Pot())) >= game.CreatorBet {
		winnerID, loserID = loserID, winnerID
		winnerBet, loserBet = loserBet, winnerBet
	}

	now := s.timeProvider.Now()
	winnerWallet, err := s.walletRepo.GetByAccountID(ctx, winnerID)
	if err != nil {
		return err
	}
	loserWallet, err := s.walletRepo.GetByAccountID(ctx, loserID)
	if err != nil {
		return err
	}

	winnerExpected := winnerWallet.Balance()
	loserExpected := loserWallet.Balance()
	if err := winnerWallet.Credit(game.Pot(), s.timeProvider); err != nil {
		return err
	}
	if err := winnerWallet.RecordWager(winnerBet, s.timeProvider); err != nil {
		return err
	}
	if err := loserWallet.RecordWager(loserBet, s.timeProvider); err != nil {
		return err
	}

	winnerRecord, err := entity.NewSettlement(
		uuid.NewString(), winnerID, entity.GameJackpot,
		winnerBet, entity.ResultWin, game.Pot(), winnerWallet.Balance(), s.timeProvider,
	)
	if err != nil {
		return err
	}
	loserRecord, err := entity.NewSettlement(
		uuid.NewString(), loserID, entity.GameJackpot,
		loserBet, entity.ResultLoss, 0, loserWallet.Balance(), s.timeProvider,
	)
	if err != nil {
		return err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := s.uow.GetJackpotRepository(txCtx).Complete(txCtx, game.ID, winnerID, now); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.GetWalletRepository(txCtx).UpdateIfBalance(txCtx, winnerWallet, winnerExpected); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.GetWalletRepository(txCtx).UpdateIfBalance(txCtx, loserWallet, loserExpected); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.GetSettlementRepository(txCtx).Create(txCtx, winnerRecord); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.GetSettlementRepository(txCtx).Create(txCtx, loserRecord); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Jackpot settled", map[string]any{
		"game_id":   game.ID,
		"winner_id": winnerID,
		"pot":       game.Pot(),
	})
	s.publish(ctx, winnerWallet)
	s.publish(ctx, loserWallet)
	return nil
}

func (s *JackpotService) voidGame(ctx context.Context, game *entity.JackpotGame) error {
	wallet, err := s.walletRepo.GetByAccountID(ctx, game.CreatorID)
	if err != nil {
		return err
	}
	expected := wallet.Balance()
	if err := wallet.Credit(game.CreatorBet, s.timeProvider); err != nil {
		return err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := s.uow.GetJackpotRepository(txCtx).Void(txCtx, game.ID); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.GetWalletRepository(txCtx).UpdateIfBalance(txCtx, wallet, expected); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Stale jackpot voided", map[string]any{
		"game_id":    game.ID,
		"creator_id": game.CreatorID,
		"refund":     game.CreatorBet,
	})
	s.publish(ctx, wallet)
	return nil
}

// debitStake debits the entry stake and runs the game row write in the same
// transaction. Retries once on a balance conflict since stakes only race
// other writers, never themselves.
func (s *JackpotService) debitStake(ctx context.Context, accountID string, bet int64, gameWrite func(txCtx context.Context) error) (*entity.Wallet, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		wallet, err := s.walletRepo.GetByAccountID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		expected := wallet.Balance()
		if err := wallet.Debit(bet, s.timeProvider); err != nil {
			return nil, err
		}

		txCtx, err := s.uow.Begin(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.uow.GetWalletRepository(txCtx).UpdateIfBalance(txCtx, wallet, expected); err != nil {
			_ = s.uow.Rollback(txCtx)
			if errs.IsConflictError(err) {
				lastErr = err
				continue
			}
			return nil, err
		}
		if err := gameWrite(txCtx); err != nil {
			_ = s.uow.Rollback(txCtx)
			return nil, err
		}
		if err := s.uow.Commit(txCtx); err != nil {
			return nil, err
		}
		return wallet, nil
	}
	return nil, lastErr
}

func (s *JackpotService) publish(ctx context.Context, wallet *entity.Wallet) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, persistence.WalletEvent{
		AccountID:    wallet.AccountID,
		Balance:      wallet.Balance(),
		TotalWagered: wallet.TotalWagered(),
		Level:        wallet.Level,
		OccurredAt:   s.timeProvider.Now(),
	}); err != nil {
		s.logger.Warn("Failed to publish wallet change", map[string]any{
			"account_id": wallet.AccountID,
			"error":      err.Error(),
		})
	}
}
