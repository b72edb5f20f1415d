package multiplayer

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
)

// DefaultCrashHouseEdge is the fraction shaved off the fair crash point
const DefaultCrashHouseEdge = 0.04

// CrashBetResult is returned when a crash bet is placed
type CrashBetResult struct {
	RoundID    string
	BetID      string
	Amount     int64
	Multiplier float64
	NewBalance int64
}

// CashoutResult is returned on a successful cashout
type CashoutResult struct {
	RoundID    string
	Multiplier float64
	WonAmount  int64
	NewBalance int64
}

// CrashService runs the shared crash rounds. Players bet into the open round,
// cash out while the multiplier climbs, and lose the stake when the round
// crashes first.
type CrashService struct {
	uow          persistence.UnitOfWork
	walletRepo   persistence.WalletRepository
	crashRepo    persistence.CrashRepository
	feed         persistence.WalletFeed
	gate         *session.Gate
	rng          coreport.Rand
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	minBet       int64
	houseEdge    float64
}

// NewCrashService creates the crash service
func NewCrashService(
	uow persistence.UnitOfWork,
	walletRepo persistence.WalletRepository,
	crashRepo persistence.CrashRepository,
	feed persistence.WalletFeed,
	gate *session.Gate,
	rng coreport.Rand,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	minBet int64,
	houseEdge float64,
) *CrashService {
	if houseEdge <= 0 || houseEdge >= 1 {
		houseEdge = DefaultCrashHouseEdge
	}
	return &CrashService{
		uow:          uow,
		walletRepo:   walletRepo,
		crashRepo:    crashRepo,
		feed:         feed,
		gate:         gate,
		rng:          rng,
		timeProvider: timeProvider,
		logger:       logger,
		minBet:       minBet,
		houseEdge:    houseEdge,
	}
}

// PlaceBet stakes into the open round, launching a new one when none is live.
// One active bet per account at a time.
func (s *CrashService) PlaceBet(ctx context.Context, identity *entity.Identity, bet int64) (*CrashBetResult, error) {
	if err := s.gate.Authorize(ctx, identity); err != nil {
		return nil, err
	}
	if bet < s.minBet {
		return nil, errs.NewBelowMinimumError(string(entity.GameCrash), bet, s.minBet)
	}

	if existing, err := s.crashRepo.GetActiveBet(ctx, identity.AccountID); err == nil && existing != nil {
		return nil, errs.ErrInvalidBet
	} else if err != nil && !errors.Is(err, errs.ErrNoGameAvailable) {
		return nil, err
	}

	round, err := s.openRound(ctx)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	crashBet := &entity.CrashBet{
		ID:        uuid.NewString(),
		RoundID:   round.ID,
		AccountID: identity.AccountID,
		Amount:    bet,
		Status:    entity.CrashBetActive,
		CreatedAt: now,
	}

	wallet, err := s.placeStake(ctx, identity.AccountID, bet, crashBet)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Crash bet placed", map[string]any{
		"round_id":   round.ID,
		"bet_id":     crashBet.ID,
		"account_id": identity.AccountID,
		"amount":     bet,
	})
	s.publish(ctx, wallet)
	return &CrashBetResult{
		RoundID:    round.ID,
		BetID:      crashBet.ID,
		Amount:     bet,
		Multiplier: round.MultiplierAt(now),
		NewBalance: wallet.Balance(),
	}, nil
}

// Cashout locks in the live multiplier for the caller's active bet. The bet
// transition is conditional on it still being active, so a cashout racing the
// crash sweep never pays and loses the same stake.
func (s *CrashService) Cashout(ctx context.Context, identity *entity.Identity) (*CashoutResult, error) {
	if err := s.gate.Authorize(ctx, identity); err != nil {
		return nil, err
	}

	bet, err := s.crashRepo.GetActiveBet(ctx, identity.AccountID)
	if err != nil {
		return nil, err
	}
	round, err := s.crashRepo.GetRound(ctx, bet.RoundID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if round.Status != entity.StatusRunning || round.Crashed(now) {
		return nil, errs.ErrNoGameAvailable
	}
	multiplier := round.MultiplierAt(now)
	wonAmount := int64(math.Floor(float64(bet.Amount) * multiplier))

	wallet, err := s.walletRepo.GetByAccountID(ctx, identity.AccountID)
	if err != nil {
		return nil, err
	}
	expected := wallet.Balance()
	if err := wallet.Credit(wonAmount, s.timeProvider); err != nil {
		return nil, err
	}
	if err := wallet.RecordWager(bet.Amount, s.timeProvider); err != nil {
		return nil, err
	}

	record, err := entity.NewSettlement(
		uuid.NewString(), identity.AccountID, entity.GameCrash,
		bet.Amount, entity.ResultWin, wonAmount, wallet.Balance(), s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.uow.GetCrashRepository(txCtx).Cashout(txCtx, bet.ID, multiplier, wonAmount, now); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := s.uow.GetWalletRepository(txCtx).UpdateIfBalance(txCtx, wallet, expected); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := s.uow.GetSettlementRepository(txCtx).Create(txCtx, record); err != nil {
		_ = s.uow.Rollback(txCtx)
		return nil, err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Crash cashout", map[string]any{
		"round_id":   round.ID,
		"bet_id":     bet.ID,
		"account_id": identity.AccountID,
		"multiplier": multiplier,
		"won_amount": wonAmount,
	})
	s.publish(ctx, wallet)
	return &CashoutResult{
		RoundID:    round.ID,
		Multiplier: multiplier,
		WonAmount:  wonAmount,
		NewBalance: wallet.Balance(),
	}, nil
}

// CompleteCrashed sweeps the open round once its crash point has passed:
// remaining active bets settle as losses and the round closes. Run from the
// scheduler.
func (s *CrashService) CompleteCrashed(ctx context.Context) error {
	round, err := s.crashRepo.GetOpenRound(ctx)
	if errors.Is(err, errs.ErrNoGameAvailable) {
		return nil
	}
	if err != nil {
		return err
	}

	now := s.timeProvider.Now()
	if round.Status != entity.StatusRunning || !round.Crashed(now) {
		return nil
	}

	if err := s.crashRepo.CompleteRound(ctx, round.ID, now); err != nil {
		// a concurrent sweep already closed it
		if errs.IsConflictError(err) || errors.Is(err, errs.ErrNoGameAvailable) {
			return nil
		}
		return err
	}

	bets, err := s.crashRepo.ListActiveBets(ctx, round.ID)
	if err != nil {
		return err
	}
	for _, bet := range bets {
		if err := s.settleLoss(ctx, bet); err != nil {
			s.logger.Error("Failed to settle crashed bet", map[string]any{
				"round_id": round.ID,
				"bet_id":   bet.ID,
				"error":    err.Error(),
			})
		}
	}

	s.logger.Info("Crash round completed", map[string]any{
		"round_id":    round.ID,
		"crash_point": round.CrashPoint,
		"lost_bets":   len(bets),
	})
	return nil
}

// openRound returns the live round, launching one when none exists. The crash
// point is drawn at creation from an inverse distribution shaved by the house
// edge and clamped to 1.00.
func (s *CrashService) openRound(ctx context.Context) (*entity.CrashRound, error) {
	round, err := s.crashRepo.GetOpenRound(ctx)
	if err == nil {
		if round.Status == entity.StatusRunning && !round.Crashed(s.timeProvider.Now()) {
			return round, nil
		}
		// crashed but not yet swept, launch fresh after the sweep
		return nil, errs.ErrNoGameAvailable
	}
	if !errors.Is(err, errs.ErrNoGameAvailable) {
		return nil, err
	}

	now := s.timeProvider.Now()
	round = &entity.CrashRound{
		ID:         uuid.NewString(),
		Status:     entity.StatusRunning,
		CrashPoint: s.drawCrashPoint(),
		CreatedAt:  now,
		StartedAt:  &now,
	}
	if err := s.crashRepo.CreateRound(ctx, round); err != nil {
		return nil, err
	}
	return round, nil
}

func (s *CrashService) drawCrashPoint() float64 {
	u := s.rng.Float64()
	if u >= 1 {
		u = math.Nextafter(1, 0)
	}
	point := (1 / (1 - u)) * (1 - s.houseEdge)
	return math.Max(1.00, point)
}

func (s *CrashService) settleLoss(ctx context.Context, bet *entity.CrashBet) error {
	wallet, err := s.walletRepo.GetByAccountID(ctx, bet.AccountID)
	if err != nil {
		return err
	}
	expected := wallet.Balance()
	if err := wallet.RecordWager(bet.Amount, s.timeProvider); err != nil {
		return err
	}

	record, err := entity.NewSettlement(
		uuid.NewString(), bet.AccountID, entity.GameCrash,
		bet.Amount, entity.ResultLoss, 0, wallet.Balance(), s.timeProvider,
	)
	if err != nil {
		return err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := s.uow.GetCrashRepository(txCtx).MarkLost(txCtx, bet.ID); err != nil {
		_ = s.uow.Rollback(txCtx)
		// the player cashed out between the sweep's list and this write
		if errs.IsConflictError(err) || errors.Is(err, errs.ErrNoGameAvailable) {
			return nil
		}
		return err
	}
	if err := s.uow.GetWalletRepository(txCtx).UpdateIfBalance(txCtx, wallet, expected); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.GetSettlementRepository(txCtx).Create(txCtx, record); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}
	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}
	s.publish(ctx, wallet)
	return nil
}

func (s *CrashService) publish(ctx context.Context, wallet *entity.Wallet) {
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

// placeStake debits the stake and inserts the bet row in one transaction
func (s *CrashService) placeStake(ctx context.Context, accountID string, amount int64, bet *entity.CrashBet) (*entity.Wallet, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		wallet, err := s.walletRepo.GetByAccountID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		expected := wallet.Balance()
		if err := wallet.Debit(amount, s.timeProvider); err != nil {
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
		if err := s.uow.GetCrashRepository(txCtx).CreateBet(txCtx, bet); err != nil {
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
