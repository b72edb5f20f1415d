// Package settlement implements the wager settlement engine: the atomic
// pipeline that debits a bet, resolves an outcome, credits any payout,
// advances the wager aggregates, and appends the history record.
package settlement

import (
	"context"
	"errors"
	"math"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/games"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
)

// DefaultMaxConflictRetries bounds compare-and-swap retries before Busy
const DefaultMaxConflictRetries = 3

// PlaceBetRequest is one wager submission. Token is the client-generated
// idempotency key.
type PlaceBetRequest struct {
	Token     string
	AccountID string
	GameType  entity.GameType
	Bet       int64
	Params    games.Params

	// outcome is pinned on first resolution so conflict retries never reroll
	outcome *games.Outcome
}

// Result is returned to the presentation layer after a committed settlement
type Result struct {
	Token      string
	GameType   entity.GameType
	Won        bool
	Result     entity.Result
	BetAmount  int64
	WonAmount  int64
	NewBalance int64
	Level      int
	Detail     map[string]any
	Replayed   bool
}

// Service is the settlement engine
type Service struct {
	uow          persistence.UnitOfWork
	walletRepo   persistence.WalletRepository
	feed         persistence.WalletFeed
	gate         *session.Gate
	registry     *games.Registry
	validator    *BetValidator
	idempotency  *IdempotencyHandler
	serializer   *AccountSerializer
	rng          coreport.Rand
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	maxRetries   int
}

// NewService wires the settlement engine
func NewService(
	uow persistence.UnitOfWork,
	walletRepo persistence.WalletRepository,
	settlementRepo persistence.SettlementRepository,
	feed persistence.WalletFeed,
	gate *session.Gate,
	registry *games.Registry,
	validator *BetValidator,
	rng coreport.Rand,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	maxConflictRetries int,
) *Service {
	if maxConflictRetries <= 0 {
		maxConflictRetries = DefaultMaxConflictRetries
	}
	s := &Service{
		uow:          uow,
		walletRepo:   walletRepo,
		feed:         feed,
		gate:         gate,
		registry:     registry,
		validator:    validator,
		idempotency:  NewIdempotencyHandler(settlementRepo),
		rng:          rng,
		timeProvider: timeProvider,
		logger:       logger,
		maxRetries:   maxConflictRetries,
	}
	s.serializer = NewAccountSerializer(logger, s.settleOnce)
	return s
}

// PlaceBet runs the full settlement pipeline for one wager:
//  1. session gate (identity present, not banned)
//  2. validation (positive bet over the game floor)
//  3. idempotency (replayed tokens return the stored settlement)
//  4. serialized, atomic settle (debit, outcome, credit, aggregates, history)
func (s *Service) PlaceBet(ctx context.Context, identity *entity.Identity, req *PlaceBetRequest) (*Result, error) {
	if err := s.gate.Authorize(ctx, identity); err != nil {
		return nil, err
	}
	req.AccountID = identity.AccountID

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Early replay check; the unique token index catches races that slip past
	stored, found, err := s.idempotency.Check(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if found {
		return s.replayResult(stored), nil
	}

	return s.serializer.Enqueue(ctx, req)
}

// PlaceResolved settles a wager whose outcome was produced outside the
// generator registry. Used by the interactive blackjack flow, which resolves
// hands through the state machine before settling.
func (s *Service) PlaceResolved(ctx context.Context, identity *entity.Identity, req *PlaceBetRequest, outcome games.Outcome) (*Result, error) {
	if err := s.gate.Authorize(ctx, identity); err != nil {
		return nil, err
	}
	req.AccountID = identity.AccountID

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	stored, found, err := s.idempotency.Check(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if found {
		return s.replayResult(stored), nil
	}

	req.outcome = &outcome
	return s.serializer.Enqueue(ctx, req)
}

// Shutdown drains the per-account queues
func (s *Service) Shutdown() {
	s.serializer.Shutdown()
}

// settleOnce executes one settlement under the account's queue worker. The
// outcome is resolved exactly once; compare-and-swap conflicts retry the
// wallet write with the same outcome.
func (s *Service) settleOnce(ctx context.Context, req *PlaceBetRequest) (*Result, error) {
	if req.outcome == nil {
		generator, err := s.registry.Get(req.GameType)
		if err != nil {
			return nil, err
		}
		outcome, err := generator.Generate(s.rng, req.Params)
		if err != nil {
			return nil, err
		}
		req.outcome = &outcome
	}
	outcome := *req.outcome
	wonAmount := int64(math.Floor(float64(req.Bet) * outcome.Multiplier))

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		result, err := s.commitSettlement(ctx, req, outcome, wonAmount)
		if err == nil {
			s.publishWalletChange(req.AccountID, result)
			return result, nil
		}
		if errs.IsDuplicateTokenError(err) {
			// Lost an idempotency race; the original settlement stands
			stored, getErr := s.idempotency.settlementRepo.GetByToken(ctx, req.Token)
			if getErr == nil {
				return s.replayResult(stored), nil
			}
			return nil, err
		}
		if !errs.IsConflictError(err) {
			return nil, err
		}
		lastErr = err
		s.logger.Warn("Settlement lost wallet compare-and-swap, retrying", map[string]any{
			"account_id": req.AccountID,
			"token":      req.Token,
			"attempt":    attempt + 1,
		})
	}

	s.logger.Error("Settlement retry budget exhausted", map[string]any{
		"account_id": req.AccountID,
		"token":      req.Token,
		"error":      lastErr.Error(),
	})
	return nil, errs.ErrBusy
}

// commitSettlement applies one settlement attempt in a single unit of work:
// wallet compare-and-swap plus history insert, all-or-nothing.
func (s *Service) commitSettlement(ctx context.Context, req *PlaceBetRequest, outcome games.Outcome, wonAmount int64) (*Result, error) {
	wallet, err := s.walletRepo.GetByAccountID(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	expectedBalance := wallet.Balance()
	if !wallet.CanCover(req.Bet) {
		return nil, errs.NewInsufficientFundsError(req.AccountID, req.Bet, expectedBalance)
	}

	if err := wallet.ApplySettlement(req.Bet, wonAmount, s.timeProvider); err != nil {
		return nil, err
	}

	record, err := entity.NewSettlement(
		req.Token,
		req.AccountID,
		req.GameType,
		req.Bet,
		outcome.Result(),
		wonAmount,
		wallet.Balance(),
		s.timeProvider,
	)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.uow.GetWalletRepository(txCtx).UpdateIfBalance(txCtx, wallet, expectedBalance); err != nil {
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

	s.logger.Info("Settlement committed", map[string]any{
		"account_id":  req.AccountID,
		"token":       req.Token,
		"game_type":   req.GameType,
		"bet":         req.Bet,
		"result":      record.Result,
		"won_amount":  wonAmount,
		"new_balance": wallet.Balance(),
		"level":       wallet.Level,
	})

	return &Result{
		Token:      req.Token,
		GameType:   req.GameType,
		Won:        outcome.Won,
		Result:     record.Result,
		BetAmount:  req.Bet,
		WonAmount:  wonAmount,
		NewBalance: wallet.Balance(),
		Level:      wallet.Level,
		Detail:     outcome.Detail,
	}, nil
}

// publishWalletChange pushes the committed balance to the change feed.
// Best-effort: a feed failure never fails a committed settlement.
func (s *Service) publishWalletChange(accountID string, result *Result) {
	if s.feed == nil {
		return
	}
	ctx, cancel := s.timeProvider.WithTimeout(context.Background(), 2*coreport.Second)
	defer cancel()

	err := s.feed.Publish(ctx, persistence.WalletEvent{
		AccountID:  accountID,
		Balance:    result.NewBalance,
		Level:      result.Level,
		OccurredAt: s.timeProvider.Now(),
	})
	if err != nil {
		s.logger.Warn("Failed to publish wallet change", map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
	}
}

// replayResult maps a stored settlement onto the response for a replayed
// token. NewBalance is the balance recorded when the original committed.
func (s *Service) replayResult(stored *entity.Settlement) *Result {
	return &Result{
		Token:      stored.Token,
		GameType:   stored.GameType,
		Won:        stored.Result == entity.ResultWin,
		Result:     stored.Result,
		BetAmount:  stored.BetAmount,
		WonAmount:  stored.WonAmount,
		NewBalance: stored.ResultBalance,
		Replayed:   true,
	}
}

// Busy reports whether the error is the serializer's saturation signal
func Busy(err error) bool {
	return errors.Is(err, errs.ErrBusy)
}
