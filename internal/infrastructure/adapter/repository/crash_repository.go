package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CrashRepository implements persistence.CrashRepository using GORM
type CrashRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewCrashRepository creates a new CrashRepository instance
func NewCrashRepository(db *gorm.DB, logger coreport.Logger) *CrashRepository {
	return &CrashRepository{db: db, logger: logger}
}

func (r *CrashRepository) roundToEntity(m *model.CrashRound) *entity.CrashRound {
	return &entity.CrashRound{
		ID:          m.ID,
		Status:      entity.GameStatus(m.Status),
		CrashPoint:  m.CrashPoint,
		CreatedAt:   m.CreatedAt,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
	}
}

func (r *CrashRepository) betToEntity(m *model.CrashBet) *entity.CrashBet {
	return &entity.CrashBet{
		ID:                m.ID,
		RoundID:           m.RoundID,
		AccountID:         m.AccountID,
		Amount:            m.Amount,
		CashoutMultiplier: m.CashoutMultiplier,
		Status:            entity.CrashBetStatus(m.Status),
		WonAmount:         m.WonAmount,
		CreatedAt:         m.CreatedAt,
		CashedOutAt:       m.CashedOutAt,
	}
}

func (r *CrashRepository) wrapError(operation string, err error, id string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"id":    id,
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, err.Error())
}

// GetOpenRound returns the current waiting or running round
func (r *CrashRepository) GetOpenRound(ctx context.Context) (*entity.CrashRound, error) {
	var m model.CrashRound
	result := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(entity.StatusWaiting), string(entity.StatusRunning)}).
		Order("created_at DESC").
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNoGameAvailable
		}
		return nil, r.wrapError("getting open crash round", result.Error, "")
	}
	return r.roundToEntity(&m), nil
}

// CreateRound inserts a new round
func (r *CrashRepository) CreateRound(ctx context.Context, round *entity.CrashRound) error {
	m := &model.CrashRound{
		ID:         round.ID,
		Status:     string(round.Status),
		CrashPoint: round.CrashPoint,
		CreatedAt:  round.CreatedAt,
		StartedAt:  round.StartedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.wrapError("creating crash round", err, round.ID)
	}
	return nil
}

// GetRound retrieves a round by ID
func (r *CrashRepository) GetRound(ctx context.Context, roundID string) (*entity.CrashRound, error) {
	var m model.CrashRound
	result := r.db.WithContext(ctx).Where("id = ?", roundID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNoGameAvailable
		}
		return nil, r.wrapError("getting crash round", result.Error, roundID)
	}
	return r.roundToEntity(&m), nil
}

// StartRound transitions a waiting round to running
func (r *CrashRepository) StartRound(ctx context.Context, roundID string, startedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.CrashRound{}).
		Where("id = ? AND status = ?", roundID, string(entity.StatusWaiting)).
		Updates(map[string]any{
			"status":     string(entity.StatusRunning),
			"started_at": startedAt,
		})
	if result.Error != nil {
		return r.wrapError("starting crash round", result.Error, roundID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNoGameAvailable
	}
	return nil
}

// CompleteRound marks a round crashed. Conditional on the round running so
// concurrent sweeps close it once.
func (r *CrashRepository) CompleteRound(ctx context.Context, roundID string, completedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.CrashRound{}).
		Where("id = ? AND status = ?", roundID, string(entity.StatusRunning)).
		Updates(map[string]any{
			"status":       string(entity.StatusCompleted),
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return r.wrapError("completing crash round", result.Error, roundID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNoGameAvailable
	}
	return nil
}

// CreateBet inserts an active bet against a round
func (r *CrashRepository) CreateBet(ctx context.Context, bet *entity.CrashBet) error {
	m := &model.CrashBet{
		ID:        bet.ID,
		RoundID:   bet.RoundID,
		AccountID: bet.AccountID,
		Amount:    bet.Amount,
		Status:    string(bet.Status),
		CreatedAt: bet.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return r.wrapError("creating crash bet", err, bet.ID)
	}
	return nil
}

// GetActiveBet returns the account's active bet
func (r *CrashRepository) GetActiveBet(ctx context.Context, accountID string) (*entity.CrashBet, error) {
	var m model.CrashBet
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, string(entity.CrashBetActive)).
		Order("created_at DESC").
		First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNoGameAvailable
		}
		return nil, r.wrapError("getting active crash bet", result.Error, accountID)
	}
	return r.betToEntity(&m), nil
}

// Cashout transitions an active bet to won. Conditional on the bet still
// active so a cashout racing the crash sweep settles exactly once.
func (r *CrashRepository) Cashout(ctx context.Context, betID string, multiplier float64, wonAmount int64, cashedOutAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.CrashBet{}).
		Where("id = ? AND status = ?", betID, string(entity.CrashBetActive)).
		Updates(map[string]any{
			"status":             string(entity.CrashBetWon),
			"cashout_multiplier": multiplier,
			"won_amount":         wonAmount,
			"cashed_out_at":      cashedOutAt,
		})
	if result.Error != nil {
		return r.wrapError("cashing out crash bet", result.Error, betID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNoGameAvailable
	}
	return nil
}

// ListActiveBets returns the active bets on a round
func (r *CrashRepository) ListActiveBets(ctx context.Context, roundID string) ([]*entity.CrashBet, error) {
	var ms []model.CrashBet
	result := r.db.WithContext(ctx).
		Where("round_id = ? AND status = ?", roundID, string(entity.CrashBetActive)).
		Find(&ms)
	if result.Error != nil {
		return nil, r.wrapError("listing active crash bets", result.Error, roundID)
	}

	bets := make([]*entity.CrashBet, 0, len(ms))
	for i := range ms {
		bets = append(bets, r.betToEntity(&ms[i]))
	}
	return bets, nil
}

// MarkLost transitions an active bet to lost. Conditional on the bet still
// active.
func (r *CrashRepository) MarkLost(ctx context.Context, betID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.CrashBet{}).
		Where("id = ? AND status = ?", betID, string(entity.CrashBetActive)).
		Update("status", string(entity.CrashBetLost))
	if result.Error != nil {
		return r.wrapError("marking crash bet lost", result.Error, betID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNoGameAvailable
	}
	return nil
}
