package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// SettlementRepository implements persistence.SettlementRepository using GORM
type SettlementRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewSettlementRepository creates a new SettlementRepository instance
func NewSettlementRepository(db *gorm.DB, logger coreport.Logger) *SettlementRepository {
	return &SettlementRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a settlement model to an entity
func (r *SettlementRepository) modelToEntity(m *model.Settlement) *entity.Settlement {
	return &entity.Settlement{
		ID:            m.ID,
		Token:         m.Token,
		AccountID:     m.AccountID,
		GameType:      entity.GameType(m.GameType),
		BetAmount:     m.BetAmount,
		Result:        entity.Result(m.Result),
		WonAmount:     m.WonAmount,
		ResultBalance: m.ResultBalance,
		CreatedAt:     m.CreatedAt,
	}
}

// Create saves a new settlement record. A duplicate token maps to
// ErrDuplicateToken so callers replay the stored record.
func (r *SettlementRepository) Create(ctx context.Context, settlement *entity.Settlement) error {
	m := &model.Settlement{
		Token:         settlement.Token,
		AccountID:     settlement.AccountID,
		GameType:      string(settlement.GameType),
		BetAmount:     settlement.BetAmount,
		Result:        string(settlement.Result),
		WonAmount:     settlement.WonAmount,
		ResultBalance: settlement.ResultBalance,
		CreatedAt:     settlement.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate settlement token", map[string]any{
				"token":      settlement.Token,
				"account_id": settlement.AccountID,
			})
			return errs.ErrDuplicateToken
		}
		r.logger.Error("Failed to create settlement", map[string]any{
			"token": settlement.Token,
			"error": err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, err.Error())
	}

	settlement.ID = m.ID
	return nil
}

// GetByToken retrieves a settlement by its idempotency token
func (r *SettlementRepository) GetByToken(ctx context.Context, token string) (*entity.Settlement, error) {
	var m model.Settlement
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSettlementNotFound
		}
		r.logger.Error("Failed to get settlement by token", map[string]any{
			"token": token,
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, result.Error.Error())
	}
	return r.modelToEntity(&m), nil
}

// TokenExists checks whether a settlement token was already used
func (r *SettlementRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.Settlement{}).
		Where("token = ?", token).
		Count(&count)
	if result.Error != nil {
		r.logger.Error("Failed to check settlement token", map[string]any{
			"token": token,
			"error": result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, result.Error.Error())
	}
	return count > 0, nil
}

// ListByAccount returns the most recent settlements for an account
func (r *SettlementRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*entity.Settlement, error) {
	var ms []model.Settlement
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms)
	if result.Error != nil {
		r.logger.Error("Failed to list settlements", map[string]any{
			"account_id": accountID,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, result.Error.Error())
	}

	settlements := make([]*entity.Settlement, 0, len(ms))
	for i := range ms {
		settlements = append(settlements, r.modelToEntity(&ms[i]))
	}
	return settlements, nil
}
