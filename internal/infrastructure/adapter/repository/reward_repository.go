package repository

import (
	"context"
	"fmt"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// RewardRepository implements persistence.RewardRepository using GORM
type RewardRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewRewardRepository creates a new RewardRepository instance
func NewRewardRepository(db *gorm.DB, logger coreport.Logger) *RewardRepository {
	return &RewardRepository{db: db, logger: logger}
}

// CreateClaim records one reward grant
func (r *RewardRepository) CreateClaim(ctx context.Context, claim *entity.LevelRewardClaim) error {
	m := &model.LevelRewardClaim{
		AccountID: claim.AccountID,
		Level:     claim.Level,
		Amount:    claim.Amount,
		ClaimedAt: claim.ClaimedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("Failed to create reward claim", map[string]any{
			"account_id": claim.AccountID,
			"error":      err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, err.Error())
	}
	claim.ID = m.ID
	return nil
}
