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

// BanRepository implements persistence.BanRepository using GORM
type BanRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBanRepository creates a new BanRepository instance
func NewBanRepository(db *gorm.DB, logger coreport.Logger) *BanRepository {
	return &BanRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// GetByAccountID returns the ban for an account, or nil when none exists.
// This sits on the hot path of every wager, so a missing row is not an error.
func (r *BanRepository) GetByAccountID(ctx context.Context, accountID string) (*entity.BanRecord, error) {
	var m model.BanRecord
	result := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to read ban record", map[string]any{
			"account_id": accountID,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, result.Error.Error())
	}

	return &entity.BanRecord{
		AccountID: m.AccountID,
		BannedBy:  m.BannedBy,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}, nil
}

// Create inserts a ban record. Inserting for an already banned account is
// treated as success.
func (r *BanRepository) Create(ctx context.Context, ban *entity.BanRecord) error {
	m := &model.BanRecord{
		AccountID: ban.AccountID,
		BannedBy:  ban.BannedBy,
		Reason:    ban.Reason,
		CreatedAt: ban.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			return nil
		}
		r.logger.Error("Failed to create ban record", map[string]any{
			"account_id": ban.AccountID,
			"error":      err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, err.Error())
	}
	return nil
}
