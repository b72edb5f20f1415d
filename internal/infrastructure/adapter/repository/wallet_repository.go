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

// WalletRepository implements persistence.WalletRepository using GORM
type WalletRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWalletRepository creates a new WalletRepository instance
func NewWalletRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WalletRepository {
	return &WalletRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a wallet model to an entity
func (r *WalletRepository) modelToEntity(walletModel *model.Wallet) *entity.Wallet {
	wallet := &entity.Wallet{
		AccountID: walletModel.AccountID,
		CreatedAt: walletModel.CreatedAt,
		UpdatedAt: walletModel.UpdatedAt,
	}
	wallet.Restore(
		walletModel.Balance,
		walletModel.TotalWagered,
		walletModel.TotalGames,
		walletModel.Level,
		walletModel.LastRewardClaim,
	)
	return wallet
}

// entityToModel converts a wallet entity to its database model
func (r *WalletRepository) entityToModel(wallet *entity.Wallet) *model.Wallet {
	return &model.Wallet{
		AccountID:       wallet.AccountID,
		Balance:         wallet.Balance(),
		TotalWagered:    wallet.TotalWagered(),
		TotalGames:      wallet.TotalGames,
		Level:           wallet.Level,
		LastRewardClaim: wallet.LastRewardClaim,
		CreatedAt:       wallet.CreatedAt,
		UpdatedAt:       wallet.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *WalletRepository) handleDatabaseError(operation string, err error, accountID string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_id": accountID,
		"error":      err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrWalletNotFound
	}
	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateToken
	}
	if r.errorClassifier.IsSerializationError(err) {
		return errs.ErrConflictRetry
	}
	return fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, err.Error())
}

// GetByAccountID retrieves the wallet for an account
func (r *WalletRepository) GetByAccountID(ctx context.Context, accountID string) (*entity.Wallet, error) {
	var walletModel model.Wallet
	result := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&walletModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting wallet", result.Error, accountID)
	}
	return r.modelToEntity(&walletModel), nil
}

// Create creates a new wallet at signup
func (r *WalletRepository) Create(ctx context.Context, wallet *entity.Wallet) error {
	walletModel := r.entityToModel(wallet)
	if err := r.db.WithContext(ctx).Create(walletModel).Error; err != nil {
		return r.handleDatabaseError("creating wallet", err, wallet.AccountID)
	}
	return nil
}

// Update persists the wallet unconditionally. Only for flows already
// serialized by other means.
func (r *WalletRepository) Update(ctx context.Context, wallet *entity.Wallet) error {
	walletModel := r.entityToModel(wallet)
	result := r.db.WithContext(ctx).
		Model(&model.Wallet{}).
		Where("account_id = ?", wallet.AccountID).
		Updates(map[string]any{
			"balance":           walletModel.Balance,
			"total_wagered":     walletModel.TotalWagered,
			"total_games":       walletModel.TotalGames,
			"level":             walletModel.Level,
			"last_reward_claim": walletModel.LastRewardClaim,
			"updated_at":        walletModel.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating wallet", result.Error, wallet.AccountID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrWalletNotFound
	}
	return nil
}

// UpdateIfBalance persists the wallet only when the stored balance still
// equals expectedBalance. A zero row count means another writer moved the
// balance first; callers retry from a fresh read.
func (r *WalletRepository) UpdateIfBalance(ctx context.Context, wallet *entity.Wallet, expectedBalance int64) error {
	walletModel := r.entityToModel(wallet)
	result := r.db.WithContext(ctx).
		Model(&model.Wallet{}).
		Where("account_id = ? AND balance = ?", wallet.AccountID, expectedBalance).
		Updates(map[string]any{
			"balance":           walletModel.Balance,
			"total_wagered":     walletModel.TotalWagered,
			"total_games":       walletModel.TotalGames,
			"level":             walletModel.Level,
			"last_reward_claim": walletModel.LastRewardClaim,
			"updated_at":        walletModel.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("swapping wallet balance", result.Error, wallet.AccountID)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&model.Wallet{}).
			Where("account_id = ?", wallet.AccountID).
			Count(&count).Error; err != nil {
			return r.handleDatabaseError("checking wallet existence", err, wallet.AccountID)
		}
		if count == 0 {
			return errs.ErrWalletNotFound
		}

		r.logger.Debug("Wallet balance moved since read", map[string]any{
			"account_id":       wallet.AccountID,
			"expected_balance": expectedBalance,
		})
		return errs.ErrConflictRetry
	}
	return nil
}

// TopByWagered returns wallets ranked by lifetime wagered total
func (r *WalletRepository) TopByWagered(ctx context.Context, limit int) ([]*entity.Wallet, error) {
	var walletModels []model.Wallet
	result := r.db.WithContext(ctx).
		Order("total_wagered DESC").
		Limit(limit).
		Find(&walletModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing top wallets", result.Error, "")
	}

	wallets := make([]*entity.Wallet, 0, len(walletModels))
	for i := range walletModels {
		wallets = append(wallets, r.modelToEntity(&walletModels[i]))
	}
	return wallets, nil
}
