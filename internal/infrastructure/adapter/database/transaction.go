package database

import (
	"context"
	"fmt"
	"strings"

	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	errorMapper  *ErrorMapper
	metrics      *MetricsCollector
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  NewErrorMapper(),
		metrics:      NewMetricsCollector(logger, timeProvider),
	}
}

// Begin starts a new database transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.logger.Debug("Beginning database transaction", nil)

	// Start a transaction. READ COMMITTED is enough here: lost updates are
	// prevented by the conditional balance and status writes, not isolation.
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Store transaction in context
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Committing database transaction", nil)
	_, err := u.metrics.MeasureQuery(ctx, "commit", func() (int64, error) {
		return 0, tx.Commit().Error
	})
	if err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		// Serialization failures on commit surface as the domain conflict
		// error so callers rerun their retry loop instead of failing.
		return u.errorMapper.MapError(err, "commit")
	}

	return nil
}

// Rollback rolls back the current transaction with improved error handling
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Rolling back database transaction", nil)

	// Execute rollback and capture error
	err := tx.Rollback().Error

	// If the error indicates the transaction was already committed or rolled back,
	// log it as a warning but don't return an error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	// For other errors, log and return
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// GetWalletRepository returns a wallet repository in the current transaction
func (u *UnitOfWork) GetWalletRepository(ctx context.Context) persistence.WalletRepository {
	db := u.getDbFromContext(ctx)
	return repository.NewWalletRepository(db, u.timeProvider, u.logger)
}

// GetSettlementRepository returns a settlement repository in the current transaction
func (u *UnitOfWork) GetSettlementRepository(ctx context.Context) persistence.SettlementRepository {
	db := u.getDbFromContext(ctx)
	return repository.NewSettlementRepository(db, u.logger)
}

// GetRewardRepository returns a reward repository in the current transaction
func (u *UnitOfWork) GetRewardRepository(ctx context.Context) persistence.RewardRepository {
	db := u.getDbFromContext(ctx)
	return repository.NewRewardRepository(db, u.logger)
}

// GetChatRepository returns a chat repository in the current transaction
func (u *UnitOfWork) GetChatRepository(ctx context.Context) persistence.ChatRepository {
	db := u.getDbFromContext(ctx)
	return repository.NewChatRepository(db, u.logger)
}

// GetJackpotRepository returns a jackpot repository in the current transaction
func (u *UnitOfWork) GetJackpotRepository(ctx context.Context) persistence.JackpotRepository {
	db := u.getDbFromContext(ctx)
	return repository.NewJackpotRepository(db, u.logger)
}

// GetCrashRepository returns a crash repository in the current transaction
func (u *UnitOfWork) GetCrashRepository(ctx context.Context) persistence.CrashRepository {
	db := u.getDbFromContext(ctx)
	return repository.NewCrashRepository(db, u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
