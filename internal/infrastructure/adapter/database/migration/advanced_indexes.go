package migration

import (
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates advanced PostgreSQL indexes for better performance
func (m *AdvancedIndexManager) CreateAdvancedIndexes() error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	// Composite index for account history pages, newest first
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_settlements_account_created
		ON settlements (account_id, created_at DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create account history index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Leaderboard scans the wagered ranking directly
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_wallets_total_wagered
		ON wallets (total_wagered DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create leaderboard index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Partial index for waiting pots; the join query only ever reads these
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_jackpot_games_waiting
		ON jackpot_games (created_at)
		WHERE status = 'waiting'
	`).Error; err != nil {
		m.logger.Error("Failed to create waiting jackpot partial index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Partial index for active crash bets; cashouts and sweeps hit this
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_crash_bets_active
		ON crash_bets (account_id, round_id)
		WHERE status = 'active'
	`).Error; err != nil {
		m.logger.Error("Failed to create active crash bets partial index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// BRIN index for created_at (more efficient for temporal data)
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_settlements_created_at_brin
		ON settlements USING BRIN (created_at)
		WITH (pages_per_range = 32)
	`).Error; err != nil {
		m.logger.Error("Failed to create BRIN index on created_at", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	// Chat pagination
	if err := m.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_chat_messages_created_at
		ON chat_messages (created_at DESC)
	`).Error; err != nil {
		m.logger.Error("Failed to create chat index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL performance tweaks
func (m *AdvancedIndexManager) CreatePerformanceTweaks() error {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// Set fillfactor for the wallets table; its rows update on every wager
	if err := m.db.Exec(`
		ALTER TABLE wallets SET (fillfactor = 90)
	`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for wallets table", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	// Set statistics target for better query planning
	if err := m.db.Exec(`
		ALTER TABLE settlements ALTER COLUMN account_id SET STATISTICS 1000
	`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for account_id", map[string]any{
			"error": err.Error(),
		})
		// Don't return error as this is not critical
	}

	m.logger.Info("PostgreSQL performance tweaks applied successfully", nil)
	return nil
}
