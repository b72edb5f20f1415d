package migration

import (
	"context"

	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"gorm.io/gorm"
)

// AddTipColumnsToChatMessages is a migration to add tip transfer columns to
// the chat_messages table for databases created before tips existed
type AddTipColumnsToChatMessages struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAddTipColumnsToChatMessages creates a new migration instance
func NewAddTipColumnsToChatMessages(db *gorm.DB, logger coreport.Logger) *AddTipColumnsToChatMessages {
	return &AddTipColumnsToChatMessages{
		db:     db,
		logger: logger,
	}
}

// Run executes the migration
func (m *AddTipColumnsToChatMessages) Run(ctx context.Context) error {
	m.logger.Info("Adding tip columns to chat_messages table", nil)

	// Check if columns already exist
	var hasIsTip, hasTipAmount, hasTipRecipient bool
	if err := m.checkColumnExists(&hasIsTip, &hasTipAmount, &hasTipRecipient); err != nil {
		return err
	}

	if !hasIsTip {
		if err := m.db.Exec(`ALTER TABLE chat_messages ADD COLUMN is_tip BOOLEAN NOT NULL DEFAULT FALSE`).Error; err != nil {
			m.logger.Error("Failed to add is_tip column", map[string]any{"error": err.Error()})
			return err
		}
	}

	if !hasTipAmount {
		if err := m.db.Exec(`ALTER TABLE chat_messages ADD COLUMN tip_amount BIGINT NOT NULL DEFAULT 0`).Error; err != nil {
			m.logger.Error("Failed to add tip_amount column", map[string]any{"error": err.Error()})
			return err
		}
	}

	if !hasTipRecipient {
		if err := m.db.Exec(`ALTER TABLE chat_messages ADD COLUMN tip_recipient_id VARCHAR(64)`).Error; err != nil {
			m.logger.Error("Failed to add tip_recipient_id column", map[string]any{"error": err.Error()})
			return err
		}
	}

	m.logger.Info("Successfully added tip columns to chat_messages table", nil)
	return nil
}

// checkColumnExists checks if the columns already exist in the table
func (m *AddTipColumnsToChatMessages) checkColumnExists(hasIsTip, hasTipAmount, hasTipRecipient *bool) error {
	// For PostgreSQL
	var columns []struct {
		ColumnName string `gorm:"column:column_name"`
	}

	err := m.db.Raw(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = 'chat_messages' AND column_name IN ('is_tip', 'tip_amount', 'tip_recipient_id')
	`).Scan(&columns).Error

	if err != nil {
		m.logger.Error("Failed to check columns existence", map[string]any{"error": err.Error()})
		return err
	}

	for _, column := range columns {
		switch column.ColumnName {
		case "is_tip":
			*hasIsTip = true
		case "tip_amount":
			*hasTipAmount = true
		case "tip_recipient_id":
			*hasTipRecipient = true
		}
	}

	return nil
}
