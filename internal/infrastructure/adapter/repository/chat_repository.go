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

// ChatRepository implements persistence.ChatRepository using GORM
type ChatRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewChatRepository creates a new ChatRepository instance
func NewChatRepository(db *gorm.DB, logger coreport.Logger) *ChatRepository {
	return &ChatRepository{db: db, logger: logger}
}

// CreateMessage appends a chat line
func (r *ChatRepository) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	m := &model.ChatMessage{
		AccountID:      message.AccountID,
		Content:        message.Content,
		IsTip:          message.IsTip,
		TipAmount:      message.TipAmount,
		TipRecipientID: message.TipRecipientID,
		CreatedAt:      message.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		r.logger.Error("Failed to create chat message", map[string]any{
			"account_id": message.AccountID,
			"error":      err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, err.Error())
	}
	message.ID = m.ID
	return nil
}

// ListRecent returns the latest messages, newest last
func (r *ChatRepository) ListRecent(ctx context.Context, limit int) ([]*entity.ChatMessage, error) {
	var ms []model.ChatMessage
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms)
	if result.Error != nil {
		r.logger.Error("Failed to list chat messages", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrPersistenceUnavailable, result.Error.Error())
	}

	// reverse into chronological order
	messages := make([]*entity.ChatMessage, len(ms))
	for i := range ms {
		m := &ms[len(ms)-1-i]
		messages[i] = &entity.ChatMessage{
			ID:             m.ID,
			AccountID:      m.AccountID,
			Content:        m.Content,
			IsTip:          m.IsTip,
			TipAmount:      m.TipAmount,
			TipRecipientID: m.TipRecipientID,
			CreatedAt:      m.CreatedAt,
		}
	}
	return messages, nil
}
