package model

import (
	"time"
)

// ChatMessage represents the database model for chat lines. Tip transfers
// carry the amount and recipient on the message row itself.
type ChatMessage struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID      string    `gorm:"not null;index;size:64"`
	Content        string    `gorm:"not null;type:text"`
	IsTip          bool      `gorm:"not null;default:false"`
	TipAmount      int64     `gorm:"not null;default:0"`
	TipRecipientID string    `gorm:"size:64"`
	CreatedAt      time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for ChatMessage
func (ChatMessage) TableName() string {
	return "chat_messages"
}
