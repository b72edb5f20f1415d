package model

import (
	"time"
)

// Settlement represents the database model for resolved wagers. The unique
// index on Token is the idempotency backstop for replayed submissions.
type Settlement struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	Token         string    `gorm:"uniqueIndex;not null;size:255"`
	AccountID     string    `gorm:"not null;index;size:64"`
	GameType      string    `gorm:"not null;size:32"`
	BetAmount     int64     `gorm:"not null"`
	Result        string    `gorm:"not null;size:16"`
	WonAmount     int64     `gorm:"not null"`
	ResultBalance int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null;index"`

	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for Settlement
func (Settlement) TableName() string {
	return "settlements"
}

// LevelRewardClaim represents the database model for daily reward grants
type LevelRewardClaim struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID string    `gorm:"not null;index;size:64"`
	Level     int       `gorm:"not null"`
	Amount    int64     `gorm:"not null"`
	ClaimedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for LevelRewardClaim
func (LevelRewardClaim) TableName() string {
	return "level_reward_claims"
}
