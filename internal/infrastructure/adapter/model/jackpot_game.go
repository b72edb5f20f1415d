package model

import (
	"time"
)

// JackpotGame represents the database model for two-player pots. Status moves
// waiting -> playing -> completed; the claim and complete transitions are
// conditional updates on the current status.
type JackpotGame struct {
	ID           string `gorm:"primaryKey;size:64"`
	CreatorID    string `gorm:"not null;index;size:64"`
	CreatorBet   int64  `gorm:"not null"`
	JoinerID     string `gorm:"size:64"`
	JoinerBet    int64  `gorm:"not null;default:0"`
	WinnerID     string `gorm:"size:64"`
	Status       string `gorm:"not null;size:16;index"`
	CreatedAt    time.Time `gorm:"not null;index"`
	JoinedAt     *time.Time
	CountdownEnd *time.Time `gorm:"index"`
	CompletedAt  *time.Time
}

// TableName specifies the table name for JackpotGame
func (JackpotGame) TableName() string {
	return "jackpot_games"
}
