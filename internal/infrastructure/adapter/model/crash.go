package model

import (
	"time"
)

// CrashRound represents the database model for crash rounds
type CrashRound struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Status      string    `gorm:"not null;size:16;index"`
	CrashPoint  float64   `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// TableName specifies the table name for CrashRound
func (CrashRound) TableName() string {
	return "crash_rounds"
}

// CrashBet represents the database model for crash wagers. The cashout and
// mark-lost transitions are conditional on Status still being active.
type CrashBet struct {
	ID                string    `gorm:"primaryKey;size:64"`
	RoundID           string    `gorm:"not null;index;size:64"`
	AccountID         string    `gorm:"not null;index;size:64"`
	Amount            int64     `gorm:"not null"`
	CashoutMultiplier float64   `gorm:"not null;default:0"`
	Status            string    `gorm:"not null;size:16;index"`
	WonAmount         int64     `gorm:"not null;default:0"`
	CreatedAt         time.Time `gorm:"not null"`
	CashedOutAt       *time.Time
}

// TableName specifies the table name for CrashBet
func (CrashBet) TableName() string {
	return "crash_bets"
}
