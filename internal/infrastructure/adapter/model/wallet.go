package model

import (
	"time"
)

// Wallet represents the database model for wallets. Balance and TotalWagered
// are whole credits; the compare-and-swap settlement write targets Balance.
type Wallet struct {
	AccountID       string    `gorm:"primaryKey;size:64"`
	Balance         int64     `gorm:"not null"`
	TotalWagered    int64     `gorm:"not null;default:0;index:idx_wallets_total_wagered,sort:desc"`
	TotalGames      uint64    `gorm:"not null;default:0"`
	Level           int       `gorm:"not null;default:0"`
	LastRewardClaim *time.Time
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`

	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName specifies the table name for Wallet
func (Wallet) TableName() string {
	return "wallets"
}
