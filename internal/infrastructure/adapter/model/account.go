package model

import (
	"time"
)

// Account represents the database model for accounts
type Account struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Username  string    `gorm:"uniqueIndex;not null;size:64"`
	Role      string    `gorm:"not null;size:16;default:player"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// BanRecord represents the database model for permanent bans
type BanRecord struct {
	AccountID string    `gorm:"primaryKey;size:64"`
	BannedBy  string    `gorm:"not null;size:64"`
	Reason    string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for BanRecord
func (BanRecord) TableName() string {
	return "ban_records"
}
