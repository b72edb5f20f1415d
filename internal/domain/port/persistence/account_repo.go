package persistence

import (
	"context"

	"github.com/crownplay/casino-engine/internal/domain/entity"
)

// AccountRepository defines essential methods to interact with account data
type AccountRepository interface {
	// GetByID retrieves an account by ID
	//
	// Possible errors:
	// - ErrAccountNotFound: if no account has this ID
	GetByID(ctx context.Context, id string) (*entity.Account, error)

	// GetByUsername retrieves an account by display name
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Create creates a new account at signup
	Create(ctx context.Context, account *entity.Account) error

	// UpdateRole changes the account's privilege tier. Only reachable through
	// the owner-gated admin path.
	UpdateRole(ctx context.Context, id string, role entity.Role) error
}

// BanRepository stores permanent ban records
type BanRepository interface {
	// GetByAccountID returns the ban for an account, or nil when none exists
	GetByAccountID(ctx context.Context, accountID string) (*entity.BanRecord, error)

	// Create inserts a ban record
	Create(ctx context.Context, ban *entity.BanRecord) error
}
