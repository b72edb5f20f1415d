package entity

import (
	"time"

	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Role is the privilege tier of an account. Containment order:
// owner covers admin, admin covers player.
type Role string

// Roles
const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

// rank orders roles for containment checks
func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 2
	case RoleAdmin:
		return 1
	default:
		return 0
	}
}

// Covers reports whether this role includes the permissions of the other
func (r Role) Covers(other Role) bool {
	return r.rank() >= other.rank()
}

// IsValidRole validates a role string
func IsValidRole(role string) bool {
	return role == string(RolePlayer) || role == string(RoleAdmin) || role == string(RoleOwner)
}

// Account is an authenticated identity. Created at signup, mutated only by
// privileged role grants or ban inserts, never deleted in the normal flow.
type Account struct {
	ID        string
	Username  string
	Role      Role
	CreatedAt time.Time
}

// NewAccount creates an account with the player role
func NewAccount(id, username string, timeProvider coreport.TimeProvider) (*Account, error) {
	if id == "" {
		return nil, errs.ErrAccountNotFound
	}
	return &Account{
		ID:        id,
		Username:  username,
		Role:      RolePlayer,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// Identity is the resolved caller of a request. Settlement code receives it
// explicitly; there is no ambient current-user state.
type Identity struct {
	AccountID string
	Username  string
	Role      Role
}

// BanRecord permanently blocks an account from wagering and chat
type BanRecord struct {
	AccountID string
	BannedBy  string
	Reason    string
	CreatedAt time.Time
}
