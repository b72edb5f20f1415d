// Package session resolves and checks the calling identity before any
// settlement or chat send. Identity is always passed explicitly; nothing here
// reads ambient global state.
package session

import (
	"context"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
)

// Gate blocks unauthenticated or banned callers
type Gate struct {
	banRepo persistence.BanRepository
	logger  coreport.Logger
}

// NewGate creates a session gate
func NewGate(banRepo persistence.BanRepository, logger coreport.Logger) *Gate {
	return &Gate{banRepo: banRepo, logger: logger}
}

// RequireSession fails with ErrUnauthenticated when no identity is present
func (g *Gate) RequireSession(identity *entity.Identity) error {
	if identity == nil || identity.AccountID == "" {
		return errs.ErrUnauthenticated
	}
	return nil
}

// RequireNotBanned fails with a BannedError when the account carries a ban
// record. Bans block wagering and chat uniformly.
func (g *Gate) RequireNotBanned(ctx context.Context, identity *entity.Identity) error {
	ban, err := g.banRepo.GetByAccountID(ctx, identity.AccountID)
	if err != nil {
		g.logger.Error("Failed to read ban status", map[string]any{
			"account_id": identity.AccountID,
			"error":      err.Error(),
		})
		return err
	}
	if ban != nil {
		g.logger.Warn("Banned account blocked", map[string]any{
			"account_id": identity.AccountID,
			"banned_by":  ban.BannedBy,
			"reason":     ban.Reason,
		})
		return errs.NewBannedError(identity.AccountID, ban.Reason)
	}
	return nil
}

// Authorize runs both checks; this is the path every wager and chat send
// passes through
func (g *Gate) Authorize(ctx context.Context, identity *entity.Identity) error {
	if err := g.RequireSession(identity); err != nil {
		return err
	}
	return g.RequireNotBanned(ctx, identity)
}

// RequireRole fails with ErrForbidden when the caller's role does not cover
// the required one
func (g *Gate) RequireRole(identity *entity.Identity, required entity.Role) error {
	if err := g.RequireSession(identity); err != nil {
		return err
	}
	if !identity.Role.Covers(required) {
		return errs.ErrForbidden
	}
	return nil
}
