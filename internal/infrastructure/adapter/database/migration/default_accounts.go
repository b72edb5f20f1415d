package migration

import (
	"context"
	"errors"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
)

// Default accounts seeded into a fresh database. The owner account exists so
// role grants have a root; the demo players carry a starting balance for
// local development.
var defaultAccounts = []struct {
	id      string
	name    string
	role    entity.Role
	balance int64
}{
	{"owner", "owner", entity.RoleOwner, 0},
	{"demo-1", "demo-1", entity.RolePlayer, 100_000_000},
	{"demo-2", "demo-2", entity.RolePlayer, 100_000_000},
}

// CreateDefaultAccounts creates the default accounts and their wallets
func CreateDefaultAccounts(
	ctx context.Context,
	accountRepo persistence.AccountRepository,
	walletRepo persistence.WalletRepository,
	timeProvider coreport.TimeProvider,
) error {
	for _, seed := range defaultAccounts {
		_, err := accountRepo.GetByID(ctx, seed.id)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrAccountNotFound) {
			return err
		}

		account, err := entity.NewAccount(seed.id, seed.name, timeProvider)
		if err != nil {
			return err
		}
		account.Role = seed.role
		if err := accountRepo.Create(ctx, account); err != nil {
			return err
		}

		wallet, err := entity.NewWallet(seed.id, seed.balance, timeProvider)
		if err != nil {
			return err
		}
		if err := walletRepo.Create(ctx, wallet); err != nil {
			return err
		}
	}

	return nil
}
