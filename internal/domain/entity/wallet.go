package entity

import (
	"time"

	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
)

// Wallet holds an account's credit balance and lifetime wagering statistics.
// Invariants at every committed state:
//   - balance >= 0
//   - totalWagered and TotalGames never decrease
//   - Level == LevelFor(totalWagered)
type Wallet struct {
	AccountID       string
	balance         int64
	totalWagered    int64
	TotalGames      uint64
	Level           int
	LastRewardClaim *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewWallet creates a wallet with the given starting balance
func NewWallet(accountID string, initialBalance int64, timeProvider coreport.TimeProvider) (*Wallet, error) {
	if accountID == "" {
		return nil, errs.ErrAccountNotFound
	}
	if initialBalance < 0 {
		return nil, errs.ErrInvalidBet
	}
	now := timeProvider.Now()
	return &Wallet{
		AccountID: accountID,
		balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Balance returns the current balance in credits
func (w *Wallet) Balance() int64 {
	return w.balance
}

// TotalWagered returns the lifetime wagered total
func (w *Wallet) TotalWagered() int64 {
	return w.totalWagered
}

// Restore sets the mutable fields directly; used by repositories when
// rehydrating from storage
func (w *Wallet) Restore(balance, totalWagered int64, totalGames uint64, level int, lastClaim *time.Time) {
	w.balance = balance
	w.totalWagered = totalWagered
	w.TotalGames = totalGames
	w.Level = level
	w.LastRewardClaim = lastClaim
}

// CanCover reports whether the balance covers a debit of the given amount
func (w *Wallet) CanCover(amount int64) bool {
	return w.balance >= amount
}

// ApplySettlement applies one resolved wager: the bet is debited, any winnings
// credited, aggregates advance, and the level is recomputed from the new
// lifetime total. Fails with no mutation if the balance cannot cover the bet.
func (w *Wallet) ApplySettlement(bet, wonAmount int64, timeProvider coreport.TimeProvider) error {
	if bet <= 0 {
		return errs.ErrInvalidBet
	}
	if w.balance < bet {
		return errs.NewInsufficientFundsError(w.AccountID, bet, w.balance)
	}

	w.balance = w.balance - bet + wonAmount
	w.totalWagered += bet
	w.TotalGames++
	w.Level = LevelFor(w.totalWagered)
	w.UpdatedAt = timeProvider.Now()
	return nil
}

// Credit adds to the balance without touching wager aggregates. Used for
// reward grants, tip receipts, and multiplayer pot payouts.
func (w *Wallet) Credit(amount int64, timeProvider coreport.TimeProvider) error {
	if amount < 0 {
		return errs.ErrInvalidBet
	}
	w.balance += amount
	w.UpdatedAt = timeProvider.Now()
	return nil
}

// Debit removes from the balance without touching wager aggregates. Used for
// tips and multiplayer entry stakes where the wager is settled separately.
func (w *Wallet) Debit(amount int64, timeProvider coreport.TimeProvider) error {
	if amount <= 0 {
		return errs.ErrInvalidBet
	}
	if w.balance < amount {
		return errs.NewInsufficientFundsError(w.AccountID, amount, w.balance)
	}
	w.balance -= amount
	w.UpdatedAt = timeProvider.Now()
	return nil
}

// RecordWager advances the wager aggregates without moving the balance. Used
// by multiplayer flows where the stake was already debited on entry.
func (w *Wallet) RecordWager(bet int64, timeProvider coreport.TimeProvider) error {
	if bet <= 0 {
		return errs.ErrInvalidBet
	}
	w.totalWagered += bet
	w.TotalGames++
	w.Level = LevelFor(w.totalWagered)
	w.UpdatedAt = timeProvider.Now()
	return nil
}

// MarkRewardClaimed stamps the last reward claim time
func (w *Wallet) MarkRewardClaimed(timeProvider coreport.TimeProvider) {
	now := timeProvider.Now()
	w.LastRewardClaim = &now
	w.UpdatedAt = now
}

// OverrideBalance sets the balance directly. Admin-only escape hatch; normal
// settlement never calls this.
func (w *Wallet) OverrideBalance(balance int64, timeProvider coreport.TimeProvider) error {
	if balance < 0 {
		return errs.ErrInvalidBet
	}
	w.balance = balance
	w.UpdatedAt = timeProvider.Now()
	return nil
}

// OverrideLevel sets the level directly. Admin-only; settlement recomputes the
// level on the next wager.
func (w *Wallet) OverrideLevel(level int, timeProvider coreport.TimeProvider) {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	w.Level = level
	w.UpdatedAt = timeProvider.Now()
}
