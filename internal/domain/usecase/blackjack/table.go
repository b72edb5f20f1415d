// Package blackjack hosts the interactive table: hands live in memory while
// the player hits and stands, and only the resolved outcome reaches the
// settlement pipeline. A process restart forfeits open hands without touching
// any balance because nothing is debited until resolution.
package blackjack

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
	"github.com/crownplay/casino-engine/internal/domain/usecase/games"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
	"github.com/crownplay/casino-engine/internal/domain/usecase/settlement"
)

// DefaultHandTTL is how long an idle hand stays open before the sweep
// auto-stands it
const DefaultHandTTL = 5 * time.Minute

// HandView is the player-facing snapshot of a hand. The dealer hole card
// stays hidden until the hand resolves.
type HandView struct {
	HandID      string
	Player      []string
	PlayerScore int
	Dealer      []string
	DealerScore int
	State       games.HandState
	Settlement  *settlement.Result
}

type activeHand struct {
	handID    string
	token     string
	accountID string
	bet       int64
	hand      *games.BlackjackHand
	updatedAt time.Time
}

// Table manages the open interactive hands
type Table struct {
	mu    sync.Mutex
	hands map[string]*activeHand

	settler      *settlement.Service
	walletRepo   persistence.WalletRepository
	gate         *session.Gate
	rng          coreport.Rand
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	minBet       int64
	handTTL      time.Duration
}

// NewTable creates the interactive blackjack table
func NewTable(
	settler *settlement.Service,
	walletRepo persistence.WalletRepository,
	gate *session.Gate,
	rng coreport.Rand,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	minBet int64,
	handTTL time.Duration,
) *Table {
	if handTTL <= 0 {
		handTTL = DefaultHandTTL
	}
	return &Table{
		hands:        make(map[string]*activeHand),
		settler:      settler,
		walletRepo:   walletRepo,
		gate:         gate,
		rng:          rng,
		timeProvider: timeProvider,
		logger:       logger,
		minBet:       minBet,
		handTTL:      handTTL,
	}
}

// Deal opens a hand. The stake is checked but not debited; it moves when the
// resolved hand settles.
func (t *Table) Deal(ctx context.Context, identity *entity.Identity, token string, bet int64) (*HandView, error) {
	if err := t.gate.Authorize(ctx, identity); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errs.ErrInvalidToken
	}
	if bet < t.minBet {
		return nil, errs.NewBelowMinimumError(string(entity.GameBlackjack), bet, t.minBet)
	}

	wallet, err := t.walletRepo.GetByAccountID(ctx, identity.AccountID)
	if err != nil {
		return nil, err
	}
	if !wallet.CanCover(bet) {
		return nil, errs.NewInsufficientFundsError(identity.AccountID, bet, wallet.Balance())
	}

	h := &activeHand{
		handID:    uuid.NewString(),
		token:     token,
		accountID: identity.AccountID,
		bet:       bet,
		hand:      games.DealHand(t.rng),
		updatedAt: t.timeProvider.Now(),
	}

	t.mu.Lock()
	t.hands[h.handID] = h
	t.mu.Unlock()

	t.logger.Info("Blackjack hand dealt", map[string]any{
		"hand_id":    h.handID,
		"account_id": identity.AccountID,
		"bet":        bet,
	})

	// A dealt 21 resolves before the player acts
	if h.hand.PlayerScore() == 21 {
		if err := h.hand.Stand(); err != nil {
			return nil, err
		}
		return t.settleHand(ctx, identity, h)
	}
	return t.view(h, nil), nil
}

// Hit draws a card for the player. A bust settles the hand immediately.
func (t *Table) Hit(ctx context.Context, identity *entity.Identity, handID string) (*HandView, error) {
	h, err := t.ownedHand(identity, handID)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	err = h.hand.Hit()
	h.updatedAt = t.timeProvider.Now()
	resolved := h.hand.State == games.StateResolved
	t.mu.Unlock()
	if err != nil {
		return nil, errs.ErrInvalidBet
	}

	if resolved {
		return t.settleHand(ctx, identity, h)
	}
	return t.view(h, nil), nil
}

// Stand ends the player turn, plays the dealer out, and settles
func (t *Table) Stand(ctx context.Context, identity *entity.Identity, handID string) (*HandView, error) {
	h, err := t.ownedHand(identity, handID)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	err = h.hand.Stand()
	h.updatedAt = t.timeProvider.Now()
	t.mu.Unlock()
	if err != nil {
		return nil, errs.ErrInvalidBet
	}

	return t.settleHand(ctx, identity, h)
}

// ExpireStale auto-stands hands idle past the TTL so their stakes settle
// instead of dangling. Run from the scheduler.
func (t *Table) ExpireStale(ctx context.Context) {
	cutoff := t.timeProvider.Now().Add(-t.handTTL)

	t.mu.Lock()
	var stale []*activeHand
	for _, h := range t.hands {
		if h.updatedAt.Before(cutoff) {
			stale = append(stale, h)
		}
	}
	t.mu.Unlock()

	for _, h := range stale {
		t.mu.Lock()
		if h.hand.State == games.StatePlayerTurn {
			_ = h.hand.Stand()
		}
		t.mu.Unlock()

		identity := &entity.Identity{AccountID: h.accountID}
		if _, err := t.settleHand(ctx, identity, h); err != nil {
			t.logger.Error("Failed to settle expired hand", map[string]any{
				"hand_id":    h.handID,
				"account_id": h.accountID,
				"error":      err.Error(),
			})
			t.remove(h.handID)
		}
	}
}

func (t *Table) ownedHand(identity *entity.Identity, handID string) (*activeHand, error) {
	if err := t.gate.RequireSession(identity); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	h, ok := t.hands[handID]
	if !ok || h.accountID != identity.AccountID {
		return nil, errs.ErrSettlementNotFound
	}
	return h, nil
}

func (t *Table) settleHand(ctx context.Context, identity *entity.Identity, h *activeHand) (*HandView, error) {
	req := &settlement.PlaceBetRequest{
		Token:    h.token,
		GameType: entity.GameBlackjack,
		Bet:      h.bet,
	}
	result, err := t.settler.PlaceResolved(ctx, identity, req, h.hand.Outcome)
	if err != nil {
		return nil, err
	}
	t.remove(h.handID)
	return t.view(h, result), nil
}

func (t *Table) remove(handID string) {
	t.mu.Lock()
	delete(t.hands, handID)
	t.mu.Unlock()
}

// view renders the hand, hiding the dealer hole card until resolution
func (t *Table) view(h *activeHand, result *settlement.Result) *HandView {
	v := &HandView{
		HandID:      h.handID,
		PlayerScore: h.hand.PlayerScore(),
		State:       h.hand.State,
		Settlement:  result,
	}
	for _, c := range h.hand.Player {
		v.Player = append(v.Player, c.String())
	}
	if h.hand.State == games.StateResolved {
		for _, c := range h.hand.Dealer {
			v.Dealer = append(v.Dealer, c.String())
		}
		v.DealerScore = h.hand.DealerScore()
	} else if len(h.hand.Dealer) > 0 {
		v.Dealer = []string{h.hand.Dealer[0].String(), "??"}
		v.DealerScore = games.HandScore(h.hand.Dealer[:1])
	}
	return v
}
