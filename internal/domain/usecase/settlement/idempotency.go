package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	errs "github.com/crownplay/casino-engine/internal/domain/error"
	"github.com/crownplay/casino-engine/internal/domain/port/persistence"
)

// IdempotencyHandler detects replayed settlement tokens. A duplicate
// submission of the same settlement must never double-debit: the stored
// settlement is returned instead.
type IdempotencyHandler struct {
	settlementRepo persistence.SettlementRepository
}

// NewIdempotencyHandler creates an IdempotencyHandler
func NewIdempotencyHandler(settlementRepo persistence.SettlementRepository) *IdempotencyHandler {
	return &IdempotencyHandler{settlementRepo: settlementRepo}
}

// Check looks for an existing settlement with the given token. Returns the
// settlement, whether it was found, and any error.
func (h *IdempotencyHandler) Check(ctx context.Context, token string) (*entity.Settlement, bool, error) {
	exists, err := h.settlementRepo.TokenExists(ctx, token)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check settlement token: %w", err)
	}
	if !exists {
		return nil, false, nil
	}

	stored, err := h.settlementRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, errs.ErrSettlementNotFound) {
			// Existed at the check but gone on retrieval; treat as absent
			return nil, false, nil
		}
		return nil, true, fmt.Errorf("failed to retrieve existing settlement: %w", err)
	}
	return stored, true, nil
}
