package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/usecase/games"
	"github.com/crownplay/casino-engine/internal/domain/usecase/settlement"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/dto"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/middleware"
)

// BetHandler handles single-player wager HTTP requests
type BetHandler struct {
	settlementService *settlement.Service
	logger            coreport.Logger
}

// NewBetHandler creates a new bet handler instance
func NewBetHandler(settlementService *settlement.Service, logger coreport.Logger) *BetHandler {
	return &BetHandler{
		settlementService: settlementService,
		logger:            logger,
	}
}

// PlaceBet handles the POST /bets endpoint
func (h *BetHandler) PlaceBet(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	var req dto.BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// The header wins over the body token; a missing token gets a fresh one,
	// trading idempotent replay for convenience
	token := c.GetHeader("Idempotency-Token")
	if token == "" {
		token = req.Token
	}
	if token == "" {
		token = uuid.NewString()
	}

	result, err := h.settlementService.PlaceBet(c.Request.Context(), identity, &settlement.PlaceBetRequest{
		Token:     token,
		AccountID: identity.AccountID,
		GameType:  entity.GameType(req.GameType),
		Bet:       amount,
		Params:    games.Params(req.Params),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BetResponse{
		Token:         result.Token,
		GameType:      string(result.GameType),
		Result:        string(result.Result),
		BetAmount:     entity.FormatAmount(result.BetAmount),
		WonAmount:     entity.FormatAmount(result.WonAmount),
		ResultBalance: entity.FormatAmount(result.NewBalance),
		Level:         result.Level,
		Detail:        result.Detail,
		Replayed:      result.Replayed,
	})
}
