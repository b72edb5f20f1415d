package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/usecase/multiplayer"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/dto"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/middleware"
)

// MultiplayerHandler handles jackpot and crash HTTP requests
type MultiplayerHandler struct {
	jackpotService *multiplayer.JackpotService
	crashService   *multiplayer.CrashService
	logger         coreport.Logger
}

// NewMultiplayerHandler creates a new multiplayer handler instance
func NewMultiplayerHandler(
	jackpotService *multiplayer.JackpotService,
	crashService *multiplayer.CrashService,
	logger coreport.Logger,
) *MultiplayerHandler {
	return &MultiplayerHandler{
		jackpotService: jackpotService,
		crashService:   crashService,
		logger:         logger,
	}
}

// CreateJackpot handles the POST /jackpot endpoint
func (h *MultiplayerHandler) CreateJackpot(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}

	game, err := h.jackpotService.Create(c.Request.Context(), identity, amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJackpotResponse(game))
}

// JoinJackpot handles the POST /jackpot/join endpoint
func (h *MultiplayerHandler) JoinJackpot(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}

	game, err := h.jackpotService.Join(c.Request.Context(), identity, amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toJackpotResponse(game))
}

// PlaceCrashBet handles the POST /crash/bets endpoint
func (h *MultiplayerHandler) PlaceCrashBet(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	amount, ok := h.bindAmount(c)
	if !ok {
		return
	}

	result, err := h.crashService.PlaceBet(c.Request.Context(), identity, amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CrashBetResponse{
		RoundID:       result.RoundID,
		BetID:         result.BetID,
		Amount:        entity.FormatAmount(result.Amount),
		Multiplier:    result.Multiplier,
		ResultBalance: entity.FormatAmount(result.NewBalance),
	})
}

// CashoutCrash handles the POST /crash/cashout endpoint
func (h *MultiplayerHandler) CashoutCrash(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	result, err := h.crashService.Cashout(c.Request.Context(), identity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CrashCashoutResponse{
		RoundID:       result.RoundID,
		Multiplier:    result.Multiplier,
		WonAmount:     entity.FormatAmount(result.WonAmount),
		ResultBalance: entity.FormatAmount(result.NewBalance),
	})
}

// bindAmount parses the shared one-field amount request body
func (h *MultiplayerHandler) bindAmount(c *gin.Context) (int64, bool) {
	var req dto.JackpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return 0, false
	}
	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return 0, false
	}
	return amount, true
}

func toJackpotResponse(game *entity.JackpotGame) dto.JackpotResponse {
	resp := dto.JackpotResponse{
		GameID:     game.ID,
		CreatorID:  game.CreatorID,
		CreatorBet: entity.FormatAmount(game.CreatorBet),
		Pot:        entity.FormatAmount(game.Pot()),
		Status:     string(game.Status),
	}
	if game.JoinerID != "" {
		resp.JoinerID = game.JoinerID
		resp.JoinerBet = entity.FormatAmount(game.JoinerBet)
	}
	if game.CountdownEnd != nil {
		resp.CountdownEnd = game.CountdownEnd.Format(time.RFC3339)
	}
	return resp
}
