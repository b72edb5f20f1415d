package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/usecase/blackjack"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/dto"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/middleware"
)

// BlackjackHandler handles interactive blackjack HTTP requests
type BlackjackHandler struct {
	table  *blackjack.Table
	logger coreport.Logger
}

// NewBlackjackHandler creates a new blackjack handler instance
func NewBlackjackHandler(table *blackjack.Table, logger coreport.Logger) *BlackjackHandler {
	return &BlackjackHandler{
		table:  table,
		logger: logger,
	}
}

// Deal handles the POST /blackjack endpoint
func (h *BlackjackHandler) Deal(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	var req dto.BlackjackDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	token := c.GetHeader("Idempotency-Token")
	if token == "" {
		token = req.Token
	}
	if token == "" {
		token = uuid.NewString()
	}

	view, err := h.table.Deal(c.Request.Context(), identity, token, amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toHandResponse(view))
}

// Hit handles the POST /blackjack/:id/hit endpoint
func (h *BlackjackHandler) Hit(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	view, err := h.table.Hit(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toHandResponse(view))
}

// Stand handles the POST /blackjack/:id/stand endpoint
func (h *BlackjackHandler) Stand(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	view, err := h.table.Stand(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toHandResponse(view))
}

func toHandResponse(view *blackjack.HandView) dto.BlackjackHandResponse {
	resp := dto.BlackjackHandResponse{
		HandID:      view.HandID,
		Player:      view.Player,
		PlayerScore: view.PlayerScore,
		Dealer:      view.Dealer,
		DealerScore: view.DealerScore,
		State:       string(view.State),
	}
	if view.Settlement != nil {
		resp.Result = string(view.Settlement.Result)
		resp.WonAmount = entity.FormatAmount(view.Settlement.WonAmount)
		resp.ResultBalance = entity.FormatAmount(view.Settlement.NewBalance)
	}
	return resp
}
