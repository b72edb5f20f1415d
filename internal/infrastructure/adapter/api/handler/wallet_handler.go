package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/usecase/reward"
	"github.com/crownplay/casino-engine/internal/domain/usecase/wallet"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/dto"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/middleware"
)

// WalletHandler handles wallet read and reward HTTP requests
type WalletHandler struct {
	walletService *wallet.Service
	rewardService *reward.Service
	logger        coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(
	walletService *wallet.Service,
	rewardService *reward.Service,
	logger coreport.Logger,
) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		rewardService: rewardService,
		logger:        logger,
	}
}

// GetWallet handles the GET /me/wallet endpoint
func (h *WalletHandler) GetWallet(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	snapshot, err := h.walletService.Get(c.Request.Context(), identity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.WalletResponse{
		AccountID:       snapshot.AccountID,
		Balance:         snapshot.BalanceDisplay,
		TotalWagered:    snapshot.WageredDisplay,
		TotalGames:      snapshot.TotalGames,
		Level:           snapshot.Level,
		NextLevelAt:     entity.FormatAmount(snapshot.NextLevelAt),
		RewardClaimable: snapshot.RewardClaimable,
		DailyReward:     entity.FormatAmount(snapshot.DailyReward),
	})
}

// GetHistory handles the GET /me/history endpoint
func (h *WalletHandler) GetHistory(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	settlements, err := h.walletService.History(c.Request.Context(), identity, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	entries := make([]dto.HistoryEntry, 0, len(settlements))
	for _, s := range settlements {
		entries = append(entries, dto.HistoryEntry{
			Token:         s.Token,
			GameType:      string(s.GameType),
			Result:        string(s.Result),
			BetAmount:     entity.FormatAmount(s.BetAmount),
			WonAmount:     entity.FormatAmount(s.WonAmount),
			ResultBalance: entity.FormatAmount(s.ResultBalance),
			CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, entries)
}

// GetLeaderboard handles the GET /leaderboard endpoint
func (h *WalletHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	ranked, err := h.walletService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	entries := make([]dto.LeaderboardEntry, 0, len(ranked))
	for _, e := range ranked {
		entries = append(entries, dto.LeaderboardEntry{
			Rank:         e.Rank,
			AccountID:    e.AccountID,
			TotalWagered: e.WageredDisplay,
			Level:        e.Level,
		})
	}

	c.JSON(http.StatusOK, entries)
}

// ClaimReward handles the POST /rewards/claim endpoint
func (h *WalletHandler) ClaimReward(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	result, err := h.rewardService.Claim(c.Request.Context(), identity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.RewardClaimResponse{
		Level:         result.Level,
		Amount:        entity.FormatAmount(result.Amount),
		ResultBalance: entity.FormatAmount(result.NewBalance),
	})
}
