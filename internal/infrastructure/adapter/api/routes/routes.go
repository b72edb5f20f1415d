package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/handler"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/middleware"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/auth"
)

// Handlers bundles the route targets
type Handlers struct {
	Bet         *handler.BetHandler
	Wallet      *handler.WalletHandler
	Chat        *handler.ChatHandler
	Multiplayer *handler.MultiplayerHandler
	Blackjack   *handler.BlackjackHandler
	Admin       *handler.AdminHandler
}

// SetupRoutes configures all the routes for the API. The leaderboard and the
// chat backlog are public; everything else requires a session token.
func SetupRoutes(router *gin.Engine, tokens *auth.TokenService, h Handlers) {
	router.GET("/leaderboard", h.Wallet.GetLeaderboard)
	router.GET("/chat/messages", h.Chat.GetMessages)

	authed := router.Group("/", middleware.Auth(tokens))
	{
		authed.POST("/bets", h.Bet.PlaceBet)

		authed.GET("/me/wallet", h.Wallet.GetWallet)
		authed.GET("/me/history", h.Wallet.GetHistory)
		authed.POST("/rewards/claim", h.Wallet.ClaimReward)

		authed.POST("/chat/messages", h.Chat.SendMessage)

		authed.POST("/jackpot", h.Multiplayer.CreateJackpot)
		authed.POST("/jackpot/join", h.Multiplayer.JoinJackpot)
		authed.POST("/crash/bets", h.Multiplayer.PlaceCrashBet)
		authed.POST("/crash/cashout", h.Multiplayer.CashoutCrash)

		authed.POST("/blackjack", h.Blackjack.Deal)
		authed.POST("/blackjack/:id/hit", h.Blackjack.Hit)
		authed.POST("/blackjack/:id/stand", h.Blackjack.Stand)

		// Role checks happen in the admin service so the audit log records
		// rejected attempts
		authed.POST("/admin/balance", h.Admin.SetBalance)
		authed.POST("/admin/level", h.Admin.SetLevel)
		authed.POST("/admin/role", h.Admin.GrantRole)
		authed.POST("/admin/ban", h.Admin.Ban)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
