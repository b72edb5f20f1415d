package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	adminUseCase "github.com/crownplay/casino-engine/internal/domain/usecase/admin"
	blackjackUseCase "github.com/crownplay/casino-engine/internal/domain/usecase/blackjack"
	chatUseCase "github.com/crownplay/casino-engine/internal/domain/usecase/chat"
	"github.com/crownplay/casino-engine/internal/domain/usecase/games"
	"github.com/crownplay/casino-engine/internal/domain/usecase/multiplayer"
	rewardUseCase "github.com/crownplay/casino-engine/internal/domain/usecase/reward"
	"github.com/crownplay/casino-engine/internal/domain/usecase/session"
	settlementUseCase "github.com/crownplay/casino-engine/internal/domain/usecase/settlement"
	walletUseCase "github.com/crownplay/casino-engine/internal/domain/usecase/wallet"

	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/handler"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/routes"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/auth"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/database"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/database/migration"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/feed"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/logger"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/random"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/repository"
	timeProvider "github.com/crownplay/casino-engine/internal/infrastructure/adapter/time"
	"github.com/crownplay/casino-engine/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == "production")

	// Setup database configuration
	dbConfig := database.CreateConfigFromViperConfig(cfg)

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.MigrationManager().MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	walletRepo := repository.NewWalletRepository(dbManager.DB(), tp, appLogger)
	settlementRepo := repository.NewSettlementRepository(dbManager.DB(), appLogger)
	accountRepo := repository.NewAccountRepository(dbManager.DB(), appLogger)
	banRepo := repository.NewBanRepository(dbManager.DB(), appLogger)
	chatRepo := repository.NewChatRepository(dbManager.DB(), appLogger)
	jackpotRepo := repository.NewJackpotRepository(dbManager.DB(), appLogger)
	crashRepo := repository.NewCrashRepository(dbManager.DB(), appLogger)

	// Unit of work (transaction manager)
	uow := dbManager.CreateUnitOfWork()

	// Seed the default accounts
	if err := migration.CreateDefaultAccounts(context.Background(), accountRepo, walletRepo, tp); err != nil {
		appLogger.Error("Failed to create default accounts", map[string]any{
			"error": err.Error(),
		})
	}

	// Redis-backed wallet change feed
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	walletFeed := feed.NewRedisFeed(redisClient, cfg.Redis.Channel, appLogger)
	defer walletFeed.Close()

	// Randomness source and session gate
	rng := random.NewSource()
	gate := session.NewGate(banRepo, appLogger)

	// Outcome generators
	registry := games.NewRegistry(
		games.NewCoinflip(),
		games.NewBlackjack(),
		games.NewSlots(),
		games.NewUpgrader(),
	)
	validator := settlementUseCase.NewBetValidator(map[entity.GameType]int64{
		entity.GameCoinflip:  cfg.Settlement.MinBet,
		entity.GameBlackjack: cfg.Settlement.MinBet,
		entity.GameSlots:     cfg.Settlement.MinBet,
		entity.GameUpgrader:  cfg.Settlement.MinBet,
	})

	// Initialize use cases
	settlementService := settlementUseCase.NewService(
		uow, walletRepo, settlementRepo, walletFeed, gate,
		registry, validator, rng, tp, appLogger,
		cfg.Settlement.MaxRetries,
	)
	walletService := walletUseCase.NewService(walletRepo, settlementRepo, gate, tp, appLogger)
	rewardService := rewardUseCase.NewService(uow, walletRepo, walletFeed, gate, tp, appLogger)
	chatService := chatUseCase.NewService(uow, walletRepo, chatRepo, walletFeed, gate, tp, appLogger)
	adminService := adminUseCase.NewService(accountRepo, walletRepo, banRepo, walletFeed, gate, tp, appLogger)
	jackpotService := multiplayer.NewJackpotService(
		uow, walletRepo, jackpotRepo, walletFeed, gate, rng, tp, appLogger,
		cfg.Settlement.MinBet, cfg.Games.JackpotCountdown, cfg.Games.JackpotWaitingTTL,
	)
	crashService := multiplayer.NewCrashService(
		uow, walletRepo, crashRepo, walletFeed, gate, rng, tp, appLogger,
		cfg.Settlement.MinBet, cfg.Games.CrashHouseEdge,
	)
	blackjackTable := blackjackUseCase.NewTable(
		settlementService, walletRepo, gate, rng, tp, appLogger,
		cfg.Settlement.MinBet, cfg.Games.BlackjackHandTTL,
	)

	// Session tokens
	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer, tp)

	// Background sweeps: jackpot countdowns, crashed rounds, stale hands
	sweeper := cron.New()
	sweepSpec := fmt.Sprintf("@every %s", cfg.Games.SweepInterval)
	if _, err := sweeper.AddFunc(sweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Games.SweepInterval)
		defer cancel()
		if err := jackpotService.SettleDue(ctx); err != nil {
			appLogger.Error("Jackpot settle sweep failed", map[string]any{"error": err.Error()})
		}
		if err := crashService.CompleteCrashed(ctx); err != nil {
			appLogger.Error("Crash completion sweep failed", map[string]any{"error": err.Error()})
		}
	}); err != nil {
		log.Fatalf("Failed to schedule game sweep: %v", err)
	}
	if _, err := sweeper.AddFunc("@every 1m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := jackpotService.VoidStale(ctx); err != nil {
			appLogger.Error("Jackpot void sweep failed", map[string]any{"error": err.Error()})
		}
		blackjackTable.ExpireStale(ctx)
	}); err != nil {
		log.Fatalf("Failed to schedule maintenance sweep: %v", err)
	}
	sweeper.Start()

	// Initialize API handlers
	handlers := routes.Handlers{
		Bet:         handler.NewBetHandler(settlementService, appLogger),
		Wallet:      handler.NewWalletHandler(walletService, rewardService, appLogger),
		Chat:        handler.NewChatHandler(chatService, appLogger),
		Multiplayer: handler.NewMultiplayerHandler(jackpotService, crashService, appLogger),
		Blackjack:   handler.NewBlackjackHandler(blackjackTable, appLogger),
		Admin:       handler.NewAdminHandler(adminService, appLogger),
	}

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, tokenService, handlers)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop the sweeps and wait for in-flight runs
	sweepCtx := sweeper.Stop()
	<-sweepCtx.Done()

	// Drain the per-account settlement queues
	appLogger.Info("Shutting down settlement queues...", nil)
	settlementService.Shutdown()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	if cfg.Database.Host == "" {
		if cfg.Environment == config.Production && os.Getenv("CE_DB_HOST") == "" {
			missingConfigs = append(missingConfigs, "database.host (or CE_DB_HOST environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.host")
		}
	}

	if cfg.Database.Port == "" {
		if cfg.Environment == config.Production && os.Getenv("CE_DB_PORT") == "" {
			missingConfigs = append(missingConfigs, "database.port (or CE_DB_PORT environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.port")
		}
	}

	if cfg.Database.Username == "" {
		if cfg.Environment == config.Production && os.Getenv("CE_DB_USERNAME") == "" {
			missingConfigs = append(missingConfigs, "database.username (or CE_DB_USERNAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.username")
		}
	}

	if cfg.Database.Password == "" {
		if cfg.Environment == config.Production && os.Getenv("CE_DB_PASSWORD") == "" {
			missingConfigs = append(missingConfigs, "database.password (or CE_DB_PASSWORD environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.password")
		}
	}

	if cfg.Database.Database == "" {
		if cfg.Environment == config.Production && os.Getenv("CE_DB_NAME") == "" {
			missingConfigs = append(missingConfigs, "database.database (or CE_DB_NAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.database")
		}
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate auth configuration
	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (or CE_AUTH_JWT_SECRET environment variable)")
	}

	if cfg.Auth.TokenTTL == 0 {
		missingConfigs = append(missingConfigs, "auth.tokenTTL")
	}

	// Validate settlement configuration
	if cfg.Settlement.MaxRetries == 0 {
		missingConfigs = append(missingConfigs, "settlement.maxRetries")
	}

	if cfg.Settlement.MinBet == 0 {
		missingConfigs = append(missingConfigs, "settlement.minBet")
	}

	if cfg.Games.SweepInterval == 0 {
		missingConfigs = append(missingConfigs, "games.sweepInterval")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		// Check database security settings
		if strings.ToLower(cfg.Database.SSLMode) != "require" && strings.ToLower(cfg.Database.SSLMode) != "verify-ca" && strings.ToLower(cfg.Database.SSLMode) != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}

		// Check timeout settings
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
