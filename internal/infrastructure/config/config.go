package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    DatabaseConfig   `mapstructure:"database"`
	Redis       RedisConfig      `mapstructure:"redis"`
	Auth        AuthConfig       `mapstructure:"auth"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Settlement  SettlementConfig `mapstructure:"settlement"`
	Games       GamesConfig      `mapstructure:"games"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// RedisConfig contains the wallet feed connection settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// AuthConfig contains session token settings
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwtSecret"`
	TokenTTL  time.Duration `mapstructure:"tokenTTL"` // hours
	Issuer    string        `mapstructure:"issuer"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// SettlementConfig contains wager settlement settings
type SettlementConfig struct {
	MaxRetries     int   `mapstructure:"maxRetries"`
	MinBet         int64 `mapstructure:"minBet"`
	StartingCredit int64 `mapstructure:"startingCredit"`
}

// GamesConfig contains per-game tuning
type GamesConfig struct {
	CrashHouseEdge          float64       `mapstructure:"crashHouseEdge"`
	JackpotCountdown        time.Duration `mapstructure:"jackpotCountdown"`        // seconds
	JackpotWaitingTTL       time.Duration `mapstructure:"jackpotWaitingTTL"`       // minutes
	BlackjackHandTTL        time.Duration `mapstructure:"blackjackHandTTL"`        // minutes
	SweepInterval           time.Duration `mapstructure:"sweepInterval"`           // seconds
	LeaderboardRefreshLimit int           `mapstructure:"leaderboardRefreshLimit"`
}
