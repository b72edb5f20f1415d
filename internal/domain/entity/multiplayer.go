package entity

import "time"

// GameStatus is the lifecycle state of a shared multiplayer row
type GameStatus string

// Game statuses
const (
	StatusWaiting   GameStatus = "waiting"
	StatusPlaying   GameStatus = "playing"
	StatusRunning   GameStatus = "running"
	StatusCompleted GameStatus = "completed"
)

// JackpotGame is a two-player pot. Concurrent joiners race to claim a waiting
// row; the claim is a conditional update so at most one wins.
type JackpotGame struct {
	ID           string
	CreatorID    string
	CreatorBet   int64
	JoinerID     string
	JoinerBet    int64
	WinnerID     string
	Status       GameStatus
	CreatedAt    time.Time
	JoinedAt     *time.Time
	CountdownEnd *time.Time
	CompletedAt  *time.Time
}

// Pot returns the total credits at stake
func (g *JackpotGame) Pot() int64 {
	return g.CreatorBet + g.JoinerBet
}

// CrashRound is one rocket run. The crash point is drawn when the round is
// created and never revealed until the round completes.
type CrashRound struct {
	ID          string
	Status      GameStatus
	CrashPoint  float64
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// MultiplierAt returns the displayed multiplier at the given instant; the
// curve grows linearly at 0.1x per second from launch.
func (r *CrashRound) MultiplierAt(now time.Time) float64 {
	if r.StartedAt == nil {
		return 1.0
	}
	elapsed := now.Sub(*r.StartedAt).Seconds()
	if elapsed < 0 {
		return 1.0
	}
	return 1.0 + elapsed*0.1
}

// Crashed reports whether the live multiplier has passed the crash point
func (r *CrashRound) Crashed(now time.Time) bool {
	return r.MultiplierAt(now) >= r.CrashPoint
}

// CrashBetStatus is the lifecycle state of a single crash wager
type CrashBetStatus string

// Crash bet statuses
const (
	CrashBetActive CrashBetStatus = "active"
	CrashBetWon    CrashBetStatus = "won"
	CrashBetLost   CrashBetStatus = "lost"
)

// CrashBet is one wager against a crash round
type CrashBet struct {
	ID                string
	RoundID           string
	AccountID         string
	Amount            int64
	CashoutMultiplier float64
	Status            CrashBetStatus
	WonAmount         int64
	CreatedAt         time.Time
	CashedOutAt       *time.Time
}
