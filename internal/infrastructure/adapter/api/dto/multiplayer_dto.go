package dto

// JackpotRequest represents the API request for creating or joining a
// jackpot game
type JackpotRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// JackpotResponse represents the state of one jackpot game
type JackpotResponse struct {
	GameID       string `json:"gameId"`
	CreatorID    string `json:"creatorId"`
	CreatorBet   string `json:"creatorBet"`
	JoinerID     string `json:"joinerId,omitempty"`
	JoinerBet    string `json:"joinerBet,omitempty"`
	Pot          string `json:"pot"`
	Status       string `json:"status"`
	CountdownEnd string `json:"countdownEnd,omitempty"`
}

// CrashBetRequest represents the API request for betting into the open
// crash round
type CrashBetRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// CrashBetResponse represents a placed crash bet
type CrashBetResponse struct {
	RoundID       string  `json:"roundId"`
	BetID         string  `json:"betId"`
	Amount        string  `json:"amount"`
	Multiplier    float64 `json:"multiplier"`
	ResultBalance string  `json:"resultBalance"`
}

// CrashCashoutResponse represents a successful cashout
type CrashCashoutResponse struct {
	RoundID       string  `json:"roundId"`
	Multiplier    float64 `json:"multiplier"`
	WonAmount     string  `json:"wonAmount"`
	ResultBalance string  `json:"resultBalance"`
}
