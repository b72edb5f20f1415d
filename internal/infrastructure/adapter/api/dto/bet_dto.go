package dto

// BetRequest represents the API request for placing a wager. Amount accepts
// the abbreviated credit format ("2.5K", "1M") or plain integers. Token is
// the client idempotency key; the Idempotency-Token header takes precedence.
type BetRequest struct {
	Token    string         `json:"token"`
	GameType string         `json:"gameType" binding:"required,oneof=coinflip blackjack slots upgrader"`
	Amount   string         `json:"amount" binding:"required"`
	Params   map[string]any `json:"params"`
}

// BetResponse represents the API response for a settled wager
type BetResponse struct {
	Token         string         `json:"token"`
	GameType      string         `json:"gameType"`
	Result        string         `json:"result"`
	BetAmount     string         `json:"betAmount"`
	WonAmount     string         `json:"wonAmount"`
	ResultBalance string         `json:"resultBalance"`
	Level         int            `json:"level"`
	Detail        map[string]any `json:"detail,omitempty"`
	Replayed      bool           `json:"replayed,omitempty"`
}
