package dto

// BlackjackDealRequest represents the API request for starting a hand
type BlackjackDealRequest struct {
	Token  string `json:"token"`
	Amount string `json:"amount" binding:"required"`
}

// BlackjackHandResponse represents the player-facing view of a hand. The
// dealer hole card is masked until the hand resolves.
type BlackjackHandResponse struct {
	HandID        string   `json:"handId"`
	Player        []string `json:"player"`
	PlayerScore   int      `json:"playerScore"`
	Dealer        []string `json:"dealer"`
	DealerScore   int      `json:"dealerScore"`
	State         string   `json:"state"`
	Result        string   `json:"result,omitempty"`
	WonAmount     string   `json:"wonAmount,omitempty"`
	ResultBalance string   `json:"resultBalance,omitempty"`
}
