package dto

// WalletResponse represents the API response for a wallet snapshot
type WalletResponse struct {
	AccountID       string `json:"accountId"`
	Balance         string `json:"balance"`
	TotalWagered    string `json:"totalWagered"`
	TotalGames      uint64 `json:"totalGames"`
	Level           int    `json:"level"`
	NextLevelAt     string `json:"nextLevelAt"`
	RewardClaimable bool   `json:"rewardClaimable"`
	DailyReward     string `json:"dailyReward"`
}

// HistoryEntry represents one settled wager in the caller's history
type HistoryEntry struct {
	Token         string `json:"token"`
	GameType      string `json:"gameType"`
	Result        string `json:"result"`
	BetAmount     string `json:"betAmount"`
	WonAmount     string `json:"wonAmount"`
	ResultBalance string `json:"resultBalance"`
	CreatedAt     string `json:"createdAt"`
}

// LeaderboardEntry represents one ranked wallet
type LeaderboardEntry struct {
	Rank         int    `json:"rank"`
	AccountID    string `json:"accountId"`
	TotalWagered string `json:"totalWagered"`
	Level        int    `json:"level"`
}

// RewardClaimResponse represents the API response for a daily reward claim
type RewardClaimResponse struct {
	Level         int    `json:"level"`
	Amount        string `json:"amount"`
	ResultBalance string `json:"resultBalance"`
}
