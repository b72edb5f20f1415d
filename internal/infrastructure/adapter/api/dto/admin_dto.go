package dto

// AdminBalanceRequest represents the API request for an explicit balance
// override
type AdminBalanceRequest struct {
	AccountID string `json:"accountId" binding:"required"`
	Balance   string `json:"balance" binding:"required"`
}

// AdminLevelRequest represents the API request for an explicit level override
type AdminLevelRequest struct {
	AccountID string `json:"accountId" binding:"required"`
	Level     int    `json:"level" binding:"required,min=0"`
}

// AdminRoleRequest represents the API request for granting a role
type AdminRoleRequest struct {
	AccountID string `json:"accountId" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=player admin owner"`
}

// AdminBanRequest represents the API request for banning an account
type AdminBanRequest struct {
	AccountID string `json:"accountId" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// AdminWalletResponse represents the wallet state after an override
type AdminWalletResponse struct {
	AccountID string `json:"accountId"`
	Balance   string `json:"balance"`
	Level     int    `json:"level"`
}

// AdminAckResponse represents a bare acknowledgement
type AdminAckResponse struct {
	Success bool `json:"success"`
}
