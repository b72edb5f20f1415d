package dto

// ChatSendRequest represents the API request for sending a chat message.
// When TipRecipient is set the message carries a wallet transfer.
type ChatSendRequest struct {
	Content      string `json:"content" binding:"required"`
	TipRecipient string `json:"tipRecipient"`
	TipAmount    string `json:"tipAmount"`
}

// ChatMessageResponse represents one chat message
type ChatMessageResponse struct {
	ID           uint64 `json:"id"`
	AccountID    string `json:"accountId"`
	Content      string `json:"content"`
	IsTip        bool   `json:"isTip,omitempty"`
	TipAmount    string `json:"tipAmount,omitempty"`
	TipRecipient string `json:"tipRecipient,omitempty"`
	CreatedAt    string `json:"createdAt"`
}
