package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/usecase/chat"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/dto"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/middleware"
)

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	chatService *chat.Service
	logger      coreport.Logger
}

// NewChatHandler creates a new chat handler instance
func NewChatHandler(chatService *chat.Service, logger coreport.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// SendMessage handles the POST /chat/messages endpoint
func (h *ChatHandler) SendMessage(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	var req dto.ChatSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	var tip *chat.TipRequest
	if req.TipRecipient != "" {
		amount, err := entity.ParseAmount(req.TipAmount)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		tip = &chat.TipRequest{RecipientID: req.TipRecipient, Amount: amount}
	}

	message, err := h.chatService.Send(c.Request.Context(), identity, req.Content, tip)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toChatMessageResponse(message))
}

// GetMessages handles the GET /chat/messages endpoint
func (h *ChatHandler) GetMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	messages, err := h.chatService.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	responses := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, toChatMessageResponse(m))
	}

	c.JSON(http.StatusOK, responses)
}

func toChatMessageResponse(m *entity.ChatMessage) dto.ChatMessageResponse {
	resp := dto.ChatMessageResponse{
		ID:        m.ID,
		AccountID: m.AccountID,
		Content:   m.Content,
		IsTip:     m.IsTip,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
	if m.IsTip {
		resp.TipAmount = entity.FormatAmount(m.TipAmount)
		resp.TipRecipient = m.TipRecipientID
	}
	return resp
}
