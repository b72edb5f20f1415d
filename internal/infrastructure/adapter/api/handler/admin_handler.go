package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crownplay/casino-engine/internal/domain/entity"
	coreport "github.com/crownplay/casino-engine/internal/domain/port/core"
	"github.com/crownplay/casino-engine/internal/domain/usecase/admin"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/dto"
	"github.com/crownplay/casino-engine/internal/infrastructure/adapter/api/middleware"
)

// AdminHandler handles privileged override HTTP requests
type AdminHandler struct {
	adminService *admin.Service
	logger       coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(adminService *admin.Service, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// SetBalance handles the POST /admin/balance endpoint
func (h *AdminHandler) SetBalance(c *gin.Context) {
	caller := middleware.IdentityFrom(c)

	var req dto.AdminBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	balance, err := entity.ParseAmount(req.Balance)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	wallet, err := h.adminService.SetBalance(c.Request.Context(), caller, req.AccountID, balance)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminWalletResponse{
		AccountID: wallet.AccountID,
		Balance:   entity.FormatAmount(wallet.Balance()),
		Level:     wallet.Level,
	})
}

// SetLevel handles the POST /admin/level endpoint
func (h *AdminHandler) SetLevel(c *gin.Context) {
	caller := middleware.IdentityFrom(c)

	var req dto.AdminLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	wallet, err := h.adminService.SetLevel(c.Request.Context(), caller, req.AccountID, req.Level)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminWalletResponse{
		AccountID: wallet.AccountID,
		Balance:   entity.FormatAmount(wallet.Balance()),
		Level:     wallet.Level,
	})
}

// GrantRole handles the POST /admin/role endpoint
func (h *AdminHandler) GrantRole(c *gin.Context) {
	caller := middleware.IdentityFrom(c)

	var req dto.AdminRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	if err := h.adminService.GrantRole(c.Request.Context(), caller, req.AccountID, entity.Role(req.Role)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminAckResponse{Success: true})
}

// Ban handles the POST /admin/ban endpoint
func (h *AdminHandler) Ban(c *gin.Context) {
	caller := middleware.IdentityFrom(c)

	var req dto.AdminBanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	if err := h.adminService.Ban(c.Request.Context(), caller, req.AccountID, req.Reason); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminAckResponse{Success: true})
}
