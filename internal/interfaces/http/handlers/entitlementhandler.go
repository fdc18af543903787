package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sharayeh/internal/application/entitlement/usecases"
	"sharayeh/internal/interfaces/http/middleware"
	"sharayeh/internal/shared/errors"
	"sharayeh/internal/shared/i18n"
	"sharayeh/internal/shared/logger"
	"sharayeh/internal/shared/utils"
)

// EntitlementHandler handles HTTP requests for entitlement and metering
// operations
type EntitlementHandler struct {
	resolveEntitlementUC *usecases.ResolveEntitlementUseCase
	consumeCreditsUC     *usecases.ConsumeCreditsUseCase
	logger               logger.Interface
}

// NewEntitlementHandler creates a new entitlement handler
func NewEntitlementHandler(
	resolveEntitlementUC *usecases.ResolveEntitlementUseCase,
	consumeCreditsUC *usecases.ConsumeCreditsUseCase,
	logger logger.Interface,
) *EntitlementHandler {
	return &EntitlementHandler{
		resolveEntitlementUC: resolveEntitlementUC,
		consumeCreditsUC:     consumeCreditsUC,
		logger:               logger,
	}
}

// GetEntitlement handles GET /api/user/entitlement
func (h *EntitlementHandler) GetEntitlement(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, i18n.T(middleware.LocaleFrom(c), i18n.MsgUnauthorized))
		return
	}

	result, err := h.resolveEntitlementUC.Execute(c.Request.Context(), usecases.ResolveEntitlementCommand{
		UserID: userID,
	})
	if err != nil {
		h.logger.Errorw("failed to resolve entitlement", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}

type consumeCreditsRequest struct {
	Amount int    `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

// ConsumeCredits handles POST /api/user/credits/consume
func (h *EntitlementHandler) ConsumeCredits(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, i18n.T(middleware.LocaleFrom(c), i18n.MsgUnauthorized))
		return
	}

	var req consumeCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.consumeCreditsUC.Execute(c.Request.Context(), usecases.ConsumeCreditsCommand{
		UserID: userID,
		Amount: req.Amount,
	})
	if err != nil {
		if errors.IsInsufficientCreditsError(err) {
			h.logger.Infow("credit consumption rejected",
				"user_id", userID,
				"amount", req.Amount,
				"reason", req.Reason,
			)
			utils.ErrorResponse(c, http.StatusPaymentRequired, i18n.T(middleware.LocaleFrom(c), i18n.MsgInsufficientCredits))
			return
		}
		h.logger.Errorw("failed to consume credits", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, result)
}
