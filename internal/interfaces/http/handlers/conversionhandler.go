package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sharayeh/internal/application/conversion/usecases"
	"sharayeh/internal/domain/conversion"
	"sharayeh/internal/interfaces/http/middleware"
	"sharayeh/internal/shared/i18n"
	"sharayeh/internal/shared/logger"
	"sharayeh/internal/shared/utils"
)

// ConversionHandler handles HTTP requests for conversion jobs
type ConversionHandler struct {
	applyMorphUC *usecases.ApplyMorphTransitionUseCase
	logger       logger.Interface
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(
	applyMorphUC *usecases.ApplyMorphTransitionUseCase,
	logger logger.Interface,
) *ConversionHandler {
	return &ConversionHandler{
		applyMorphUC: applyMorphUC,
		logger:       logger,
	}
}

type morphRequest struct {
	SourceURL string `json:"source_url" binding:"required"`
}

type morphResponse struct {
	Success          bool                     `json:"success"`
	ProcessedFileURL string                   `json:"processed_file_url"`
	ProcessedSlides  []int                    `json:"processed_slides"`
	FailedSlides     []conversion.UnitFailure `json:"failed_slides"`
}

// ApplyMorph handles POST /api/conversions/morph
//
// Partial per-slide failure still yields a 200 with the failed slides listed;
// only terminal orchestration failures map to error statuses.
func (h *ConversionHandler) ApplyMorph(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, i18n.T(middleware.LocaleFrom(c), i18n.MsgUnauthorized))
		return
	}

	var req morphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.applyMorphUC.Execute(c.Request.Context(), usecases.ApplyMorphTransitionCommand{
		UserID:    userID,
		SourceURL: req.SourceURL,
	})
	if err != nil {
		h.respondFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, morphResponse{
		Success:          true,
		ProcessedFileURL: result.ProcessedFileURL,
		ProcessedSlides:  result.ProcessedSlides,
		FailedSlides:     result.FailedSlides,
	})
}

// respondFailure maps terminal job failure kinds to HTTP statuses with a
// localized user-facing message. Internal details stay in the logs.
func (h *ConversionHandler) respondFailure(c *gin.Context, err error) {
	locale := middleware.LocaleFrom(c)

	switch conversion.KindOf(err) {
	case conversion.FailureInvalidSource:
		utils.ErrorResponse(c, http.StatusBadRequest, i18n.T(locale, i18n.MsgInvalidSource))
	case conversion.FailureSourceUnavailable,
		conversion.FailureAuthenticationFailed,
		conversion.FailureUploadVerificationFailed,
		conversion.FailureResultUnavailable,
		conversion.FailurePersistFailed:
		h.logger.Errorw("conversion job failed", "error", err, "kind", conversion.KindOf(err))
		utils.ErrorResponse(c, http.StatusBadGateway, i18n.T(locale, i18n.MsgConversionFailed))
	default:
		h.logger.Errorw("conversion job failed unexpectedly", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, i18n.T(locale, i18n.MsgInternalError))
	}
}
