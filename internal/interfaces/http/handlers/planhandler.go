package handlers

import (
	"github.com/gin-gonic/gin"

	"sharayeh/internal/application/entitlement/usecases"
	"sharayeh/internal/shared/utils"
)

// PlanHandler serves the public plan catalog
type PlanHandler struct {
	listPlansUC *usecases.ListPlansUseCase
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(listPlansUC *usecases.ListPlansUseCase) *PlanHandler {
	return &PlanHandler{listPlansUC: listPlansUC}
}

// ListPlans handles GET /api/plans
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans := h.listPlansUC.Execute(c.Request.Context())
	utils.OKResponse(c, gin.H{"plans": plans})
}
