package usecases

import (
	"context"

	"sharayeh/internal/application/entitlement/dto"
	"sharayeh/internal/domain/entitlement"
)

type ListPlansUseCase struct {
	catalog *entitlement.Catalog
}

func NewListPlansUseCase(catalog *entitlement.Catalog) *ListPlansUseCase {
	return &ListPlansUseCase{catalog: catalog}
}

// Execute returns the full plan catalog in catalog order. Legacy price
// identifiers are internal mapping data and never appear in the output.
func (uc *ListPlansUseCase) Execute(_ context.Context) []*dto.PlanDTO {
	plans := uc.catalog.Plans()
	out := make([]*dto.PlanDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.FromPlan(p))
	}
	return out
}
