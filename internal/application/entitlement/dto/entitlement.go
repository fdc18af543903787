package dto

import "sharayeh/internal/domain/entitlement"

// EntitlementDTO is the API view of a resolved entitlement snapshot.
type EntitlementDTO struct {
	UserID      string `json:"user_id"`
	Credits     int    `json:"credits"`
	UsedCredits int    `json:"used_credits"`
	PlanID      string `json:"plan_id"`
	Tier        string `json:"tier"`
}

// FromSnapshot converts a domain snapshot to its API view.
func FromSnapshot(s *entitlement.Snapshot) *EntitlementDTO {
	return &EntitlementDTO{
		UserID:      s.UserID,
		Credits:     s.Credits,
		UsedCredits: s.UsedCredits,
		PlanID:      s.PlanID,
		Tier:        s.Tier,
	}
}

// PlanDTO is the API view of one catalog plan.
type PlanDTO struct {
	ID          string   `json:"id"`
	Tier        string   `json:"tier"`
	Title       string   `json:"title"`
	Price       string   `json:"price"`
	Frequency   string   `json:"frequency"`
	Features    []string `json:"features"`
	Limitations []string `json:"limitations"`
}

// FromPlan converts a catalog plan to its API view.
func FromPlan(p *entitlement.Plan) *PlanDTO {
	return &PlanDTO{
		ID:          p.ID(),
		Tier:        p.Tier(),
		Title:       p.Title(),
		Price:       p.Price(),
		Frequency:   p.Frequency(),
		Features:    p.Features(),
		Limitations: p.Limitations(),
	}
}
