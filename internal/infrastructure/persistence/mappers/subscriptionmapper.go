package mappers

import (
	"fmt"

	"sharayeh/internal/domain/entitlement"
	"sharayeh/internal/infrastructure/persistence/models"
)

// SubscriptionMapper converts between subscription records and their
// persistence models.
type SubscriptionMapper struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return SubscriptionMapper{}
}

func (m SubscriptionMapper) ToEntity(model *models.SubscriptionModel) (*entitlement.Subscription, error) {
	entity, err := entitlement.ReconstructSubscription(
		model.UserID,
		model.PlanID,
		model.Tier,
		entitlement.SubscriptionStatus(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription: %w", err)
	}
	return entity, nil
}

// LegacySubscriptionMapper converts the legacy record shape.
type LegacySubscriptionMapper struct{}

func NewLegacySubscriptionMapper() LegacySubscriptionMapper {
	return LegacySubscriptionMapper{}
}

func (m LegacySubscriptionMapper) ToEntity(model *models.UserSubscriptionModel) (*entitlement.LegacySubscription, error) {
	entity, err := entitlement.ReconstructLegacySubscription(
		model.UserID,
		model.LegacyPriceID,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct legacy subscription: %w", err)
	}
	return entity, nil
}
