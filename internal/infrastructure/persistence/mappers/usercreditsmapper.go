package mappers

import (
	"fmt"

	"sharayeh/internal/domain/entitlement"
	"sharayeh/internal/infrastructure/persistence/models"
)

// UserCreditsMapper converts between the UserCredits domain entity and its
// persistence model.
type UserCreditsMapper struct{}

func NewUserCreditsMapper() UserCreditsMapper {
	return UserCreditsMapper{}
}

func (m UserCreditsMapper) ToEntity(model *models.UserCreditsModel) (*entitlement.UserCredits, error) {
	entity, err := entitlement.ReconstructUserCredits(
		model.UserID,
		model.Credits,
		model.UsedCredits,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user credits: %w", err)
	}
	return entity, nil
}

func (m UserCreditsMapper) ToModel(entity *entitlement.UserCredits) *models.UserCreditsModel {
	return &models.UserCreditsModel{
		UserID:      entity.UserID(),
		Credits:     entity.Credits(),
		UsedCredits: entity.UsedCredits(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}
