package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sharayeh/internal/domain/entitlement"
	"sharayeh/internal/infrastructure/persistence/mappers"
	"sharayeh/internal/infrastructure/persistence/models"
	"sharayeh/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) entitlement.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

// GetActiveByUserID returns the user's active structured subscription, or nil
// when the user has none. Absence is a normal outcome, not an error.
func (r *SubscriptionRepositoryImpl) GetActiveByUserID(ctx context.Context, userID string) (*entitlement.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entitlement.SubscriptionStatusActive)).
		First(&model).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		r.logger.Errorw("failed to query subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to query subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}
