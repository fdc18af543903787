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

type LegacySubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.LegacySubscriptionMapper
	logger logger.Interface
}

func NewLegacySubscriptionRepository(
	db *gorm.DB,
	logger logger.Interface,
) entitlement.LegacySubscriptionRepository {
	return &LegacySubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewLegacySubscriptionMapper(),
		logger: logger,
	}
}

// GetByUserID returns the user's legacy record, or nil when none exists.
func (r *LegacySubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*entitlement.LegacySubscription, error) {
	var model models.UserSubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		r.logger.Errorw("failed to query legacy subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to query legacy subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}
