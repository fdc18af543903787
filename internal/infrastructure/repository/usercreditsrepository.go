package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sharayeh/internal/domain/entitlement"
	"sharayeh/internal/infrastructure/persistence/mappers"
	"sharayeh/internal/infrastructure/persistence/models"
	"sharayeh/internal/shared/biztime"
	"sharayeh/internal/shared/logger"
)

type UserCreditsRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UserCreditsMapper
	logger logger.Interface
}

func NewUserCreditsRepository(
	db *gorm.DB,
	logger logger.Interface,
) entitlement.UserCreditsRepository {
	return &UserCreditsRepositoryImpl{
		db:     db,
		mapper: mappers.NewUserCreditsMapper(),
		logger: logger,
	}
}

// GetOrCreate returns the user's metering record, creating it with the
// initial grant when absent. The insert uses ON CONFLICT DO NOTHING so two
// concurrent calls for a new user cannot double-create; both observe the
// single row afterwards.
func (r *UserCreditsRepositoryImpl) GetOrCreate(ctx context.Context, userID string, initialGrant int) (*entitlement.UserCredits, error) {
	now := biztime.NowUTC()
	model := &models.UserCreditsModel{
		UserID:      userID,
		Credits:     initialGrant,
		UsedCredits: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		r.logger.Errorw("failed to upsert user credits", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to upsert user credits: %w", err)
	}

	// Re-read: on conflict the insert was a no-op and the model carries no
	// authoritative values.
	var current models.UserCreditsModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&current).Error; err != nil {
		r.logger.Errorw("failed to load user credits", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to load user credits: %w", err)
	}

	return r.mapper.ToEntity(&current)
}

// Deduct consumes credits with a single conditional UPDATE guarded by the
// current balance. Concurrent deductions for the same user serialize at the
// store; a lost update is not possible.
func (r *UserCreditsRepositoryImpl) Deduct(ctx context.Context, userID string, amount int) (*entitlement.UserCredits, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deduction amount must be positive: %d", amount)
	}

	res := r.db.WithContext(ctx).
		Model(&models.UserCreditsModel{}).
		Where("user_id = ? AND credits >= ?", userID, amount).
		Updates(map[string]interface{}{
			"credits":      gorm.Expr("credits - ?", amount),
			"used_credits": gorm.Expr("used_credits + ?", amount),
			"updated_at":   biztime.NowUTC(),
		})
	if res.Error != nil {
		r.logger.Errorw("failed to deduct credits", "error", res.Error, "user_id", userID, "amount", amount)
		return nil, fmt.Errorf("failed to deduct credits: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		// Distinguish "no record" from "not enough balance".
		var current models.UserCreditsModel
		err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&current).Error
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user credits record not found for %s", userID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load user credits: %w", err)
		}
		return nil, entitlement.ErrInsufficientCredits
	}

	var updated models.UserCreditsModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&updated).Error; err != nil {
		return nil, fmt.Errorf("failed to load user credits after deduction: %w", err)
	}

	r.logger.Debugw("credits deducted",
		"user_id", userID,
		"amount", amount,
		"remaining", updated.Credits,
	)

	return r.mapper.ToEntity(&updated)
}
