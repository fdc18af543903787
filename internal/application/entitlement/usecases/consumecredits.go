package usecases

import (
	"context"
	"errors"
	"fmt"

	"sharayeh/internal/domain/entitlement"
	"sharayeh/internal/infrastructure/cache"
	apperrors "sharayeh/internal/shared/errors"
	"sharayeh/internal/shared/logger"
)

type ConsumeCreditsCommand struct {
	UserID string
	Amount int
}

type ConsumeCreditsResult struct {
	Credits     int `json:"credits"`
	UsedCredits int `json:"used_credits"`
}

type ConsumeCreditsUseCase struct {
	credits      entitlement.UserCreditsRepository
	cache        cache.EntitlementCache
	initialGrant int
	logger       logger.Interface
}

func NewConsumeCreditsUseCase(
	credits entitlement.UserCreditsRepository,
	cache cache.EntitlementCache,
	initialGrant int,
	logger logger.Interface,
) *ConsumeCreditsUseCase {
	return &ConsumeCreditsUseCase{
		credits:      credits,
		cache:        cache,
		initialGrant: initialGrant,
		logger:       logger,
	}
}

// Execute atomically consumes credits from the user's balance. The record is
// created with the initial grant first when the user has never been metered.
func (uc *ConsumeCreditsUseCase) Execute(ctx context.Context, cmd ConsumeCreditsCommand) (*ConsumeCreditsResult, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("user identity is required")
	}
	if cmd.Amount <= 0 {
		return nil, apperrors.NewValidationError("amount must be a positive integer")
	}

	// Ensure the record exists so first-time users deduct from the grant
	// instead of hitting not-found.
	if _, err := uc.credits.GetOrCreate(ctx, cmd.UserID, uc.initialGrant); err != nil {
		uc.logger.Errorw("failed to ensure user credits record", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to ensure user credits record: %w", err)
	}

	record, err := uc.credits.Deduct(ctx, cmd.UserID, cmd.Amount)
	if err != nil {
		if errors.Is(err, entitlement.ErrInsufficientCredits) {
			return nil, apperrors.NewInsufficientCreditsError("credit balance does not cover the requested amount")
		}
		uc.logger.Errorw("failed to consume credits", "error", err, "user_id", cmd.UserID, "amount", cmd.Amount)
		return nil, fmt.Errorf("failed to consume credits: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, cmd.UserID); err != nil {
			uc.logger.Warnw("failed to invalidate entitlement cache", "error", err, "user_id", cmd.UserID)
		}
	}

	uc.logger.Infow("credits consumed",
		"user_id", cmd.UserID,
		"amount", cmd.Amount,
		"remaining", record.Credits(),
	)

	return &ConsumeCreditsResult{
		Credits:     record.Credits(),
		UsedCredits: record.UsedCredits(),
	}, nil
}
