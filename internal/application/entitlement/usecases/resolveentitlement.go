package usecases

import (
	"context"
	"errors"
	"fmt"

	"sharayeh/internal/application/entitlement/dto"
	"sharayeh/internal/domain/entitlement"
	"sharayeh/internal/infrastructure/cache"
	apperrors "sharayeh/internal/shared/errors"
	"sharayeh/internal/shared/logger"
)

type ResolveEntitlementCommand struct {
	UserID string
}

type ResolveEntitlementUseCase struct {
	resolver *entitlement.Resolver
	cache    cache.EntitlementCache
	logger   logger.Interface
}

func NewResolveEntitlementUseCase(
	resolver *entitlement.Resolver,
	cache cache.EntitlementCache,
	logger logger.Interface,
) *ResolveEntitlementUseCase {
	return &ResolveEntitlementUseCase{
		resolver: resolver,
		cache:    cache,
		logger:   logger,
	}
}

// Execute resolves the user's entitlement snapshot, serving from cache when
// possible. Cache failures degrade to a database read; they never fail the
// request.
func (uc *ResolveEntitlementUseCase) Execute(ctx context.Context, cmd ResolveEntitlementCommand) (*dto.EntitlementDTO, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, cmd.UserID)
		if err != nil {
			uc.logger.Warnw("entitlement cache read failed, falling back to store", "error", err, "user_id", cmd.UserID)
		} else if cached != nil {
			return dto.FromSnapshot(cached), nil
		}
	}

	snapshot, err := uc.resolver.Resolve(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, entitlement.ErrMissingUserID) {
			return nil, apperrors.NewUnauthorizedError("user identity is required")
		}
		uc.logger.Errorw("failed to resolve entitlement", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to resolve entitlement: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, snapshot); err != nil {
			uc.logger.Warnw("failed to cache entitlement snapshot", "error", err, "user_id", cmd.UserID)
		}
	}

	return dto.FromSnapshot(snapshot), nil
}
