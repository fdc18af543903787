package entitlement

import (
	"context"
	"fmt"

	"sharayeh/internal/shared/logger"
)

// Snapshot is the complete entitlement view for one user: plan identity plus
// the metering balance. It is always returned whole; credits never appear
// without a plan or vice versa.
type Snapshot struct {
	UserID      string
	Credits     int
	UsedCredits int
	PlanID      string
	Tier        string
}

// Resolver answers "what can this user do and how much of it do they have
// left" as a single consistent snapshot.
//
// Resolution priority: structured subscription, then legacy subscription
// mapped through the static plan catalog, then the canonical free plan.
type Resolver struct {
	credits UserCreditsRepository
	subs    SubscriptionRepository
	legacy  LegacySubscriptionRepository
	catalog *Catalog

	initialGrant int
	logger       logger.Interface
}

// NewResolver creates an entitlement resolver.
func NewResolver(
	credits UserCreditsRepository,
	subs SubscriptionRepository,
	legacy LegacySubscriptionRepository,
	catalog *Catalog,
	initialGrant int,
	logger logger.Interface,
) *Resolver {
	return &Resolver{
		credits:      credits,
		subs:         subs,
		legacy:       legacy,
		catalog:      catalog,
		initialGrant: initialGrant,
		logger:       logger,
	}
}

// Resolve returns the user's entitlement snapshot, creating the metering
// record on first access. The only write it may perform is that one
// idempotent creation.
func (r *Resolver) Resolve(ctx context.Context, userID string) (*Snapshot, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	record, err := r.credits.GetOrCreate(ctx, userID, r.initialGrant)
	if err != nil {
		r.logger.Errorw("failed to load user credits", "error", err, "user_id", userID)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	plan, err := r.resolvePlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		UserID:      userID,
		Credits:     record.Credits(),
		UsedCredits: record.UsedCredits(),
		PlanID:      plan.ID(),
		Tier:        plan.Tier(),
	}, nil
}

func (r *Resolver) resolvePlan(ctx context.Context, userID string) (*Plan, error) {
	sub, err := r.subs.GetActiveByUserID(ctx, userID)
	if err != nil {
		r.logger.Errorw("failed to load subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if sub != nil {
		// A subscription referencing a plan missing from the catalog is a
		// stale reference, not an error; fall through to the next source.
		if plan := r.catalog.ByID(sub.PlanID()); plan != nil {
			return plan, nil
		}
		r.logger.Warnw("subscription references unknown plan, falling through",
			"user_id", userID,
			"plan_id", sub.PlanID(),
		)
	}

	legacy, err := r.legacy.GetByUserID(ctx, userID)
	if err != nil {
		r.logger.Errorw("failed to load legacy subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if legacy != nil {
		if plan := r.catalog.ByLegacyPriceID(legacy.LegacyPriceID()); plan != nil {
			return plan, nil
		}
	}

	return r.catalog.FreePlan(), nil
}
