package entitlement

import "context"

// UserCreditsRepository persists per-user metering records.
type UserCreditsRepository interface {
	// GetOrCreate returns the user's record, creating it with the given
	// initial grant when absent. Creation must be a single upsert: two
	// concurrent calls for a new user must not produce duplicate records,
	// and the loser of the race must observe the winner's row.
	GetOrCreate(ctx context.Context, userID string, initialGrant int) (*UserCredits, error)

	// Deduct atomically consumes credits. The decrement and the used-credits
	// increment happen in one conditional store-level update guarded by the
	// current balance; it never reads then writes. Returns
	// ErrInsufficientCredits when the balance does not cover the amount, and
	// the updated record otherwise.
	Deduct(ctx context.Context, userID string, amount int) (*UserCredits, error)
}

// SubscriptionRepository reads structured subscription records.
type SubscriptionRepository interface {
	// GetActiveByUserID returns the user's active structured subscription,
	// or nil when none exists.
	GetActiveByUserID(ctx context.Context, userID string) (*Subscription, error)
}

// LegacySubscriptionRepository reads the historical subscription shape.
type LegacySubscriptionRepository interface {
	// GetByUserID returns the user's legacy record, or nil when none exists.
	GetByUserID(ctx context.Context, userID string) (*LegacySubscription, error)
}
