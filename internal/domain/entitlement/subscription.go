package entitlement

import (
	"fmt"
	"time"
)

// SubscriptionStatus is the lifecycle state of a structured subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusCancelled, SubscriptionStatusExpired:
		return true
	}
	return false
}

// Subscription is the structured paid-entitlement record, the highest
// priority resolution source. It references a plan in the static catalog.
type Subscription struct {
	userID    string
	planID    string
	tier      string
	status    SubscriptionStatus
	createdAt time.Time
	updatedAt time.Time
}

// ReconstructSubscription rebuilds a subscription record from persistence.
func ReconstructSubscription(userID, planID, tier string, status SubscriptionStatus, createdAt, updatedAt time.Time) (*Subscription, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if planID == "" {
		return nil, fmt.Errorf("subscription plan id is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	return &Subscription{
		userID:    userID,
		planID:    planID,
		tier:      tier,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (s *Subscription) UserID() string             { return s.userID }
func (s *Subscription) PlanID() string             { return s.planID }
func (s *Subscription) Tier() string               { return s.tier }
func (s *Subscription) Status() SubscriptionStatus { return s.status }
func (s *Subscription) CreatedAt() time.Time       { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time       { return s.updatedAt }

func (s *Subscription) IsActive() bool {
	return s.status == SubscriptionStatusActive
}

// LegacySubscription is the historical record shape that stored only a
// third-party price identifier. It is consulted when no structured
// subscription matches, and mapped through the static plan catalog.
type LegacySubscription struct {
	userID        string
	legacyPriceID string
	createdAt     time.Time
}

// ReconstructLegacySubscription rebuilds a legacy record from persistence.
func ReconstructLegacySubscription(userID, legacyPriceID string, createdAt time.Time) (*LegacySubscription, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	return &LegacySubscription{
		userID:        userID,
		legacyPriceID: legacyPriceID,
		createdAt:     createdAt,
	}, nil
}

func (l *LegacySubscription) UserID() string        { return l.userID }
func (l *LegacySubscription) LegacyPriceID() string { return l.legacyPriceID }
func (l *LegacySubscription) CreatedAt() time.Time  { return l.createdAt }
