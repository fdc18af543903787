package entitlement

import (
	"fmt"
	"time"
)

// UserCredits is the per-user usage-metering record. One record exists per
// user; it is created with the default grant the first time the user is
// resolved and never deleted.
type UserCredits struct {
	userID      string
	credits     int
	usedCredits int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUserCredits creates the initial metering record for a user.
func NewUserCredits(userID string, initialGrant int) (*UserCredits, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if initialGrant < 0 {
		return nil, fmt.Errorf("initial credit grant cannot be negative: %d", initialGrant)
	}

	now := time.Now().UTC()
	return &UserCredits{
		userID:      userID,
		credits:     initialGrant,
		usedCredits: 0,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructUserCredits rebuilds a record from persistence.
func ReconstructUserCredits(userID string, credits, usedCredits int, createdAt, updatedAt time.Time) (*UserCredits, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if credits < 0 {
		return nil, fmt.Errorf("credits cannot be negative: %d", credits)
	}
	if usedCredits < 0 {
		return nil, fmt.Errorf("used credits cannot be negative: %d", usedCredits)
	}

	return &UserCredits{
		userID:      userID,
		credits:     credits,
		usedCredits: usedCredits,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (u *UserCredits) UserID() string       { return u.userID }
func (u *UserCredits) Credits() int         { return u.credits }
func (u *UserCredits) UsedCredits() int     { return u.usedCredits }
func (u *UserCredits) CreatedAt() time.Time { return u.createdAt }
func (u *UserCredits) UpdatedAt() time.Time { return u.updatedAt }

// Deduct consumes credits from the balance. The persistence layer performs
// the equivalent mutation atomically; this method carries the domain rule for
// in-memory use.
func (u *UserCredits) Deduct(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("deduction amount must be positive: %d", amount)
	}
	if u.credits < amount {
		return ErrInsufficientCredits
	}

	u.credits -= amount
	u.usedCredits += amount
	u.updatedAt = time.Now().UTC()
	return nil
}

// CanAfford reports whether the balance covers a deduction.
func (u *UserCredits) CanAfford(amount int) bool {
	return amount > 0 && u.credits >= amount
}
