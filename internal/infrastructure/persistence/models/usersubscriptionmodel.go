package models

import (
	"time"

	"sharayeh/internal/shared/constants"
)

// UserSubscriptionModel is the legacy subscription record shape. Only the
// third-party price identifier is consulted; new subscriptions are never
// written here.
type UserSubscriptionModel struct {
	ID            uint   `gorm:"primarykey"`
	UserID        string `gorm:"uniqueIndex;not null;size:64"`
	LegacyPriceID string `gorm:"not null;size:128;default:''"`
	CreatedAt     time.Time
}

// TableName specifies the table name for GORM
func (UserSubscriptionModel) TableName() string {
	return constants.TableUserSubscriptions
}
