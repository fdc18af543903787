package models

import (
	"time"

	"gorm.io/datatypes"

	"sharayeh/internal/shared/constants"
)

// SubscriptionModel is the database persistence model for structured
// subscription records.
type SubscriptionModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    string `gorm:"uniqueIndex;not null;size:64"`
	PlanID    string `gorm:"not null;size:64"`
	Tier      string `gorm:"not null;size:32;default:''"`
	Status    string `gorm:"not null;size:20;index:idx_subscriptions_status"`
	Metadata  datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
