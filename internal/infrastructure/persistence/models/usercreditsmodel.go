package models

import (
	"time"

	"sharayeh/internal/shared/constants"
)

// UserCreditsModel is the database persistence model for per-user metering
// records. This is the anti-corruption layer between domain and database.
type UserCreditsModel struct {
	ID          uint   `gorm:"primarykey"`
	UserID      string `gorm:"uniqueIndex;not null;size:64;comment:opaque identity-provider user id"`
	Credits     int    `gorm:"not null;default:0"`
	UsedCredits int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (UserCreditsModel) TableName() string {
	return constants.TableUserCredits
}
