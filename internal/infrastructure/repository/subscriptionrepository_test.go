package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharayeh/internal/infrastructure/persistence/models"
)

func TestGetActiveByUserIDReturnsNilWhenAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, newNopLogger())

	sub, err := repo.GetActiveByUserID(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestGetActiveByUserIDSkipsInactive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, newNopLogger())

	now := time.Now().UTC()
	require.NoError(t, db.Create(&models.SubscriptionModel{
		UserID:    "user_1",
		PlanID:    "standard",
		Tier:      "standard",
		Status:    "cancelled",
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)

	sub, err := repo.GetActiveByUserID(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestGetActiveByUserIDReturnsActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, newNopLogger())

	now := time.Now().UTC()
	require.NoError(t, db.Create(&models.SubscriptionModel{
		UserID:    "user_1",
		PlanID:    "premium",
		Tier:      "premium",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)

	sub, err := repo.GetActiveByUserID(context.Background(), "user_1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "premium", sub.PlanID())
	assert.True(t, sub.IsActive())
}

func TestLegacyGetByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLegacySubscriptionRepository(db, newNopLogger())
	ctx := context.Background()

	sub, err := repo.GetByUserID(ctx, "user_1")
	require.NoError(t, err)
	assert.Nil(t, sub)

	require.NoError(t, db.Create(&models.UserSubscriptionModel{
		UserID:        "user_1",
		LegacyPriceID: "price_abc123",
		CreatedAt:     time.Now().UTC(),
	}).Error)

	sub, err = repo.GetByUserID(ctx, "user_1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "price_abc123", sub.LegacyPriceID())
}
