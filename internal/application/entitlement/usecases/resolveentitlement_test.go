package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharayeh/internal/domain/entitlement"
	apperrors "sharayeh/internal/shared/errors"
)

type fakeSubsRepo struct{ sub *entitlement.Subscription }

func (f *fakeSubsRepo) GetActiveByUserID(context.Context, string) (*entitlement.Subscription, error) {
	return f.sub, nil
}

type fakeLegacyRepo struct{ sub *entitlement.LegacySubscription }

func (f *fakeLegacyRepo) GetByUserID(context.Context, string) (*entitlement.LegacySubscription, error) {
	return f.sub, nil
}

func testCatalog(t *testing.T) *entitlement.Catalog {
	t.Helper()
	catalog, err := entitlement.ParseCatalog([]byte(`
free_plan_id: free
plans:
  - id: free
    tier: free
    title: Free
    price: "0"
    frequency: monthly
  - id: standard
    tier: standard
    title: Standard
    price: "29"
    frequency: monthly
    legacy_price_id: price_abc123
`))
	require.NoError(t, err)
	return catalog
}

func newTestResolver(t *testing.T, repo entitlement.UserCreditsRepository) *entitlement.Resolver {
	t.Helper()
	return entitlement.NewResolver(repo, &fakeSubsRepo{}, &fakeLegacyRepo{}, testCatalog(t), 200, newNopLogger())
}

func TestResolveEntitlementCacheMissResolvesAndCaches(t *testing.T) {
	cache := newFakeCache()
	uc := NewResolveEntitlementUseCase(newTestResolver(t, newFakeCreditsRepo()), cache, newNopLogger())

	result, err := uc.Execute(context.Background(), ResolveEntitlementCommand{UserID: "user_1"})
	require.NoError(t, err)

	assert.Equal(t, "user_1", result.UserID)
	assert.Equal(t, 200, result.Credits)
	assert.Equal(t, "free", result.PlanID)

	// The resolved snapshot is now cached
	cached := cache.snapshots["user_1"]
	require.NotNil(t, cached)
	assert.Equal(t, "free", cached.PlanID)
}

func TestResolveEntitlementServedFromCache(t *testing.T) {
	repo := newFakeCreditsRepo()
	cache := newFakeCache()
	cache.snapshots["user_1"] = &entitlement.Snapshot{
		UserID:  "user_1",
		Credits: 42,
		PlanID:  "standard",
		Tier:    "standard",
	}
	uc := NewResolveEntitlementUseCase(newTestResolver(t, repo), cache, newNopLogger())

	result, err := uc.Execute(context.Background(), ResolveEntitlementCommand{UserID: "user_1"})
	require.NoError(t, err)

	assert.Equal(t, 42, result.Credits)
	assert.Equal(t, "standard", result.PlanID)
	// No metering record was created for the cache hit
	assert.Empty(t, repo.records)
}

func TestResolveEntitlementCacheFailureFallsBack(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	uc := NewResolveEntitlementUseCase(newTestResolver(t, newFakeCreditsRepo()), cache, newNopLogger())

	result, err := uc.Execute(context.Background(), ResolveEntitlementCommand{UserID: "user_1"})
	require.NoError(t, err)
	assert.Equal(t, "free", result.PlanID)
}

func TestResolveEntitlementMissingUser(t *testing.T) {
	uc := NewResolveEntitlementUseCase(newTestResolver(t, newFakeCreditsRepo()), newFakeCache(), newNopLogger())

	_, err := uc.Execute(context.Background(), ResolveEntitlementCommand{UserID: ""})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}

func TestResolveEntitlementWithNilCache(t *testing.T) {
	uc := NewResolveEntitlementUseCase(newTestResolver(t, newFakeCreditsRepo()), nil, newNopLogger())

	result, err := uc.Execute(context.Background(), ResolveEntitlementCommand{UserID: "user_1"})
	require.NoError(t, err)
	assert.Equal(t, 200, result.Credits)
}
