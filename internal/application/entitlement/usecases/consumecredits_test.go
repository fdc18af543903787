package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharayeh/internal/domain/entitlement"
	apperrors "sharayeh/internal/shared/errors"
	"sharayeh/internal/shared/logger"
)

type nopLogger struct{}

func newNopLogger() logger.Interface { return &nopLogger{} }

func (l *nopLogger) Debug(msg string, args ...any)                   {}
func (l *nopLogger) Info(msg string, args ...any)                    {}
func (l *nopLogger) Warn(msg string, args ...any)                    {}
func (l *nopLogger) Error(msg string, args ...any)                   {}
func (l *nopLogger) With(args ...any) logger.Interface               { return l }
func (l *nopLogger) Named(name string) logger.Interface              { return l }
func (l *nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}

// fakeCreditsRepo keeps records in memory with the repository's semantics.
type fakeCreditsRepo struct {
	records map[string]*entitlement.UserCredits
	err     error
}

func newFakeCreditsRepo() *fakeCreditsRepo {
	return &fakeCreditsRepo{records: map[string]*entitlement.UserCredits{}}
}

func (f *fakeCreditsRepo) GetOrCreate(_ context.Context, userID string, initialGrant int) (*entitlement.UserCredits, error) {
	if f.err != nil {
		return nil, f.err
	}
	if rec, ok := f.records[userID]; ok {
		return rec, nil
	}
	rec, err := entitlement.NewUserCredits(userID, initialGrant)
	if err != nil {
		return nil, err
	}
	f.records[userID] = rec
	return rec, nil
}

func (f *fakeCreditsRepo) Deduct(_ context.Context, userID string, amount int) (*entitlement.UserCredits, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[userID]
	if !ok {
		return nil, errors.New("not found")
	}
	if err := rec.Deduct(amount); err != nil {
		return nil, err
	}
	return rec, nil
}

// fakeEntitlementCache records invalidations.
type fakeEntitlementCache struct {
	snapshots    map[string]*entitlement.Snapshot
	invalidated  []string
	getErr       error
	setErr       error
	invalidatErr error
}

func newFakeCache() *fakeEntitlementCache {
	return &fakeEntitlementCache{snapshots: map[string]*entitlement.Snapshot{}}
}

func (f *fakeEntitlementCache) Get(_ context.Context, userID string) (*entitlement.Snapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.snapshots[userID], nil
}

func (f *fakeEntitlementCache) Set(_ context.Context, snapshot *entitlement.Snapshot) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.snapshots[snapshot.UserID] = snapshot
	return nil
}

func (f *fakeEntitlementCache) Invalidate(_ context.Context, userID string) error {
	if f.invalidatErr != nil {
		return f.invalidatErr
	}
	f.invalidated = append(f.invalidated, userID)
	delete(f.snapshots, userID)
	return nil
}

func TestConsumeCreditsDeductsFromGrant(t *testing.T) {
	repo := newFakeCreditsRepo()
	cache := newFakeCache()
	uc := NewConsumeCreditsUseCase(repo, cache, 200, newNopLogger())

	result, err := uc.Execute(context.Background(), ConsumeCreditsCommand{UserID: "user_1", Amount: 30})
	require.NoError(t, err)

	assert.Equal(t, 170, result.Credits)
	assert.Equal(t, 30, result.UsedCredits)
	assert.Equal(t, []string{"user_1"}, cache.invalidated)
}

func TestConsumeCreditsInsufficientBalance(t *testing.T) {
	repo := newFakeCreditsRepo()
	uc := NewConsumeCreditsUseCase(repo, newFakeCache(), 10, newNopLogger())

	_, err := uc.Execute(context.Background(), ConsumeCreditsCommand{UserID: "user_1", Amount: 11})
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeInsufficientCredits, appErr.Type)
	assert.Equal(t, 402, appErr.Code)
}

func TestConsumeCreditsValidation(t *testing.T) {
	uc := NewConsumeCreditsUseCase(newFakeCreditsRepo(), newFakeCache(), 200, newNopLogger())
	ctx := context.Background()

	_, err := uc.Execute(ctx, ConsumeCreditsCommand{UserID: "", Amount: 10})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, apperrors.GetAppError(err).Type)

	_, err = uc.Execute(ctx, ConsumeCreditsCommand{UserID: "user_1", Amount: 0})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetAppError(err).Type)
}

func TestConsumeCreditsCacheFailureIsNotFatal(t *testing.T) {
	repo := newFakeCreditsRepo()
	cache := newFakeCache()
	cache.invalidatErr = errors.New("redis down")
	uc := NewConsumeCreditsUseCase(repo, cache, 200, newNopLogger())

	result, err := uc.Execute(context.Background(), ConsumeCreditsCommand{UserID: "user_1", Amount: 30})
	require.NoError(t, err)
	assert.Equal(t, 170, result.Credits)
}

func TestConsumeCreditsWithNilCache(t *testing.T) {
	uc := NewConsumeCreditsUseCase(newFakeCreditsRepo(), nil, 200, newNopLogger())

	result, err := uc.Execute(context.Background(), ConsumeCreditsCommand{UserID: "user_1", Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, 199, result.Credits)
}
