package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserCredits(t *testing.T) {
	uc, err := NewUserCredits("user_1", 200)
	require.NoError(t, err)

	assert.Equal(t, "user_1", uc.UserID())
	assert.Equal(t, 200, uc.Credits())
	assert.Equal(t, 0, uc.UsedCredits())
}

func TestNewUserCreditsValidation(t *testing.T) {
	_, err := NewUserCredits("", 200)
	assert.ErrorIs(t, err, ErrMissingUserID)

	_, err = NewUserCredits("user_1", -1)
	assert.Error(t, err)
}

func TestDeduct(t *testing.T) {
	uc, err := NewUserCredits("user_1", 100)
	require.NoError(t, err)

	require.NoError(t, uc.Deduct(30))
	assert.Equal(t, 70, uc.Credits())
	assert.Equal(t, 30, uc.UsedCredits())

	require.NoError(t, uc.Deduct(70))
	assert.Equal(t, 0, uc.Credits())
	assert.Equal(t, 100, uc.UsedCredits())
}

func TestDeductInsufficientBalance(t *testing.T) {
	uc, err := NewUserCredits("user_1", 10)
	require.NoError(t, err)

	err = uc.Deduct(11)
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	// Balance untouched after a rejected deduction
	assert.Equal(t, 10, uc.Credits())
	assert.Equal(t, 0, uc.UsedCredits())
}

func TestDeductRejectsNonPositiveAmounts(t *testing.T) {
	uc, err := NewUserCredits("user_1", 10)
	require.NoError(t, err)

	assert.Error(t, uc.Deduct(0))
	assert.Error(t, uc.Deduct(-5))
}

func TestCanAfford(t *testing.T) {
	uc, err := NewUserCredits("user_1", 10)
	require.NoError(t, err)

	assert.True(t, uc.CanAfford(10))
	assert.True(t, uc.CanAfford(1))
	assert.False(t, uc.CanAfford(11))
	assert.False(t, uc.CanAfford(0))
	assert.False(t, uc.CanAfford(-1))
}
