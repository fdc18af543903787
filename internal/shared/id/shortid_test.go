package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	generated, err := Generate(12)
	require.NoError(t, err)
	assert.Len(t, generated, 12)

	for _, r := range generated {
		assert.Contains(t, alphabet, string(r))
	}
}

func TestGenerateDefaultsLength(t *testing.T) {
	generated, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, generated, DefaultLength)
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		generated, err := Generate(DefaultLength)
		require.NoError(t, err)
		assert.False(t, seen[generated], "duplicate id generated: %s", generated)
		seen[generated] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	generated, err := GenerateWithPrefix(PrefixConversion, 12)
	require.NoError(t, err)

	assert.NoError(t, ValidatePrefix(generated, PrefixConversion))
	assert.Error(t, ValidatePrefix(generated, "sub"))
}
