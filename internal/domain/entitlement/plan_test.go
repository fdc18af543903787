package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `
free_plan_id: free
plans:
  - id: free
    tier: free
    title: Free
    price: "0"
    frequency: monthly
    features:
      - "5 conversions"
  - id: standard
    tier: standard
    title: Standard
    price: "29"
    frequency: monthly
    legacy_price_id: price_abc123
  - id: premium
    tier: premium
    title: Premium
    price: "99"
    frequency: monthly
    legacy_price_id: price_def456
`

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)

	assert.Len(t, catalog.Plans(), 3)
	assert.Equal(t, "free", catalog.FreePlan().ID())
	assert.Equal(t, "free", catalog.FreePlan().Tier())
}

func TestCatalogByID(t *testing.T) {
	catalog, err := ParseCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)

	plan := catalog.ByID("standard")
	require.NotNil(t, plan)
	assert.Equal(t, "Standard", plan.Title())
	assert.Equal(t, "29", plan.Price())

	assert.Nil(t, catalog.ByID("nonexistent"))
}

func TestCatalogByLegacyPriceID(t *testing.T) {
	catalog, err := ParseCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)

	plan := catalog.ByLegacyPriceID("price_def456")
	require.NotNil(t, plan)
	assert.Equal(t, "premium", plan.ID())

	assert.Nil(t, catalog.ByLegacyPriceID("price_unknown"))
	assert.Nil(t, catalog.ByLegacyPriceID(""))
}

func TestNewCatalogRejectsMissingFreePlan(t *testing.T) {
	plan, err := NewPlan("standard", "standard", "Standard", "29", "monthly", nil, nil, "")
	require.NoError(t, err)

	_, err = NewCatalog([]*Plan{plan}, "free")
	assert.Error(t, err)
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	a, err := NewPlan("free", "free", "Free", "0", "monthly", nil, nil, "")
	require.NoError(t, err)
	b, err := NewPlan("free", "free", "Free Again", "0", "monthly", nil, nil, "")
	require.NoError(t, err)

	_, err = NewCatalog([]*Plan{a, b}, "free")
	assert.Error(t, err)
}

func TestNewCatalogRejectsDuplicateLegacyPriceIDs(t *testing.T) {
	a, err := NewPlan("free", "free", "Free", "0", "monthly", nil, nil, "")
	require.NoError(t, err)
	b, err := NewPlan("standard", "standard", "Standard", "29", "monthly", nil, nil, "price_x")
	require.NoError(t, err)
	c, err := NewPlan("premium", "premium", "Premium", "99", "monthly", nil, nil, "price_x")
	require.NoError(t, err)

	_, err = NewCatalog([]*Plan{a, b, c}, "free")
	assert.Error(t, err)
}

func TestNewPlanValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		tier    string
		title   string
		wantErr bool
	}{
		{"valid", "free", "free", "Free", false},
		{"missing id", "", "free", "Free", true},
		{"missing tier", "free", "", "Free", true},
		{"missing title", "free", "free", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(tt.id, tt.tier, tt.title, "0", "monthly", nil, nil, "")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
