package entitlement

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is immutable reference data describing one pricing tier. Plans are
// loaded once at process start and never mutated.
type Plan struct {
	id            string
	tier          string
	title         string
	price         string
	frequency     string
	features      []string
	limitations   []string
	legacyPriceID string
}

// NewPlan creates a plan after validating the identifying fields.
func NewPlan(id, tier, title, price, frequency string, features, limitations []string, legacyPriceID string) (*Plan, error) {
	if id == "" {
		return nil, fmt.Errorf("plan id is required")
	}
	if tier == "" {
		return nil, fmt.Errorf("plan tier is required")
	}
	if title == "" {
		return nil, fmt.Errorf("plan title is required")
	}

	return &Plan{
		id:            id,
		tier:          tier,
		title:         title,
		price:         price,
		frequency:     frequency,
		features:      features,
		limitations:   limitations,
		legacyPriceID: legacyPriceID,
	}, nil
}

func (p *Plan) ID() string            { return p.id }
func (p *Plan) Tier() string          { return p.tier }
func (p *Plan) Title() string         { return p.title }
func (p *Plan) Price() string         { return p.price }
func (p *Plan) Frequency() string     { return p.frequency }
func (p *Plan) Features() []string    { return p.features }
func (p *Plan) Limitations() []string { return p.limitations }

// LegacyPriceID returns the third-party price identifier carried only for
// mapping old subscription records. It is never emitted in responses.
func (p *Plan) LegacyPriceID() string { return p.legacyPriceID }

// Catalog is the static plan table. Exactly one plan is designated the Free
// Plan by a fixed id.
type Catalog struct {
	plans           []*Plan
	byID            map[string]*Plan
	byLegacyPriceID map[string]*Plan
	freePlan        *Plan
}

// NewCatalog builds a catalog and verifies the designated free plan exists.
func NewCatalog(plans []*Plan, freePlanID string) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, fmt.Errorf("plan catalog cannot be empty")
	}

	byID := make(map[string]*Plan, len(plans))
	byLegacy := make(map[string]*Plan)
	for _, p := range plans {
		if _, exists := byID[p.id]; exists {
			return nil, fmt.Errorf("duplicate plan id: %s", p.id)
		}
		byID[p.id] = p
		if p.legacyPriceID != "" {
			if _, exists := byLegacy[p.legacyPriceID]; exists {
				return nil, fmt.Errorf("duplicate legacy price id: %s", p.legacyPriceID)
			}
			byLegacy[p.legacyPriceID] = p
		}
	}

	free, ok := byID[freePlanID]
	if !ok {
		return nil, fmt.Errorf("free plan %q not present in catalog", freePlanID)
	}

	return &Catalog{
		plans:           plans,
		byID:            byID,
		byLegacyPriceID: byLegacy,
		freePlan:        free,
	}, nil
}

// ByID returns the plan with the given id, or nil when unknown. A stale plan
// reference is not an error here; callers fall through to the next
// resolution source.
func (c *Catalog) ByID(id string) *Plan {
	return c.byID[id]
}

// ByLegacyPriceID returns the plan mapped from a legacy third-party price
// identifier, or nil when no plan carries it.
func (c *Catalog) ByLegacyPriceID(priceID string) *Plan {
	if priceID == "" {
		return nil
	}
	return c.byLegacyPriceID[priceID]
}

// FreePlan returns the canonical free plan.
func (c *Catalog) FreePlan() *Plan {
	return c.freePlan
}

// Plans returns all plans in catalog order.
func (c *Catalog) Plans() []*Plan {
	return c.plans
}

type catalogFile struct {
	FreePlanID string `yaml:"free_plan_id"`
	Plans      []struct {
		ID            string   `yaml:"id"`
		Tier          string   `yaml:"tier"`
		Title         string   `yaml:"title"`
		Price         string   `yaml:"price"`
		Frequency     string   `yaml:"frequency"`
		Features      []string `yaml:"features"`
		Limitations   []string `yaml:"limitations"`
		LegacyPriceID string   `yaml:"legacy_price_id"`
	} `yaml:"plans"`
}

// ParseCatalog builds a catalog from YAML reference data.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse plan catalog: %w", err)
	}

	plans := make([]*Plan, 0, len(file.Plans))
	for _, entry := range file.Plans {
		plan, err := NewPlan(entry.ID, entry.Tier, entry.Title, entry.Price, entry.Frequency, entry.Features, entry.Limitations, entry.LegacyPriceID)
		if err != nil {
			return nil, fmt.Errorf("invalid plan %q: %w", entry.ID, err)
		}
		plans = append(plans, plan)
	}

	return NewCatalog(plans, file.FreePlanID)
}

// LoadCatalogFile reads and parses the plan catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}
