package plans

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/internal/domain"
)

// Plan is a subscription tier with an ordered position in the pricing table.
type Plan struct {
	bun.BaseModel `bun:"table:plans,alias:pl"`

	ID          uuid.UUID      `bun:"id,pk,type:uuid" json:"id"`
	Name        string         `bun:"name,notnull" json:"name"`
	Slug        string         `bun:"slug,notnull,unique" json:"slug"`
	Description string         `bun:"description" json:"description"`
	Position    int            `bun:"position,notnull,default:0" json:"position"`
	Status      domain.Status  `bun:"status,notnull,default:'draft'" json:"status"`
	Prices      map[string]any `bun:"prices,type:jsonb" json:"prices,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Features []*PlanFeature `bun:"rel:has-many,join:id=plan_id" json:"features,omitempty"`
}

// FeatureType distinguishes boolean capabilities from counted limits.
type FeatureType string

const (
	FeatureTypeFlag  FeatureType = "feature"
	FeatureTypeLimit FeatureType = "limit"
)

// PlanFeature is one entitlement row of a plan. Rows are created lazily from
// the catalog skeleton the first time a (plan, code) pair is resolved.
type PlanFeature struct {
	bun.BaseModel `bun:"table:plan_features,alias:pf"`

	ID          uuid.UUID   `bun:"id,pk,type:uuid" json:"id"`
	PlanID      uuid.UUID   `bun:"plan_id,notnull,type:uuid" json:"plan_id"`
	Code        string      `bun:"code,notnull" json:"code"`
	Name        string      `bun:"name,notnull" json:"name"`
	Description string      `bun:"description" json:"description"`
	Type        FeatureType `bun:"type,notnull,default:'limit'" json:"type"`
	Enabled     bool        `bun:"enabled,notnull,default:true" json:"enabled"`
	Limit       int         `bun:"feature_limit,notnull,default:0" json:"limit"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func clonePlan(plan *Plan) *Plan {
	if plan == nil {
		return nil
	}
	clone := *plan
	clone.Prices = cloneMap(plan.Prices)
	if plan.Features != nil {
		clone.Features = make([]*PlanFeature, 0, len(plan.Features))
		for _, feature := range plan.Features {
			clone.Features = append(clone.Features, cloneFeature(feature))
		}
	}
	return &clone
}

func cloneFeature(feature *PlanFeature) *PlanFeature {
	if feature == nil {
		return nil
	}
	clone := *feature
	return &clone
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for key, value := range src {
		switch typed := value.(type) {
		case map[string]any:
			out[key] = cloneMap(typed)
		case []any:
			out[key] = cloneSlice(typed)
		default:
			out[key] = value
		}
	}
	return out
}

func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}
	out := make([]any, len(src))
	for i, value := range src {
		switch typed := value.(type) {
		case map[string]any:
			out[i] = cloneMap(typed)
		case []any:
			out[i] = cloneSlice(typed)
		default:
			out[i] = value
		}
	}
	return out
}
