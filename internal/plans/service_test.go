package plans

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-sitebuilder/internal/domain"
	"github.com/goliatone/go-sitebuilder/internal/identity"
)

func newTestPlanService(t *testing.T) Service {
	t.Helper()

	return NewService(NewMemoryPlanRepository(), NewMemoryPlanFeatureRepository(),
		WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }),
	)
}

func mustCreatePlan(t *testing.T, svc Service, name string) *Plan {
	t.Helper()

	plan, err := svc.CreatePlan(context.Background(), CreatePlanInput{
		Name:   name,
		Status: domain.StatusPublished,
	})
	if err != nil {
		t.Fatalf("create plan %q: %v", name, err)
	}
	return plan
}

func TestCreatePlanDeterministicID(t *testing.T) {
	t.Parallel()

	svc := newTestPlanService(t)
	plan := mustCreatePlan(t, svc, "Starter Plan")

	if plan.Slug != "starter-plan" {
		t.Fatalf("expected normalized slug, got %q", plan.Slug)
	}
	if plan.ID != identity.PlanUUID("starter-plan") {
		t.Fatalf("expected deterministic id derived from slug")
	}

	fetched, err := svc.GetPlanBySlug(context.Background(), "starter-plan")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if fetched.ID != plan.ID {
		t.Fatalf("expected plan %s, got %s", plan.ID, fetched.ID)
	}
}

func TestCreatePlanRejectsDuplicateSlug(t *testing.T) {
	t.Parallel()

	svc := newTestPlanService(t)
	mustCreatePlan(t, svc, "Pro")

	_, err := svc.CreatePlan(context.Background(), CreatePlanInput{Name: "Other", Slug: "PRO"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestPlanListOrderAndSort(t *testing.T) {
	t.Parallel()

	svc := newTestPlanService(t)
	ctx := context.Background()

	free := mustCreatePlan(t, svc, "Free")
	pro := mustCreatePlan(t, svc, "Pro")

	plans, err := svc.ListPlans(ctx)
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	if plans[0].ID != free.ID || plans[1].ID != pro.ID {
		t.Fatalf("expected creation order")
	}

	if err := svc.SortPlans(ctx, []SortPair{
		{ID: pro.ID, Position: 0},
		{ID: free.ID, Position: 1},
	}); err != nil {
		t.Fatalf("sort plans: %v", err)
	}

	plans, err = svc.ListPlans(ctx)
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	if plans[0].ID != pro.ID {
		t.Fatalf("expected sorted order")
	}

	if err := svc.SortPlans(ctx, nil); !errors.Is(err, ErrEmptySortBatch) {
		t.Fatalf("expected ErrEmptySortBatch, got %v", err)
	}
}

func TestGetFeatureMaterializesFromCatalog(t *testing.T) {
	t.Parallel()

	svc := newTestPlanService(t)
	ctx := context.Background()
	plan := mustCreatePlan(t, svc, "Free")

	feature, err := svc.GetFeature(ctx, plan.ID, FeatureSites)
	if err != nil {
		t.Fatalf("get feature: %v", err)
	}
	if feature.Code != FeatureSites {
		t.Fatalf("expected code %q, got %q", FeatureSites, feature.Code)
	}
	if feature.Limit != 1 || !feature.Enabled {
		t.Fatalf("expected catalog defaults, got limit=%d enabled=%v", feature.Limit, feature.Enabled)
	}
	if feature.Type != FeatureTypeLimit {
		t.Fatalf("expected limit feature type, got %q", feature.Type)
	}
	if feature.ID != identity.PlanFeatureUUID(plan.ID, FeatureSites) {
		t.Fatalf("expected deterministic feature id")
	}
}

func TestGetFeatureIsIdempotent(t *testing.T) {
	t.Parallel()

	svc := newTestPlanService(t)
	ctx := context.Background()
	plan := mustCreatePlan(t, svc, "Free")

	first, err := svc.GetFeature(ctx, plan.ID, FeaturePages)
	if err != nil {
		t.Fatalf("get feature: %v", err)
	}
	second, err := svc.GetFeature(ctx, plan.ID, FeaturePages)
	if err != nil {
		t.Fatalf("get feature: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected one row per (plan, code), got %s and %s", first.ID, second.ID)
	}

	features, err := svc.ListFeatures(ctx, plan.ID)
	if err != nil {
		t.Fatalf("list features: %v", err)
	}
	if len(features) != 1 {
		t.Fatalf("expected 1 materialized feature, got %d", len(features))
	}
}

func TestGetFeatureUnknownCode(t *testing.T) {
	t.Parallel()

	svc := newTestPlanService(t)
	plan := mustCreatePlan(t, svc, "Free")

	_, err := svc.GetFeature(context.Background(), plan.ID, "consume.widgets")
	if !errors.Is(err, ErrCodeUnknown) {
		t.Fatalf("expected ErrCodeUnknown, got %v", err)
	}
}

func TestUpdateFeatureOverridesEntitlement(t *testing.T) {
	t.Parallel()

	svc := newTestPlanService(t)
	ctx := context.Background()
	plan := mustCreatePlan(t, svc, "Pro")

	limit := -1
	feature, err := svc.UpdateFeature(ctx, UpdateFeatureInput{
		PlanID: plan.ID,
		Code:   FeatureSites,
		Limit:  &limit,
	})
	if err != nil {
		t.Fatalf("update feature: %v", err)
	}
	if feature.Limit != -1 {
		t.Fatalf("expected unlimited override, got %d", feature.Limit)
	}

	if err := svc.CheckLimit(ctx, plan.ID, FeatureSites, 10000); err != nil {
		t.Fatalf("negative limit must allow any usage, got %v", err)
	}
}

func TestCheckLimit(t *testing.T) {
	t.Parallel()

	svc := newTestPlanService(t)
	ctx := context.Background()
	plan := mustCreatePlan(t, svc, "Free")

	if err := svc.CheckLimit(ctx, plan.ID, FeatureSites, 0); err != nil {
		t.Fatalf("expected usage under limit to pass, got %v", err)
	}

	err := svc.CheckLimit(ctx, plan.ID, FeatureSites, 1)
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected limit error, got %v", err)
	}
	if limitErr.Code != FeatureSites || limitErr.Limit != 1 || limitErr.Used != 1 {
		t.Fatalf("unexpected limit error %+v", limitErr)
	}

	disabled := false
	if _, err := svc.UpdateFeature(ctx, UpdateFeatureInput{PlanID: plan.ID, Code: FeatureAI, Enabled: &disabled}); err != nil {
		t.Fatalf("update feature: %v", err)
	}
	if err := svc.CheckLimit(ctx, plan.ID, FeatureAI, 0); !errors.As(err, &limitErr) {
		t.Fatalf("disabled feature must reject usage, got %v", err)
	}

	zero := 0
	enabled := true
	if _, err := svc.UpdateFeature(ctx, UpdateFeatureInput{PlanID: plan.ID, Code: FeaturePages, Enabled: &enabled, Limit: &zero}); err != nil {
		t.Fatalf("update feature: %v", err)
	}
	if err := svc.CheckLimit(ctx, plan.ID, FeaturePages, 0); !errors.As(err, &limitErr) {
		t.Fatalf("zero limit must reject usage, got %v", err)
	}
}

func TestDeletePlanCascadesFeatures(t *testing.T) {
	t.Parallel()

	svc := newTestPlanService(t)
	ctx := context.Background()
	plan := mustCreatePlan(t, svc, "Free")

	if _, err := svc.GetFeature(ctx, plan.ID, FeatureSites); err != nil {
		t.Fatalf("get feature: %v", err)
	}

	if err := svc.DeletePlan(ctx, plan.ID); err != nil {
		t.Fatalf("delete plan: %v", err)
	}
	if _, err := svc.GetPlan(ctx, plan.ID); !isNotFound(err) {
		t.Fatalf("expected plan to be gone, got %v", err)
	}
	features, err := svc.ListFeatures(ctx, plan.ID)
	if err != nil {
		t.Fatalf("list features: %v", err)
	}
	if len(features) != 0 {
		t.Fatalf("expected features to cascade, got %d", len(features))
	}
}

func TestPlanPricesNestedIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestPlanService(t)

	plan, err := svc.CreatePlan(ctx, CreatePlanInput{
		Name:   "Pro",
		Status: domain.StatusPublished,
		Prices: map[string]any{
			"monthly": map[string]any{"amount": 12, "currency": "usd"},
			"tiers":   []any{map[string]any{"seats": 5}},
		},
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	monthly := plan.Prices["monthly"].(map[string]any)
	monthly["amount"] = 99
	plan.Prices["tiers"].([]any)[0].(map[string]any)["seats"] = 500

	stored, err := svc.GetPlan(ctx, plan.ID)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if got := stored.Prices["monthly"].(map[string]any)["amount"]; got != 12 {
		t.Fatalf("expected stored nested price untouched, got %v", got)
	}
	if got := stored.Prices["tiers"].([]any)[0].(map[string]any)["seats"]; got != 5 {
		t.Fatalf("expected stored tier untouched, got %v", got)
	}
}
