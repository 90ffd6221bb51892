package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDDeterministic(t *testing.T) {
	first := UUID("go-sitebuilder:test:alpha")
	second := UUID("go-sitebuilder:test:alpha")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected stable uuid, got %s and %s", first, second)
	}
	if UUID("go-sitebuilder:test:beta") == first {
		t.Fatalf("expected distinct keys to produce distinct uuids")
	}
	if UUID("   ") != uuid.Nil {
		t.Fatalf("expected blank key to map to uuid.Nil")
	}
}

func TestPlanFeatureUUIDScopedByPlan(t *testing.T) {
	planA := uuid.New()
	planB := uuid.New()

	if PlanFeatureUUID(planA, "consume.sites") != PlanFeatureUUID(planA, "Consume.Sites") {
		t.Fatalf("expected code casing to be normalized")
	}
	if PlanFeatureUUID(planA, "consume.sites") == PlanFeatureUUID(planB, "consume.sites") {
		t.Fatalf("expected feature ids scoped per plan")
	}
	if PlanFeatureUUID(planA, "consume.sites") == PlanFeatureUUID(planA, "consume.pages") {
		t.Fatalf("expected feature ids scoped per code")
	}
}

func TestEntityKeysDoNotCollide(t *testing.T) {
	if SectionTypeUUID("banner") == PlanUUID("banner") {
		t.Fatalf("expected entity prefixes to prevent collisions")
	}
}
