package sections

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/identity"
)

func TestRegistryRegisterCanonicalKey(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if err := registry.Register(Type{Key: " Banner ", Name: "Banner"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, ok := registry.Get("BANNER")
	if !ok {
		t.Fatalf("expected lookup by canonical key to succeed")
	}
	if got.Key != "banner" {
		t.Fatalf("expected canonical key banner, got %q", got.Key)
	}
	if !registry.Has(" banner ") {
		t.Fatalf("expected Has to trim and lowercase the key")
	}
}

func TestRegistryRejectsDuplicateAndEmptyKeys(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if err := registry.Register(Type{Key: "text"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(Type{Key: "TEXT"}); err == nil {
		t.Fatalf("expected duplicate key to be rejected")
	}
	if err := registry.Register(Type{Key: "   "}); err == nil {
		t.Fatalf("expected empty key to be rejected")
	}
}

func TestRegistryFreezeBlocksRegistration(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if err := registry.Register(Type{Key: "banner"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	registry.Freeze()

	err := registry.Register(Type{Key: "text"})
	if err == nil {
		t.Fatalf("expected registration after freeze to fail")
	}
	if !strings.Contains(err.Error(), "frozen") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistryGetReturnsIsolatedCopies(t *testing.T) {
	t.Parallel()

	registry := NewDefaultRegistry()
	first, ok := registry.Get("banner")
	if !ok {
		t.Fatalf("expected banner type")
	}
	first.Skeleton.Content["title"] = "mutated"
	first.Skeleton.Settings["align"] = "right"

	second, _ := registry.Get("banner")
	if second.Skeleton.Content["title"] != "Heading" {
		t.Fatalf("skeleton content leaked caller mutation: %#v", second.Skeleton.Content)
	}
	if second.Skeleton.Settings["align"] != "left" {
		t.Fatalf("skeleton settings leaked caller mutation: %#v", second.Skeleton.Settings)
	}
}

func TestDefaultRegistryCatalog(t *testing.T) {
	t.Parallel()

	registry := NewDefaultRegistry()
	types := registry.List()
	if len(types) == 0 {
		t.Fatalf("expected builtin types")
	}

	previous := ""
	byKey := map[string]Type{}
	for _, sectionType := range types {
		if sectionType.Key <= previous {
			t.Fatalf("expected List sorted by key, got %q after %q", sectionType.Key, previous)
		}
		previous = sectionType.Key
		byKey[sectionType.Key] = sectionType
	}

	for _, key := range []string{"banner", "text", "cards", "pricing", "faq", "review"} {
		if _, ok := byKey[key]; !ok {
			t.Fatalf("expected builtin type %q", key)
		}
	}

	banner := byKey["banner"]
	if banner.Skeleton.Content["title"] != "Heading" {
		t.Fatalf("unexpected banner skeleton content %#v", banner.Skeleton.Content)
	}
	if banner.Skeleton.Settings["height"] != "380" {
		t.Fatalf("unexpected banner skeleton settings %#v", banner.Skeleton.Settings)
	}
	if banner.Schema == nil {
		t.Fatalf("expected banner schema")
	}
}

func TestRegistryAssignsDeterministicTypeIDs(t *testing.T) {
	t.Parallel()

	first := NewRegistry()
	if err := first.Register(Type{Key: " Banner ", Name: "Banner"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	second := NewRegistry()
	if err := second.Register(Type{Key: "banner", Name: "Banner"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	a, _ := first.Get("banner")
	b, _ := second.Get("banner")
	if a.ID == uuid.Nil {
		t.Fatalf("expected registry to assign a type id")
	}
	if a.ID != b.ID {
		t.Fatalf("expected the same key to map to the same id, got %s and %s", a.ID, b.ID)
	}
	if a.ID != identity.SectionTypeUUID("banner") {
		t.Fatalf("expected id derived from the canonical key")
	}
}
