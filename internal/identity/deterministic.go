package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SectionTypeUUID identifies a registry-declared section type.
func SectionTypeUUID(key string) uuid.UUID {
	return UUID("go-sitebuilder:section_type:" + strings.ToLower(strings.TrimSpace(key)))
}

// PlanUUID identifies a catalog-seeded subscription plan.
func PlanUUID(slug string) uuid.UUID {
	return UUID("go-sitebuilder:plan:" + strings.ToLower(strings.TrimSpace(slug)))
}

// PlanFeatureUUID identifies the feature row for a (plan, code) pair. Lazy
// feature creation relies on this being stable so concurrent lookups converge
// on the same row id.
func PlanFeatureUUID(planID uuid.UUID, code string) uuid.UUID {
	return UUID("go-sitebuilder:plan_feature:" + planID.String() + ":" + strings.ToLower(strings.TrimSpace(code)))
}
