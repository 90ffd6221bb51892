package plans

// Feature codes consumed elsewhere in the module.
const (
	FeatureSites = "consume.sites"
	FeaturePages = "consume.pages"
	FeatureAI    = "consume.ai"
)

// FeatureSkeleton holds the defaults a plan feature row is created from when
// it is first resolved for a plan.
type FeatureSkeleton struct {
	Code        string
	Name        string
	Description string
	Type        FeatureType
	Enabled     bool
	Limit       int
}

// featureCatalog is the closed set of known feature codes. Limit semantics:
// a negative limit means unlimited, zero means the feature is unavailable.
var featureCatalog = map[string]FeatureSkeleton{
	FeatureSites: {
		Code:        FeatureSites,
		Name:        "Sites",
		Description: "Number of sites the account may create.",
		Type:        FeatureTypeLimit,
		Enabled:     true,
		Limit:       1,
	},
	FeaturePages: {
		Code:        FeaturePages,
		Name:        "Pages",
		Description: "Number of pages allowed per site.",
		Type:        FeatureTypeLimit,
		Enabled:     true,
		Limit:       3,
	},
	FeatureAI: {
		Code:        FeatureAI,
		Name:        "AI generations",
		Description: "Number of AI content generations per billing cycle.",
		Type:        FeatureTypeLimit,
		Enabled:     true,
		Limit:       10,
	},
}

// FeatureSkeletonFor returns the catalog skeleton for a code.
func FeatureSkeletonFor(code string) (FeatureSkeleton, bool) {
	skeleton, ok := featureCatalog[code]
	return skeleton, ok
}

// FeatureCodes lists every catalog code. Order is not guaranteed.
func FeatureCodes() []string {
	codes := make([]string, 0, len(featureCatalog))
	for code := range featureCatalog {
		codes = append(codes, code)
	}
	return codes
}
