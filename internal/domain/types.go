package domain

// Status represents lifecycle states for builder entities
type Status string

const (
	// StatusDraft indicates content still under preparation
	StatusDraft Status = "draft"
	// StatusPublished identifies content available to visitors
	StatusPublished Status = "published"
	// StatusArchived marks content retained for history but no longer served
	StatusArchived Status = "archived"
)
