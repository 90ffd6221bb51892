package sitescmd

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/sites"
)

func TestGenerateSiteCommandValidation(t *testing.T) {
	msg := GenerateSiteCommand{}
	if err := msg.Validate(); err == nil {
		t.Fatal("expected validation error for empty message")
	}

	msg = GenerateSiteCommand{OwnerID: uuid.New(), Address: "corner-bakery", Name: "Corner Bakery"}
	if err := msg.Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
}

func TestGenerateSiteHandler(t *testing.T) {
	svc := sites.NewService(sites.NewMemorySiteRepository(), sites.NewMemoryPageRepository())
	handler := NewGenerateSiteHandler(svc, nil)
	ctx := context.Background()
	owner := uuid.New()

	if err := handler.Execute(ctx, GenerateSiteCommand{
		OwnerID:  owner,
		Address:  "corner-bakery",
		Name:     "Corner Bakery",
		Category: "bakery",
		Sections: []string{"banner", "text"},
	}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	site, err := svc.GetSiteByAddress(ctx, "corner-bakery")
	if err != nil {
		t.Fatalf("get site: %v", err)
	}
	pages, err := svc.ListPages(ctx, site.ID)
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if len(pages) != 1 || pages[0].Slug != "home" {
		t.Fatalf("expected generated home page, got %+v", pages)
	}
}

func TestGenerateSiteHandlerValidationCategory(t *testing.T) {
	svc := sites.NewService(sites.NewMemorySiteRepository(), sites.NewMemoryPageRepository())
	handler := NewGenerateSiteHandler(svc, nil)

	err := handler.Execute(context.Background(), GenerateSiteCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
