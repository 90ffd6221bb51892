package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	sitebuilder "github.com/goliatone/go-sitebuilder"
	"github.com/goliatone/go-sitebuilder/internal/di"
	"github.com/goliatone/go-sitebuilder/internal/generation"
	"github.com/goliatone/go-sitebuilder/internal/sections"
	"github.com/goliatone/go-sitebuilder/internal/sites"
	"github.com/google/uuid"
)

// Demo walkthrough: generate a starter site, edit a section, run AI copy
// generation with a static provider, and optionally serve the admin API.
//
//	go run ./cmd/example
//	go run ./cmd/example serve
func main() {
	ctx := context.Background()

	cfg := sitebuilder.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Features.Logger = true

	module, err := sitebuilder.New(cfg,
		di.WithTextProvider(&generation.StaticTextProvider{
			Result: generation.CompletionResult{Fields: map[string]any{
				"title":    "Fresh Bread, Every Morning",
				"subtitle": "Family bakery on the corner of 5th and Main.",
			}},
		}),
		di.WithImageProvider(&generation.StaticImageProvider{
			Result: generation.ImageResult{
				URL: "https://images.example.com/bakery.jpg",
				Alt: "sourdough loaves on a wooden counter",
			},
		}),
	)
	if err != nil {
		log.Fatalf("initialise builder: %v", err)
	}

	owner := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	site, err := module.Sites().GenerateSite(ctx, sites.GenerateSiteInput{
		OwnerID:  owner,
		Address:  "corner-bakery",
		Name:     "Corner Bakery",
		Category: "bakery",
		Sections: []string{"banner", "text", "faq"},
	})
	if err != nil {
		log.Fatalf("generate site: %v", err)
	}
	log.Printf("generated site %s at /%s", site.ID, site.Address)

	pages, err := module.Sites().ListPages(ctx, site.ID)
	if err != nil {
		log.Fatalf("list pages: %v", err)
	}
	home := pages[0]

	records, err := module.Sections().ListByPage(ctx, home.ID)
	if err != nil {
		log.Fatalf("list sections: %v", err)
	}
	log.Printf("page %q carries %d sections", home.Slug, len(records))

	banner := records[0]
	if _, err := module.Generation().GenerateText(ctx, banner.ID, generation.Context{
		Category: "bakery",
		Prompt:   "a family bakery that has baked sourdough since 1982",
	}); err != nil {
		log.Fatalf("generate copy: %v", err)
	}
	if _, err := module.Generation().GenerateImage(ctx, banner.ID, generation.Context{Category: "bakery"}); err != nil {
		log.Fatalf("generate image: %v", err)
	}

	updated, err := module.Sections().Update(ctx, sections.UpdateInput{
		SectionID: banner.ID,
		Settings:  map[string]any{"align": "center", "height": "420"},
	})
	if err != nil {
		log.Fatalf("update section: %v", err)
	}

	encoded, _ := json.MarshalIndent(updated, "", "  ")
	log.Printf("banner after generation:\n%s", encoded)

	if len(os.Args) > 1 && os.Args[1] == "serve" {
		mux := http.NewServeMux()
		if err := module.RegisterAdminRoutes(mux); err != nil {
			log.Fatalf("register admin routes: %v", err)
		}
		log.Printf("admin api listening on :8080 (try GET /admin/api/sections/types)")
		log.Fatal(http.ListenAndServe(":8080", mux))
	}
}
