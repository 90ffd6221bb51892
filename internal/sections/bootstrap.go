package sections

// NewDefaultRegistry aggregates every built-in section type into a frozen
// registry. Hosts that ship custom types build their own registry from
// NewRegistry and freeze it themselves.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, t := range builtinTypes() {
		registry.MustRegister(t)
	}
	return registry.Freeze()
}

// textSchema builds a permissive object schema for the named string fields.
// Renderers ignore unknown keys, so additional properties stay allowed.
func textSchema(fields ...string) map[string]any {
	properties := make(map[string]any, len(fields))
	for _, field := range fields {
		properties[field] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": true,
	}
}

func builtinTypes() []Type {
	return []Type{
		{
			Key:           "banner",
			Name:          "Banner",
			Icon:          "layout-top",
			EditComponent: "sections/banner/edit",
			ViewComponent: "sections/banner/view",
			Schema:        textSchema("title", "subtitle", "label", "link", "image"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Heading", "subtitle": ""},
				Settings: map[string]any{"align": "left", "height": "380", "width": "100"},
			},
		},
		{
			Key:           "text",
			Name:          "Text",
			Icon:          "align-left",
			EditComponent: "sections/text/edit",
			ViewComponent: "sections/text/view",
			Schema:        textSchema("title", "subtitle", "text"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Title", "text": ""},
				Settings: map[string]any{"align": "left", "split_title": false},
			},
		},
		{
			Key:           "cards",
			Name:          "Cards",
			Icon:          "layout-grid",
			EditComponent: "sections/cards/edit",
			ViewComponent: "sections/cards/view",
			Schema:        textSchema("title", "subtitle"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Cards"},
				Settings: map[string]any{"style": "grid", "desktop_grid": 3, "mobile_grid": 1},
				Items: []ItemSkeleton{
					{Content: map[string]any{"title": "Card", "text": ""}},
					{Content: map[string]any{"title": "Card", "text": ""}},
					{Content: map[string]any{"title": "Card", "text": ""}},
				},
			},
		},
		{
			Key:           "logos",
			Name:          "Logos",
			Icon:          "images",
			EditComponent: "sections/logos/edit",
			ViewComponent: "sections/logos/view",
			Schema:        textSchema("title"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Logos"},
				Settings: map[string]any{"display": "carousel", "grayscale": true},
				Items: []ItemSkeleton{
					{Content: map[string]any{"image": nil}},
					{Content: map[string]any{"image": nil}},
					{Content: map[string]any{"image": nil}},
					{Content: map[string]any{"image": nil}},
				},
			},
		},
		{
			Key:           "pricing",
			Name:          "Pricing",
			Icon:          "credit-card",
			EditComponent: "sections/pricing/edit",
			ViewComponent: "sections/pricing/view",
			Schema:        textSchema("title", "subtitle"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Pricing"},
				Settings: map[string]any{"currency": "USD", "billing": "monthly"},
				Items: []ItemSkeleton{
					{
						Content:  map[string]any{"title": "Starter", "price": "0", "features": []any{}},
						Settings: map[string]any{"featured": false},
					},
					{
						Content:  map[string]any{"title": "Pro", "price": "10", "features": []any{}},
						Settings: map[string]any{"featured": true},
					},
				},
			},
		},
		{
			Key:           "list",
			Name:          "List",
			Icon:          "list",
			EditComponent: "sections/list/edit",
			ViewComponent: "sections/list/view",
			Schema:        textSchema("title"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "List"},
				Settings: map[string]any{"style": "checklist"},
				Items: []ItemSkeleton{
					{Content: map[string]any{"title": "First item"}},
					{Content: map[string]any{"title": "Second item"}},
				},
			},
		},
		{
			Key:           "review",
			Name:          "Review",
			Icon:          "message-square",
			EditComponent: "sections/review/edit",
			ViewComponent: "sections/review/view",
			Schema:        textSchema("title"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Reviews"},
				Settings: map[string]any{"display": "carousel", "show_rating": true},
				Items: []ItemSkeleton{
					{Content: map[string]any{"name": "", "text": "", "rating": 5}},
				},
			},
		},
		{
			Key:           "faq",
			Name:          "FAQ",
			Icon:          "help-circle",
			EditComponent: "sections/faq/edit",
			ViewComponent: "sections/faq/view",
			Schema:        textSchema("title", "subtitle"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Frequently asked questions"},
				Settings: map[string]any{"collapsed": true},
				Items: []ItemSkeleton{
					{Content: map[string]any{"question": "Question?", "answer": ""}},
				},
			},
		},
		{
			Key:           "gallery",
			Name:          "Gallery",
			Icon:          "image",
			EditComponent: "sections/gallery/edit",
			ViewComponent: "sections/gallery/view",
			Schema:        textSchema("title"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Gallery"},
				Settings: map[string]any{"desktop_grid": 3, "mobile_grid": 2, "spacing": "md"},
				Items: []ItemSkeleton{
					{Content: map[string]any{"image": nil}},
					{Content: map[string]any{"image": nil}},
				},
			},
		},
		{
			Key:           "form",
			Name:          "Form",
			Icon:          "inbox",
			EditComponent: "sections/form/edit",
			ViewComponent: "sections/form/view",
			Schema:        textSchema("title", "subtitle", "button"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Get in touch", "button": "Send"},
				Settings: map[string]any{"align": "center"},
				Form: map[string]any{
					"email":   true,
					"name":    true,
					"message": true,
					"phone":   false,
				},
			},
		},
		{
			Key:           "booking",
			Name:          "Booking",
			Icon:          "calendar",
			EditComponent: "sections/booking/edit",
			ViewComponent: "sections/booking/view",
			Schema:        textSchema("title", "subtitle", "button"),
			Skeleton: Skeleton{
				Content:  map[string]any{"title": "Book a session", "button": "Book"},
				Settings: map[string]any{"duration_minutes": 30, "timezone": "UTC"},
				Form: map[string]any{
					"email": true,
					"name":  true,
					"date":  true,
				},
			},
		},
	}
}
