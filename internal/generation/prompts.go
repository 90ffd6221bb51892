package generation

import (
	"fmt"
	"strings"
)

// promptTemplates maps a section type to the completion instruction used for
// it. %[1]s is the site category, %[2]s the user's business description.
var promptTemplates = map[string]string{
	"banner": `Write a landing page hero for a %[1]s business described as: %[2]s.
Return JSON with keys "title" (under 8 words) and "subtitle" (one sentence).`,
	"text": `Write a short introduction paragraph for a %[1]s business described as: %[2]s.
Return JSON with keys "title" and "subtitle".`,
	"cards": `Write a services overview headline for a %[1]s business described as: %[2]s.
Return JSON with keys "title" and "subtitle".`,
	"pricing": `Write a pricing section headline for a %[1]s business described as: %[2]s.
Return JSON with keys "title" and "subtitle".`,
	"faq": `Write a FAQ section headline for a %[1]s business described as: %[2]s.
Return JSON with keys "title" and "subtitle".`,
	"review": `Write a testimonials headline for a %[1]s business described as: %[2]s.
Return JSON with keys "title" and "subtitle".`,
}

const defaultPromptTemplate = `Write a section headline for a %[1]s business described as: %[2]s.
Return JSON with keys "title" and "subtitle".`

// BuildPrompt renders the instruction for a section type and generation context.
func BuildPrompt(sectionType string, genCtx Context) string {
	template, ok := promptTemplates[strings.ToLower(strings.TrimSpace(sectionType))]
	if !ok {
		template = defaultPromptTemplate
	}

	category := strings.TrimSpace(genCtx.Category)
	if category == "" {
		category = "general"
	}
	prompt := strings.TrimSpace(genCtx.Prompt)
	if prompt == "" {
		prompt = "a small business"
	}

	return fmt.Sprintf(template, category, prompt)
}
