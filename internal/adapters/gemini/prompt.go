package gemini

import (
	_ "embed"
	"fmt"
	"strings"
)

// promptTemplate is the fixed instruction set sent with every generation
// request. The single %s slot receives the user's prompt. The template pins
// the generated class name so downstream scene detection has a stable target.
//
//go:embed prompt.txt
var promptTemplate string

// buildPrompt embeds the user request into the instruction template.
func buildPrompt(userPrompt string) string {
	return fmt.Sprintf(promptTemplate, userPrompt)
}

// stripFences removes a markdown code fence from a model response that
// ignored the raw-code instruction, then trims surrounding whitespace.
func stripFences(text string) string {
	if _, rest, ok := strings.Cut(text, "```python"); ok {
		text, _, _ = strings.Cut(rest, "```")
	}
	return strings.TrimSpace(text)
}
