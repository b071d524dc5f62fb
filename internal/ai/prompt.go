package ai

import (
	"fmt"
	"regexp"
	"strings"

	"quotegen/internal/core"
)

// maxOriginalChars caps how much stored narrative is re-embedded into a
// revision prompt. Fixed design parameter, not configuration.
const maxOriginalChars = 12000

const truncationNote = "\n\n(Note: the original text was truncated for length.)"

var whitespaceRun = regexp.MustCompile(`\s+`)

// cleanField normalizes a free-text input field before interpolation into
// a prompt: runs of whitespace collapse to one space, ends are trimmed.
// Only applied to input fields (names, titles) — never to stored narrative
// text, whose line breaks must survive a revision round-trip.
func cleanField(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// buildQuotePrompt assembles the initial generation prompt from company,
// client, quote, and item data.
func buildQuotePrompt(company *core.Company, client *core.Client, quote *core.Quote, items []core.QuoteItem) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %s: %s x %s = %s",
			cleanField(it.Title),
			core.FormatAmount(it.Quantity),
			core.FormatAmount(it.UnitPrice),
			core.FormatAmount(it.LineTotal),
		))
	}

	return fmt.Sprintf(`Write a professional business quote cover text.

Company: %s
Client: %s

Quote number: %s
Issue date: %s
Total: %s %s

Items:
%s

Include:
1. A short introduction.
2. The list of items.
3. Payment terms (net 30 days).
4. A call to action.

Do not use any markup formatting. Separate paragraphs with real blank lines.`,
		cleanField(company.Name),
		cleanField(client.Name),
		cleanField(quote.QuoteNumber),
		quote.IssueDate.Format("2006-01-02"),
		core.FormatAmount(quote.Total),
		cleanField(quote.Currency),
		strings.Join(lines, "\n"),
	)
}

// buildRevisionPrompt embeds the stored narrative between explicit
// delimiters followed by the user's change instruction. The original text
// is only end-trimmed — its internal line breaks are preserved — and is
// truncated at maxOriginalChars with a note appended to the prompt.
func buildRevisionPrompt(original, instruction string) string {
	text := strings.TrimSpace(original)
	note := ""
	if runes := []rune(text); len(runes) > maxOriginalChars {
		text = string(runes[:maxOriginalChars])
		note = truncationNote
	}

	return fmt.Sprintf(`Below is the original quote text, delimited between ===ORIGINAL=== and ===END===:

===ORIGINAL===
%s
===END===

Requested change:
%s

Instructions:
- Apply the requested change to the ORIGINAL text and return only the final updated text.
- Keep a professional tone and preserve the existing line breaks.
- Do not explain the changes, do not return JSON, and do not ask for more information.
- Do not use any markup formatting.%s`,
		text,
		cleanField(instruction),
		note,
	)
}
