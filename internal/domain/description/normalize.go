package description

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// attributeSeparator joins the parts of a canonical description.
const attributeSeparator = ", "

var (
	commaRun      = regexp.MustCompile(`,+`)
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{85}\x{FEFF}]+`)
	commaSpacing  = regexp.MustCompile(`,\s*`)
	trailingComma = regexp.MustCompile(`,\s*$`)
	segmentSplit  = regexp.MustCompile(`,\s*|\s+`)
)

// components accumulates the classified segments of a single call.
type components struct {
	mainNoun     string
	material     string
	style        []string
	attributes   []string
	measurements []string
	dimensions   []string
}

// Normalize turns free text into the canonical FASTENERS description. The
// result holds at most one element and is empty when the input is blank or
// nothing survives classification.
func Normalize(input string) []string {
	return fasteners.Normalize(input)
}

// Normalize turns free text into a canonical description using the taxonomy.
func (t *Taxonomy) Normalize(input string) []string {
	if isBlank(input) {
		return nil
	}

	segments := splitSegments(cleanInput(input))

	var parts components
	if idx, noun, ok := t.findMainNoun(segments); ok {
		parts.mainNoun = noun
		segments = append(segments[:idx:idx], segments[idx+1:]...)
	}

	for _, segment := range segments {
		t.classify(segment).apply(&parts, segment)
	}

	out := parts.assemble()
	if out == "" {
		return nil
	}
	return []string{out}
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, isSpace) == ""
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// cleanInput uppercases the text and canonicalizes comma and whitespace usage.
func cleanInput(input string) string {
	// Casers keep state, so one is built per call.
	out := cases.Upper(language.Und).String(input)
	out = commaRun.ReplaceAllString(out, ",")
	out = whitespaceRun.ReplaceAllString(out, " ")
	out = commaSpacing.ReplaceAllString(out, attributeSeparator)
	out = strings.TrimFunc(out, isSpace)
	return trailingComma.ReplaceAllString(out, "")
}

func splitSegments(cleaned string) []string {
	raw := segmentSplit.Split(cleaned, -1)
	segments := make([]string, 0, len(raw))
	for _, segment := range raw {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

func (t *Taxonomy) findMainNoun(segments []string) (int, string, bool) {
	for i, segment := range segments {
		if noun, ok := t.mainNoun(segment); ok {
			return i, noun, true
		}
	}
	return -1, "", false
}

func (c *components) assemble() string {
	parts := make([]string, 0, 2+len(c.style)+len(c.attributes)+len(c.measurements)+len(c.dimensions))
	parts = append(parts, c.mainNoun, c.material)
	parts = append(parts, c.style...)
	parts = append(parts, c.attributes...)
	for i, measurement := range c.measurements {
		if i < len(c.dimensions) && c.dimensions[i] != "" {
			parts = append(parts, c.dimensions[i]+" "+measurement)
			continue
		}
		parts = append(parts, measurement)
	}
	if len(c.dimensions) > len(c.measurements) {
		parts = append(parts, c.dimensions[len(c.measurements):]...)
	}

	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, attributeSeparator)
}
