// Package security strips markup from user-authored text before it is stored.
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer cleans user-authored text such as comments, bios and ad copy.
type TextSanitizer interface {
	// Sanitize removes every HTML element and surrounding whitespace.
	Sanitize(raw string) string
}

type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer returns a sanitizer that allows no markup at all. The result is
// plain text: entities produced by stripping are decoded again, so callers escape on output.
// bluemonday policies are safe for concurrent use.
func NewTextSanitizer() TextSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *textSanitizer) Sanitize(raw string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(raw)))
}
