package render

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans answer values before they are substituted into a template.
// *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(string) string
}

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

// StrictSanitizer strips every tag from answers and escapes the remaining
// text, so user input can never inject markup into a policy.
func StrictSanitizer() Sanitizer {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
