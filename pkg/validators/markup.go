package validators

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfields/pkg/fields"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// NoMarkup fails when a string value contains HTML. The value is run through
// a strict bluemonday policy; any element or attribute it strips counts as
// markup.
func NoMarkup(message ...string) fields.Validator {
	msg := pick(message, MessageMarkup)
	return func(value any, ctx fields.ValidationContext) {
		s, ok := value.(string)
		if !ok || s == "" {
			return
		}
		if ContainsMarkup(s) {
			ctx.AddViolation(msg)
		}
	}
}

// ContainsMarkup reports whether s holds anything the strict policy removes.
// Entity escaping alone does not count.
func ContainsMarkup(s string) bool {
	cleaned := html.UnescapeString(policy().Sanitize(s))
	return cleaned != html.UnescapeString(s)
}

func policy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}
