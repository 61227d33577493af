package tui

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme holds the prefix the session puts in front of validation messages.
type Theme struct {
	ErrorPrefix string
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithSubmitTransformer lets callers mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(s *Session) {
		s.submitTransformer = fn
	}
}

// WithTheme overrides the default error prefix.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithMaxAttempts bounds how often a field is re-prompted after failing
// validation. Zero means no limit.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}
