package tui

// Theme captures optional formatting hints applied when printing messages.
// Keep minimal to avoid coupling the flow to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme is used when no theme is configured.
var DefaultTheme = Theme{
	InfoPrefix:  "✔ ",
	ErrorPrefix: "✖ ",
}

// Option configures a Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Collector) {
		c.theme = theme
	}
}

// WithMaxAttempts bounds how many submit attempts a session may make.
// Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}
