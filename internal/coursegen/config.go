package coursegen

// FreeCourseLimit is the number of courses a profile may create without
// a premium entitlement.
const FreeCourseLimit = 1

// Config holds course outline generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for outline generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}
