package domain

import "time"

// RunConfig bundles generation parameters for one completion call.
// Zero values mean "use the client's configured default".
type RunConfig struct {
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}
