package engine

// Config holds engine tuning values.
type Config struct {
	TargetFPS     int     `json:"targetFps"`
	FixedTimestep float64 `json:"fixedTimestep"`
	MaxEntities   int     `json:"maxEntities"`
	ClearColor    Color   `json:"clearColor"`
}

// DefaultConfig returns the standard 60 Hz configuration.
func DefaultConfig() Config {
	return Config{
		TargetFPS:     60,
		FixedTimestep: 1.0 / 60.0,
		MaxEntities:   10000,
		ClearColor:    Color{0.1, 0.1, 0.12, 1},
	}
}
