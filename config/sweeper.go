package config

import "time"

// SweeperConfig controls the background sweep of expired sessions.
// The sweep is opportunistic hygiene: correctness never depends on it,
// since reads check expiry in SQL.
type SweeperConfig struct {
	// Interval between sweep passes.
	Interval time.Duration `env:"SWEEPER_INTERVAL" envDefault:"1h"`

	// JitterMax is the random delay before the first pass so multiple
	// instances started together do not sweep in lockstep.
	JitterMax time.Duration `env:"SWEEPER_JITTER_MAX" envDefault:"1m"`
}

// Sanitize applies guardrails to sweeper configuration.
func (s *SweeperConfig) Sanitize() {
	if s.Interval < time.Minute {
		s.Interval = time.Hour
	}
	if s.JitterMax < 0 {
		s.JitterMax = 0
	}
}
