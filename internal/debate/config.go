package debate

import "time"

// Defaults for loop timing and history depth.
const (
	// DefaultHistoryLimit is how many messages each poll fetches.
	DefaultHistoryLimit = 5
	// DefaultPollInterval paces the monitored loop.
	DefaultPollInterval = 5 * time.Second
	// DefaultViolationInterval lets a turn-violation warning settle.
	DefaultViolationInterval = 10 * time.Second
	// DefaultExchangeInterval paces the adversarial and simulated loops.
	DefaultExchangeInterval = 10 * time.Second
)

// Config holds the timing knobs shared by the polling loops.
type Config struct {
	HistoryLimit      int
	PollInterval      time.Duration
	ViolationInterval time.Duration
	ExchangeInterval  time.Duration
}

// DefaultConfig returns the poll timings the original bot shipped with.
func DefaultConfig() Config {
	return Config{
		HistoryLimit:      DefaultHistoryLimit,
		PollInterval:      DefaultPollInterval,
		ViolationInterval: DefaultViolationInterval,
		ExchangeInterval:  DefaultExchangeInterval,
	}
}

func (c Config) withDefaults() Config {
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.ViolationInterval <= 0 {
		c.ViolationInterval = DefaultViolationInterval
	}
	if c.ExchangeInterval <= 0 {
		c.ExchangeInterval = DefaultExchangeInterval
	}
	return c
}
