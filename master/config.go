package master

import (
	"errors"
	"fmt"
	"time"

	"github.com/edgelink/go-modbus/logger"
)

// Default exchange policy values.
const (
	// DefaultRetries is the default number of additional write/read cycles
	// after the first attempt.
	DefaultRetries = 3

	// DefaultWaitToRetry is the default pause before a busy/acknowledge
	// re-attempt.
	DefaultWaitToRetry = 250 * time.Millisecond
)

// Config holds the exchange policy for a Transactor.
//
// A Config is immutable once built; changing policy for a live Transactor
// means building a new Config and a new Transactor.
type Config struct {
	// retries is the number of additional full write/read cycles allowed
	// after the first attempt: total attempts = retries + 1.
	retries int

	// waitToRetry is the pause before an acknowledge re-read or a
	// device-busy resubmission. Zero is accepted and degenerates to an
	// immediate re-attempt.
	waitToRetry time.Duration

	logger logger.Logger
	diag   Diagnostics
}

// NewConfig creates an exchange policy configuration.
//
// opts are functional options applied in order; see With* functions.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		retries:     DefaultRetries,
		waitToRetry: DefaultWaitToRetry,
		logger:      logger.GetLogger(),
		diag:        NopDiagnostics(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Retries returns the retry budget: additional attempts beyond the first.
func (cfg *Config) Retries() int { return cfg.retries }

// WaitToRetry returns the busy/acknowledge wait interval.
func (cfg *Config) WaitToRetry() time.Duration { return cfg.waitToRetry }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithRetries sets the retry budget: the number of additional full write/read
// cycles after the first attempt. Negative values are rejected.
func WithRetries(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 0 {
			return fmt.Errorf("master: retries %d must be non-negative", n)
		}
		cfg.retries = n

		return nil
	})
}

// WithWaitToRetry sets the pause before a busy/acknowledge re-attempt.
//
// Negative durations are rejected. Zero is accepted and degenerates to an
// immediate re-attempt.
func WithWaitToRetry(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < 0 {
			return fmt.Errorf("master: wait to retry %v must be non-negative", d)
		}
		cfg.waitToRetry = d

		return nil
	})
}

// WithLogger sets the logger for the engine.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("master: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}

// WithDiagnostics sets the diagnostics collaborator notified on every
// transient-fault retry and every acknowledge/busy wait.
func WithDiagnostics(d Diagnostics) Option {
	return optFunc(func(cfg *Config) error {
		if d == nil {
			return errors.New("master: diagnostics must not be nil")
		}
		cfg.diag = d

		return nil
	})
}
