package toyplex

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yiyinglai/toyplex/logger"
)

// Option defines an option for altering the behavior of a Model. See the
// descriptions of functions returning instances of this type for implemented
// options.
type Option func(*Config) error

// Config is the model configuration with the options applied.
type Config struct {
	Logger zerolog.Logger // defaults to the global toyplex logger

	// Tolerance guards the simplex engine's sign and ratio tests against
	// floating-point noise. Defaults to 1e-9.
	Tolerance float64

	// IntegralityTolerance bounds how far a value may sit from its rounded
	// form and still count as integral. Looser than Tolerance so accumulated
	// pivot error cannot make branching chase its own rounding noise.
	// Defaults to 1e-6.
	IntegralityTolerance float64

	// NodeLimit caps the number of nodes Optimize may explore; 0 means
	// unlimited.
	NodeLimit int
}

// WithLogger overrides the logger used during the solve.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *Config) error {
		cfg.Logger = l
		return nil
	}
}

// WithTolerance sets the numerical tolerance of the simplex engine.
func WithTolerance(eps float64) Option {
	return func(cfg *Config) error {
		if eps <= 0 {
			return fmt.Errorf("tolerance must be positive, got %g", eps)
		}
		cfg.Tolerance = eps
		return nil
	}
}

// WithIntegralityTolerance sets the epsilon used to decide whether a
// relaxation value counts as integral.
func WithIntegralityTolerance(eps float64) Option {
	return func(cfg *Config) error {
		if eps <= 0 {
			return fmt.Errorf("integrality tolerance must be positive, got %g", eps)
		}
		cfg.IntegralityTolerance = eps
		return nil
	}
}

// WithNodeLimit caps the number of branch-and-bound nodes explored in one
// Optimize call. The search stops with ErrNodeLimit when the cap is hit and
// may be resumed by calling Optimize again.
func WithNodeLimit(limit int) Option {
	return func(cfg *Config) error {
		if limit < 0 {
			return fmt.Errorf("node limit must be non-negative, got %d", limit)
		}
		cfg.NodeLimit = limit
		return nil
	}
}

func newConfig(opts ...Option) (Config, error) {
	cfg := Config{
		Logger:               logger.Logger(),
		Tolerance:            1e-9,
		IntegralityTolerance: 1e-6,
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
