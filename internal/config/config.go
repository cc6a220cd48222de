// Package config provides configuration loading and validation for SRP-6a peers.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// Environment variables that override the parameter set of a loaded configuration.
const (
	EnvDigest = "SRP6A_DIGEST"
	EnvGroup  = "SRP6A_GROUP"
)

// Config represents the SRP-6a authentication configuration.
type Config struct {
	SRP       SRPSettings       `yaml:"srp"`
	Handshake HandshakeSettings `yaml:"handshake"`
	RateLimit RateLimitSettings `yaml:"rate_limit"`
	Logging   LoggingSettings   `yaml:"logging"`
}

// SRPSettings selects the parameter set shared by both peers.
type SRPSettings struct {
	Group      string `yaml:"group"`
	Digest     string `yaml:"digest"`
	SaltLength int    `yaml:"salt_length"`
}

// HandshakeSettings controls pending handshakes between init and verify.
type HandshakeSettings struct {
	TTL string `yaml:"ttl"`
}

// RateLimitSettings contains the progressive delays applied after failed attempts.
// Once all delays are used up, the client is locked out for Lockout.
// When both are empty, the authenticator falls back to its built-in policy.
type RateLimitSettings struct {
	Delays  []string `yaml:"delays"`
	Lockout string   `yaml:"lockout"`
}

// IsZero reports whether neither delays nor a lockout are configured.
func (r RateLimitSettings) IsZero() bool {
	return len(r.Delays) == 0 && r.Lockout == ""
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		SRP: SRPSettings{
			Group:      "rfc5054-2048",
			Digest:     "sha256",
			SaltLength: srp.DefaultSaltLength,
		},
		Handshake: HandshakeSettings{
			TTL: "5m",
		},
		RateLimit: RateLimitSettings{
			Delays:  []string{"1s", "2s", "5s"},
			Lockout: "60s",
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads and parses the configuration file.
// Keys missing from the file keep their default values.
//
//nolint:gosec // G304: Config path is from command-line argument
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnv lets the environment override the parameter set (useful for tests and interop runs).
func (c *Config) applyEnv() {
	if digest := os.Getenv(EnvDigest); digest != "" {
		c.SRP.Digest = digest
	}
	if group := os.Getenv(EnvGroup); group != "" {
		c.SRP.Group = group
	}
}

// validate performs basic validation on the configuration.
// Detailed validation is in validate.go.
func (c *Config) validate() error {
	if c.SRP.Group == "" {
		return fmt.Errorf("srp.group is required")
	}

	if c.SRP.Digest == "" {
		return fmt.Errorf("srp.digest is required")
	}

	if c.Handshake.TTL == "" {
		return fmt.Errorf("handshake.ttl is required")
	}

	return nil
}

// SRPGroup resolves the configured parameter set.
func (c *Config) SRPGroup() (*srp.Group, error) {
	group, err := srp.GroupByName(c.SRP.Group)
	if err != nil {
		return nil, fmt.Errorf("invalid srp.group: %w", err)
	}
	return group, nil
}

// SRPDigest resolves the configured digest algorithm.
func (c *Config) SRPDigest() (srp.Digest, error) {
	digest, err := srp.ParseDigest(c.SRP.Digest)
	if err != nil {
		return 0, fmt.Errorf("invalid srp.digest: %w", err)
	}
	return digest, nil
}

// GetHandshakeTTL parses and returns the lifetime of a pending handshake.
func (c *Config) GetHandshakeTTL() (time.Duration, error) {
	duration, err := time.ParseDuration(c.Handshake.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid handshake.ttl: %w", err)
	}

	if duration < time.Second || duration > time.Hour {
		return 0, fmt.Errorf("handshake.ttl must be between 1s and 1h")
	}

	return duration, nil
}

// GetRateLimitDelays parses the progressive delays and the lockout duration.
// An empty rate_limit section yields no delays and a zero lockout.
func (c *Config) GetRateLimitDelays() (delays []time.Duration, lockout time.Duration, err error) {
	if c.RateLimit.IsZero() {
		return nil, 0, nil
	}

	for i, s := range c.RateLimit.Delays {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid rate_limit.delays[%d]: %w", i, err)
		}
		delays = append(delays, d)
	}

	lockout, err = time.ParseDuration(c.RateLimit.Lockout)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid rate_limit.lockout: %w", err)
	}

	return delays, lockout, nil
}
