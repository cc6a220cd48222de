package config

import (
	"fmt"
	"slices"
	"strings"
)

// Salt length bounds in bytes.
const (
	MinSaltLength = 16
	MaxSaltLength = 512
)

// Validate performs comprehensive validation on the configuration.
func Validate(cfg *Config) error {
	if err := validateSRP(cfg); err != nil {
		return fmt.Errorf("srp validation failed: %w", err)
	}

	if err := validateHandshake(cfg); err != nil {
		return fmt.Errorf("handshake validation failed: %w", err)
	}

	if err := validateRateLimit(cfg); err != nil {
		return fmt.Errorf("rate limit validation failed: %w", err)
	}

	if err := validateLogging(cfg); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	return nil
}

func validateSRP(cfg *Config) error {
	if _, err := cfg.SRPGroup(); err != nil {
		return err
	}

	if _, err := cfg.SRPDigest(); err != nil {
		return err
	}

	if cfg.SRP.SaltLength < MinSaltLength || cfg.SRP.SaltLength > MaxSaltLength {
		return fmt.Errorf("srp.salt_length must be between %d and %d", MinSaltLength, MaxSaltLength)
	}

	return nil
}

func validateHandshake(cfg *Config) error {
	_, err := cfg.GetHandshakeTTL()
	return err
}

func validateRateLimit(cfg *Config) error {
	if cfg.RateLimit.IsZero() {
		return nil
	}

	delays, lockout, err := cfg.GetRateLimitDelays()
	if err != nil {
		return err
	}

	for i, d := range delays {
		if d <= 0 {
			return fmt.Errorf("rate_limit.delays[%d] must be positive", i)
		}
	}

	if lockout <= 0 {
		return fmt.Errorf("rate_limit.lockout must be positive")
	}

	return nil
}

func validateLogging(cfg *Config) error {
	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, cfg.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %s", strings.Join(validLevels, ", "))
	}

	// Validate log format
	validFormats := []string{"json", "human"}
	if !slices.Contains(validFormats, cfg.Logging.Format) {
		return fmt.Errorf("logging.format must be one of: %s", strings.Join(validFormats, ", "))
	}

	return nil
}
