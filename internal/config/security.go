package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SecurityConfig represents security configuration.
type SecurityConfig struct {
	Security struct {
		Gate struct {
			Salt              string `yaml:"salt"`
			CookieName        string `yaml:"cookie_name"`
			CookieMaxAgeHours int    `yaml:"cookie_max_age_hours"`
			UnlockPerMinute   int    `yaml:"unlock_per_minute"`
			UnlockBurst       int    `yaml:"unlock_burst"`
		} `yaml:"gate"`
		JWT struct {
			SecretEnv   string `yaml:"secret_env"`
			ExpiryHours int    `yaml:"expiry_hours"`
		} `yaml:"jwt"`
	} `yaml:"security"`
}

// DefaultSecurityConfig returns the configuration used when no YAML
// file is provided.
func DefaultSecurityConfig() *SecurityConfig {
	var c SecurityConfig
	c.Security.Gate.Salt = "resumes-private-folder"
	c.Security.Gate.CookieName = "resumes_access"
	c.Security.Gate.CookieMaxAgeHours = 7 * 24
	c.Security.Gate.UnlockPerMinute = 10
	c.Security.Gate.UnlockBurst = 5
	c.Security.JWT.SecretEnv = "JWT_SECRET"
	c.Security.JWT.ExpiryHours = 24
	return &c
}

// LoadSecurityConfig loads security configuration from a YAML file,
// filling unset fields from the defaults.
// The path parameter is expected to come from a trusted source (command-line argument or hardcoded default).
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is provided by trusted source (CLI arg or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultSecurityConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// validateSecurityConfig validates the loaded configuration.
func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.Gate.Salt == "" {
		return fmt.Errorf("gate salt must not be empty")
	}
	if config.Security.Gate.CookieName == "" {
		return fmt.Errorf("gate cookie_name must not be empty")
	}
	if config.Security.Gate.CookieMaxAgeHours <= 0 {
		return fmt.Errorf("gate cookie_max_age_hours must be positive")
	}
	if config.Security.Gate.UnlockPerMinute <= 0 || config.Security.Gate.UnlockBurst <= 0 {
		return fmt.Errorf("gate unlock rate limit must be positive")
	}

	if config.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}
	if config.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}

	return nil
}

// GetJWTSecretEnv returns the environment variable name for JWT secret.
func (c *SecurityConfig) GetJWTSecretEnv() string {
	return c.Security.JWT.SecretEnv
}

// GetJWTExpiryHours returns the JWT expiry time in hours.
func (c *SecurityConfig) GetJWTExpiryHours() int {
	return c.Security.JWT.ExpiryHours
}
