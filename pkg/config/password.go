package config

import (
	"log/slog"

	"github.com/tendant/simple-account/pkg/password"
)

// PasswordComplexityConfig holds password policy configuration from environment variables
type PasswordComplexityConfig struct {
	Enabled                 bool `env:"PASSWORD_POLICY_ENABLED" env-default:"true"`
	RequiredDigit           bool `env:"PASSWORD_COMPLEXITY_REQUIRE_DIGIT" env-default:"true"`
	RequiredLowercase       bool `env:"PASSWORD_COMPLEXITY_REQUIRE_LOWERCASE" env-default:"true"`
	RequiredNonAlphanumeric bool `env:"PASSWORD_COMPLEXITY_REQUIRE_NON_ALPHANUMERIC" env-default:"true"`
	RequiredUppercase       bool `env:"PASSWORD_COMPLEXITY_REQUIRE_UPPERCASE" env-default:"true"`
	RequiredLength          int  `env:"PASSWORD_COMPLEXITY_REQUIRED_LENGTH" env-default:"8"`
	MaxRepeatedChars        int  `env:"PASSWORD_COMPLEXITY_MAX_REPEATED_CHARS" env-default:"3"`
}

// ToPasswordPolicy converts the configuration to a password.Policy
func (c *PasswordComplexityConfig) ToPasswordPolicy() *password.Policy {
	// If no config is provided, use the default policy
	if c == nil {
		return password.DefaultPolicy()
	}

	// If policy is disabled, return no-op policy
	if !c.Enabled {
		return password.NoOpPolicy()
	}

	slog.Info("Password policy configuration",
		"enabled", c.Enabled,
		"minLength", c.RequiredLength,
		"requireDigit", c.RequiredDigit,
		"requireUppercase", c.RequiredUppercase,
	)

	return &password.Policy{
		MinLength:          c.RequiredLength,
		RequireUppercase:   c.RequiredUppercase,
		RequireLowercase:   c.RequiredLowercase,
		RequireDigit:       c.RequiredDigit,
		RequireSpecialChar: c.RequiredNonAlphanumeric,
		MaxRepeatedChars:   c.MaxRepeatedChars,
	}
}
