package password

import (
	"fmt"
	"regexp"
	"strings"
)

// Policy defines the requirements for password complexity
type Policy struct {
	MinLength          int
	RequireUppercase   bool
	RequireLowercase   bool
	RequireDigit       bool
	RequireSpecialChar bool
	MaxRepeatedChars   int
}

// PolicyChecker defines the interface for checking password complexity
type PolicyChecker interface {
	CheckPasswordComplexity(password string) error
	GetPolicy() *Policy
}

// DefaultPolicyChecker implements the PolicyChecker interface.
// All violated rules are reported together in one error message so the
// caller sees every reason at once.
type DefaultPolicyChecker struct {
	policy *Policy
}

// NewDefaultPolicyChecker creates a new default password policy checker
func NewDefaultPolicyChecker(policy *Policy) *DefaultPolicyChecker {
	if policy == nil {
		policy = DefaultPolicy()
	}

	return &DefaultPolicyChecker{
		policy: policy,
	}
}

var (
	hasUppercase = regexp.MustCompile(`[A-Z]`)
	hasLowercase = regexp.MustCompile(`[a-z]`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
	hasSpecial   = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// CheckPasswordComplexity verifies that a password meets the complexity
// requirements. The reasons for every failed rule are joined with ", ".
func (pc *DefaultPolicyChecker) CheckPasswordComplexity(password string) error {
	var reasons []string

	if len(password) < pc.policy.MinLength {
		reasons = append(reasons, fmt.Sprintf("password must be at least %d characters long", pc.policy.MinLength))
	}

	if pc.policy.RequireUppercase && !hasUppercase.MatchString(password) {
		reasons = append(reasons, "password must contain at least one uppercase letter")
	}

	if pc.policy.RequireLowercase && !hasLowercase.MatchString(password) {
		reasons = append(reasons, "password must contain at least one lowercase letter")
	}

	if pc.policy.RequireDigit && !hasDigit.MatchString(password) {
		reasons = append(reasons, "password must contain at least one digit")
	}

	if pc.policy.RequireSpecialChar && !hasSpecial.MatchString(password) {
		reasons = append(reasons, "password must contain at least one special character")
	}

	if pc.policy.MaxRepeatedChars > 0 && hasRepeatedChars(password, pc.policy.MaxRepeatedChars) {
		reasons = append(reasons, fmt.Sprintf("password cannot contain more than %d consecutive repeated characters", pc.policy.MaxRepeatedChars))
	}

	if len(reasons) > 0 {
		return fmt.Errorf("%s", strings.Join(reasons, ", "))
	}

	return nil
}

// GetPolicy returns the password policy
func (pc *DefaultPolicyChecker) GetPolicy() *Policy {
	return pc.policy
}

func hasRepeatedChars(password string, maxRepeated int) bool {
	for i := 0; i < len(password)-maxRepeated+1; i++ {
		if strings.Count(password[i:i+maxRepeated], string(password[i])) == maxRepeated {
			return true
		}
	}
	return false
}

// DefaultPolicy returns a default password policy
func DefaultPolicy() *Policy {
	return &Policy{
		MinLength:          8,
		RequireUppercase:   true,
		RequireLowercase:   true,
		RequireDigit:       true,
		RequireSpecialChar: true,
		MaxRepeatedChars:   3,
	}
}

// NoOpPolicy returns a policy with no requirements, for development setups
func NoOpPolicy() *Policy {
	return &Policy{}
}
