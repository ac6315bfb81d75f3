package password

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// MaxBcryptLength is the longest password, in bytes, bcrypt accepts.
const MaxBcryptLength = 72

// Policy defines the requirements for password complexity
type Policy struct {
	MinLength          int
	// MaxLength is in bytes. Zero, or anything above MaxBcryptLength, means
	// MaxBcryptLength.
	MaxLength          int
	RequireUppercase   bool
	RequireLowercase   bool
	RequireDigit       bool
	RequireSpecialChar bool
	DisallowCommonPwds bool
}

// DefaultPolicy requires at least 8 characters with an uppercase letter,
// a lowercase letter, a digit and a symbol.
func DefaultPolicy() *Policy {
	return &Policy{
		MinLength:          8,
		MaxLength:          MaxBcryptLength,
		RequireUppercase:   true,
		RequireLowercase:   true,
		RequireDigit:       true,
		RequireSpecialChar: true,
	}
}

// PolicyChecker defines the interface for checking password complexity
type PolicyChecker interface {
	CheckPasswordComplexity(password string) error
	GetPolicy() *Policy
}

// DefaultPolicyChecker implements PolicyChecker with regular expressions
type DefaultPolicyChecker struct {
	policy          *Policy
	commonPasswords map[string]bool
}

// NewPolicyChecker creates a checker for policy, DefaultPolicy when nil.
func NewPolicyChecker(policy *Policy) *DefaultPolicyChecker {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &DefaultPolicyChecker{
		policy:          policy,
		commonPasswords: commonPasswords(),
	}
}

// CheckPasswordComplexity verifies that a password meets the complexity requirements
func (pc *DefaultPolicyChecker) CheckPasswordComplexity(password string) error {
	if len(password) < pc.policy.MinLength {
		return fmt.Errorf("password must be at least %d characters long", pc.policy.MinLength)
	}
	if maxLen := pc.maxLength(); len(password) > maxLen {
		return fmt.Errorf("password must be at most %d bytes long", maxLen)
	}
	if pc.policy.RequireUppercase && !upperRe.MatchString(password) {
		return errors.New("password must contain at least one uppercase letter")
	}
	if pc.policy.RequireLowercase && !lowerRe.MatchString(password) {
		return errors.New("password must contain at least one lowercase letter")
	}
	if pc.policy.RequireDigit && !digitRe.MatchString(password) {
		return errors.New("password must contain at least one digit")
	}
	if pc.policy.RequireSpecialChar && !specialRe.MatchString(password) {
		return errors.New("password must contain at least one special character")
	}
	if pc.policy.DisallowCommonPwds && pc.commonPasswords[strings.ToLower(password)] {
		return errors.New("password is too common, please choose a more secure password")
	}
	return nil
}

func (pc *DefaultPolicyChecker) maxLength() int {
	if pc.policy.MaxLength <= 0 || pc.policy.MaxLength > MaxBcryptLength {
		return MaxBcryptLength
	}
	return pc.policy.MaxLength
}

// GetPolicy returns the password policy
func (pc *DefaultPolicyChecker) GetPolicy() *Policy {
	return pc.policy
}

func commonPasswords() map[string]bool {
	pwds := []string{
		"password", "123456", "12345678", "qwerty", "admin",
		"welcome", "login", "abc123", "letmein", "monkey",
		"password1!", "p@ssw0rd", "welcome1!", "qwerty123!",
	}
	result := make(map[string]bool, len(pwds))
	for _, pwd := range pwds {
		result[pwd] = true
	}
	return result
}
