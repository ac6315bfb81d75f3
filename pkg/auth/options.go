package auth

import (
	"io"
	"time"

	"github.com/clockit/clockit-idm/pkg/lockout"
	"github.com/clockit/clockit-idm/pkg/mailer"
	"github.com/clockit/clockit-idm/pkg/notification"
	"github.com/clockit/clockit-idm/pkg/password"
)

type Option func(*Service)

// WithClock replaces the time source used for lockout and reset expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithHasher(hasher password.Hasher) Option {
	return func(s *Service) {
		s.hasher = hasher
	}
}

func WithPolicyChecker(checker password.PolicyChecker) Option {
	return func(s *Service) {
		s.policy = checker
	}
}

func WithLockoutPolicy(policy lockout.Policy) Option {
	return func(s *Service) {
		s.lockout = policy
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.tokenTTL = ttl
	}
}

func WithResetExpiry(expiry time.Duration) Option {
	return func(s *Service) {
		s.resetExpiry = expiry
	}
}

// WithFrontendOrigin sets the base URL of the reset-password page.
func WithFrontendOrigin(origin string) Option {
	return func(s *Service) {
		s.frontendOrigin = origin
	}
}

func WithMailer(m mailer.Mailer) Option {
	return func(s *Service) {
		s.mailer = m
	}
}

func WithNotifier(n notification.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithRandom sets the entropy source for reset tokens.
func WithRandom(r io.Reader) Option {
	return func(s *Service) {
		s.random = r
	}
}
