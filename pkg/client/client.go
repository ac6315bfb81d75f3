// Package client authenticates API requests from their bearer token and
// guards admin-only routes.
package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	apperrors "github.com/clockit/clockit-idm/pkg/errors"
	"github.com/clockit/clockit-idm/pkg/httpx"
	tg "github.com/clockit/clockit-idm/pkg/tokengenerator"
)

// AuthUser is the identity carried by a verified bearer token.
type AuthUser struct {
	AccountID  uuid.UUID
	EmployeeID uuid.UUID
	Email      string
	IsAdmin    bool
}

func (u AuthUser) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("account_id", u.AccountID.String()),
		slog.String("employee_id", u.EmployeeID.String()),
		slog.Bool("is_admin", u.IsAdmin),
	)
}

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "clockit context value " + k.name
}

var AuthUserKey = &contextKey{"AuthUser"}

// TokenVerifier checks a raw bearer token.
type TokenVerifier interface {
	VerifyBearerToken(ctx context.Context, token string) (*tg.Claims, error)
}

// WithAuthUser stores user on ctx.
func WithAuthUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, AuthUserKey, user)
}

// GetAuthUser returns the user stored by AuthUserMiddleware.
func GetAuthUser(ctx context.Context) (*AuthUser, bool) {
	user, ok := ctx.Value(AuthUserKey).(*AuthUser)
	return user, ok && user != nil
}

// AuthUserMiddleware verifies the Authorization bearer token and stores the
// AuthUser on the request context. Requests without a valid token get 401.
func AuthUserMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := jwtauth.TokenFromHeader(r)
			if tokenString == "" {
				httpx.Fail(w, r, http.StatusUnauthorized, "No token provided.", nil)
				return
			}

			claims, err := verifier.VerifyBearerToken(r.Context(), tokenString)
			if err != nil {
				httpx.Error(w, r, err)
				return
			}

			user, err := FromClaims(claims)
			if err != nil {
				slog.Warn("Token carries malformed identifiers", "err", err)
				httpx.Error(w, r, apperrors.TokenInvalid(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAuthUser(r.Context(), user)))
		})
	}
}

// FromClaims converts verified token claims into an AuthUser.
func FromClaims(claims *tg.Claims) (*AuthUser, error) {
	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, err
	}
	employeeID, err := uuid.Parse(claims.EmployeeID)
	if err != nil {
		return nil, err
	}
	return &AuthUser{
		AccountID:  accountID,
		EmployeeID: employeeID,
		Email:      claims.Email,
		IsAdmin:    claims.IsAdmin,
	}, nil
}
