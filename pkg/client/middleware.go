package client

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apperrors "github.com/clockit/clockit-idm/pkg/errors"
	"github.com/clockit/clockit-idm/pkg/httpx"
	"github.com/clockit/clockit-idm/pkg/profile"
)

const adminOnlyMessage = "Access denied. Admins only."

// AdminLookup re-reads the employee record behind a token.
type AdminLookup interface {
	GetByEmployeeID(ctx context.Context, id uuid.UUID) (profile.Profile, error)
}

// RequireAuth rejects requests that did not pass AuthUserMiddleware.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetAuthUser(r.Context()); !ok {
			slog.Debug("Unauthenticated request to protected resource")
			httpx.Fail(w, r, http.StatusUnauthorized, "Unauthorized.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin allows the request only when the token claims admin and the
// employee record still says so. Must be used after AuthUserMiddleware.
func RequireAdmin(lookup AdminLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetAuthUser(r.Context())
			if !ok {
				httpx.Fail(w, r, http.StatusUnauthorized, "Unauthorized.", nil)
				return
			}
			if !user.IsAdmin {
				slog.Warn("Non-admin request to admin route", "user", user, "path", r.URL.Path)
				httpx.Error(w, r, apperrors.Forbidden(adminOnlyMessage))
				return
			}

			p, err := lookup.GetByEmployeeID(r.Context(), user.EmployeeID)
			if err != nil {
				if errors.Is(err, profile.ErrProfileNotFound) {
					httpx.Error(w, r, apperrors.Forbidden(adminOnlyMessage))
					return
				}
				httpx.Error(w, r, err)
				return
			}
			if !p.IsAdmin {
				slog.Warn("Admin claim no longer matches employee record", "user", user)
				httpx.Error(w, r, apperrors.Forbidden(adminOnlyMessage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
