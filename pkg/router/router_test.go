package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clockit/clockit-idm/pkg/auth"
	authapi "github.com/clockit/clockit-idm/pkg/auth/api"
	"github.com/clockit/clockit-idm/pkg/notification"
	notificationapi "github.com/clockit/clockit-idm/pkg/notification/api"
	"github.com/clockit/clockit-idm/pkg/password"
	"github.com/clockit/clockit-idm/pkg/store"
	"github.com/clockit/clockit-idm/pkg/tokengenerator"
)

func setupRouter(t *testing.T) (*chi.Mux, *auth.Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	svc := auth.NewService(st, tokengenerator.NewJwtTokenGenerator("router-test-secret-1", "clockit"),
		auth.WithHasher(password.NewBcryptHasher(bcrypt.MinCost)))
	notifications := notification.NewService(st.Repos().Notifications, st.Repos().Profiles)

	r := chi.NewRouter()
	SetupRoutes(r, Config{
		Prefixes:           DefaultPrefixes(),
		AuthHandle:         authapi.NewHandle(svc),
		NotificationHandle: notificationapi.NewHandle(notifications),
		Verifier:           svc,
		AdminLookup:        st.Repos().Profiles,
	})
	return r, svc, st
}

func TestRoutesMounted(t *testing.T) {
	r, svc, st := setupRouter(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterParams{
		Email: "a@x.com", Password: "Abcd123!", FirstName: "Jane", LastName: "Doe", Address: "1 Rd",
	})
	require.NoError(t, err)
	user, err := svc.Login(ctx, "a@x.com", "Abcd123!")
	require.NoError(t, err)

	_, err = st.Repos().Profiles.SetAdminByEmail(ctx, "a@x.com", true)
	require.NoError(t, err)
	admin, err := svc.Login(ctx, "a@x.com", "Abcd123!")
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
	}{
		{name: "public login", method: http.MethodPost, path: "/api/auth/login", body: `{"email":"a@x.com","password":"bad"}`, wantStatus: http.StatusUnauthorized},
		{name: "users profile", method: http.MethodGet, path: "/api/users/profile", token: user.Token, wantStatus: http.StatusOK},
		{name: "users profile without token", method: http.MethodGet, path: "/api/users/profile", wantStatus: http.StatusUnauthorized},
		{name: "inbox", method: http.MethodGet, path: "/api/notifications", token: user.Token, wantStatus: http.StatusOK},
		{name: "broadcast as non-admin token", method: http.MethodPost, path: "/api/admin/notify/all", body: `{"title":"t","message":"m"}`, token: user.Token, wantStatus: http.StatusForbidden},
		{name: "broadcast as admin", method: http.MethodPost, path: "/api/admin/notify/all", body: `{"title":"t","message":"m"}`, token: admin.Token, wantStatus: http.StatusCreated},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
