package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jinzhu/copier"

	"github.com/clockit/clockit-idm/pkg/auth"
	"github.com/clockit/clockit-idm/pkg/client"
	"github.com/clockit/clockit-idm/pkg/httpx"
)

type Handle struct {
	service *auth.Service
}

func NewHandle(service *auth.Service) Handle {
	return Handle{service: service}
}

// Handler returns the /api/auth routes. requireAdmin guards the unlock
// endpoint and must run after the bearer token middleware it is paired with.
func Handler(h Handle, authenticate, requireAdmin func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/reset-password", h.ResetPassword)
	r.Get("/password-policy", h.GetPasswordPolicy)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/profile", h.GetProfile)
		r.Put("/change-password", h.ChangePassword)
		r.With(requireAdmin).Post("/unlock-account", h.UnlockAccount)
	})
	return r
}

// Signup registers a new employee
// (POST /signup)
func (h Handle) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	params := auth.RegisterParams{}
	copier.Copy(&params, &req)

	result, err := h.service.Register(r.Context(), params)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := SignupResponse{}
	copier.Copy(&resp, result)
	httpx.Success(w, r, http.StatusCreated, "User registered successfully.", resp)
}

// (POST /login)
func (h Handle) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := LoginResponse{Token: result.Token, ExpiresAt: result.ExpiresAt}
	copier.Copy(&resp.User, &result.User)
	httpx.Success(w, r, http.StatusOK, "Login successful.", resp)
}

// (POST /forgot-password)
func (h Handle) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	ack, err := h.service.RequestPasswordReset(r.Context(), req.Email, req.UseBackup)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Success(w, r, http.StatusOK, ack, nil)
}

// (POST /reset-password)
func (h Handle) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Success(w, r, http.StatusOK, auth.ResetSuccessMessage, nil)
}

// (POST /unlock-account)
func (h Handle) UnlockAccount(w http.ResponseWriter, r *http.Request) {
	var req UnlockAccountRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	if err := h.service.UnlockAccount(r.Context(), req.Email); err != nil {
		httpx.Error(w, r, err)
		return
	}
	if admin, ok := client.GetAuthUser(r.Context()); ok {
		slog.Info("Admin unlocked account", "admin", admin, "email", req.Email)
	}
	httpx.Success(w, r, http.StatusOK, auth.UnlockMessage, nil)
}

// GetProfile returns the caller's profile. Also served at /api/users/profile.
func (h Handle) GetProfile(w http.ResponseWriter, r *http.Request) {
	authUser, ok := client.GetAuthUser(r.Context())
	if !ok {
		slog.Error("Failed getting AuthUser", "ok", ok)
		httpx.Fail(w, r, http.StatusUnauthorized, "Unauthorized.", nil)
		return
	}

	view, err := h.service.GetProfile(r.Context(), authUser.AccountID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := ProfileResponse{}
	copier.Copy(&resp, view)
	httpx.Success(w, r, http.StatusOK, "Profile fetched successfully.", resp)
}

// (PUT /change-password)
func (h Handle) ChangePassword(w http.ResponseWriter, r *http.Request) {
	authUser, ok := client.GetAuthUser(r.Context())
	if !ok {
		slog.Error("Failed getting AuthUser", "ok", ok)
		httpx.Fail(w, r, http.StatusUnauthorized, "Unauthorized.", nil)
		return
	}

	var req ChangePasswordRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	if err := h.service.ChangePassword(r.Context(), authUser.AccountID, req.CurrentPassword, req.NewPassword); err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Success(w, r, http.StatusOK, "Password updated successfully.", nil)
}

// Get password policy
// (GET /password-policy)
func (h Handle) GetPasswordPolicy(w http.ResponseWriter, r *http.Request) {
	policy := h.service.PasswordPolicy()

	resp := PasswordPolicyResponse{}
	copier.Copy(&resp, policy)
	httpx.Success(w, r, http.StatusOK, "Password policy fetched successfully.", resp)
}
