package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clockit/clockit-idm/pkg/client"
	apperrors "github.com/clockit/clockit-idm/pkg/errors"
	"github.com/clockit/clockit-idm/pkg/httpx"
	"github.com/clockit/clockit-idm/pkg/notification"
)

type BroadcastRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type PersonalRequest struct {
	UserID  string `json:"userId" validate:"required,uuid"`
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type ListResponse struct {
	Notifications []notification.Notification `json:"notifications"`
}

type Handle struct {
	service *notification.Service
}

func NewHandle(service *notification.Service) Handle {
	return Handle{service: service}
}

// Handler serves the caller's inbox. Mount behind the bearer token middleware.
func Handler(h Handle) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// AdminHandler serves /api/admin. Mount behind the admin guard.
func AdminHandler(h Handle) http.Handler {
	r := chi.NewRouter()
	r.Post("/notify/all", h.Broadcast)
	r.Post("/notify/user", h.SendPersonal)
	return r
}

// (GET /api/notifications)
func (h Handle) List(w http.ResponseWriter, r *http.Request) {
	authUser, ok := client.GetAuthUser(r.Context())
	if !ok {
		httpx.Fail(w, r, http.StatusUnauthorized, "Unauthorized.", nil)
		return
	}

	list, err := h.service.ListForEmployee(r.Context(), authUser.EmployeeID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	message := "Notifications fetched successfully."
	if len(list) == 0 {
		message = "No notifications yet."
	}
	httpx.Success(w, r, http.StatusOK, message, ListResponse{Notifications: list})
}

// (POST /api/admin/notify/all)
func (h Handle) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	n, err := h.service.Broadcast(r.Context(), req.Title, req.Message)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}
	slog.Info("Broadcast notification sent", "notification_id", n.ID)
	httpx.Success(w, r, http.StatusCreated, "Broadcast notification sent to all users.", n)
}

// (POST /api/admin/notify/user)
func (h Handle) SendPersonal(w http.ResponseWriter, r *http.Request) {
	var req PersonalRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Error(w, r, err)
		return
	}

	employeeID, err := uuid.Parse(req.UserID)
	if err != nil {
		httpx.Error(w, r, apperrors.ValidationFailed("user_id", "user_id must be a valid id."))
		return
	}

	if err := h.service.SendPersonal(r.Context(), employeeID, req.Title, req.Message); err != nil {
		httpx.Error(w, r, err)
		return
	}
	httpx.Success(w, r, http.StatusCreated, fmt.Sprintf("Notification sent to user ID %s.", employeeID), nil)
}
