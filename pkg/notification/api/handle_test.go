package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockit/clockit-idm/pkg/client"
	"github.com/clockit/clockit-idm/pkg/notification"
	"github.com/clockit/clockit-idm/pkg/profile"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (Handle, uuid.UUID) {
	t.Helper()
	profiles := profile.NewInMemoryRepository()
	p, err := profiles.Create(context.Background(), profile.Profile{
		FirstName: "Jane", LastName: "Doe", Email: "a@x.com", EmployeeCode: "0000000000001",
	})
	require.NoError(t, err)
	svc := notification.NewService(notification.NewInMemoryRepository(), profiles)
	return NewHandle(svc), p.EmployeeID
}

func serve(t *testing.T, h http.Handler, method, path, body string, user *client.AuthUser) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != nil {
		req = req.WithContext(client.WithAuthUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestInbox(t *testing.T) {
	h, employeeID := setup(t)
	user := &client.AuthUser{EmployeeID: employeeID}
	inbox := Handler(h)
	admin := AdminHandler(h)

	code, env := serve(t, inbox, http.MethodGet, "/", "", user)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "No notifications yet.", env.Message)

	code, _ = serve(t, admin, http.MethodPost, "/notify/all", `{"title":"Holiday","message":"Office closed Friday"}`, nil)
	assert.Equal(t, http.StatusCreated, code)

	code, _ = serve(t, admin, http.MethodPost, "/notify/user",
		`{"userId":"`+employeeID.String()+`","title":"Shift","message":"You are on nights"}`, nil)
	assert.Equal(t, http.StatusCreated, code)

	code, env = serve(t, inbox, http.MethodGet, "/", "", user)
	require.Equal(t, http.StatusOK, code)
	var list ListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list.Notifications, 2)

	code, _ = serve(t, inbox, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSendPersonalErrors(t *testing.T) {
	h, _ := setup(t)
	admin := AdminHandler(h)

	code, env := serve(t, admin, http.MethodPost, "/notify/user",
		`{"userId":"`+uuid.NewString()+`","title":"t","message":"m"}`, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", env.Message)

	code, _ = serve(t, admin, http.MethodPost, "/notify/user", `{"userId":"42","title":"t","message":"m"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(t, admin, http.MethodPost, "/notify/all", `{"title":"t"}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
