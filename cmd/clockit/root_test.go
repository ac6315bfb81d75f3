package main

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockit/clockit-idm/pkg/config"
	"github.com/clockit/clockit-idm/pkg/profile"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"serve"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "status"},
		{"unlock"},
		{"admin"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestAdminCmd_RequiresEmail(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"admin"})
	root.SilenceErrors = true

	err := root.Execute()
	assert.Error(t, err)
}

func TestCorsOptions_FrontendOrigin(t *testing.T) {
	opts := corsOptions(config.LoginConfig{FrontendOrigin: "https://clock.example.com"})

	assert.Equal(t, []string{"https://clock.example.com"}, opts.AllowedOrigins)
	assert.Contains(t, opts.AllowedHeaders, "Authorization")
	assert.True(t, opts.AllowCredentials)
}

func TestNewMailer_LogsWithoutHost(t *testing.T) {
	m, err := newMailer(config.EmailConfig{})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestSetAdmin_NormalizesEmail(t *testing.T) {
	ctx := context.Background()
	repo := profile.NewInMemoryRepository()
	p, err := repo.Create(ctx, profile.Profile{EmployeeID: uuid.New(), Email: "jane@x.com", FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, err)

	email, err := setAdmin(ctx, repo, "  Jane@X.com ", true)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", email)

	got, err := repo.GetByEmployeeID(ctx, p.EmployeeID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	_, err = setAdmin(ctx, repo, "JANE@x.com", false)
	require.NoError(t, err)
	got, err = repo.GetByEmployeeID(ctx, p.EmployeeID)
	require.NoError(t, err)
	assert.False(t, got.IsAdmin)

	_, err = setAdmin(ctx, repo, "ghost@x.com", true)
	assert.ErrorContains(t, err, "no employee with email ghost@x.com")
}
