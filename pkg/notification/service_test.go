package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/clockit/clockit-idm/pkg/errors"
	"github.com/clockit/clockit-idm/pkg/profile"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func setup(t *testing.T) (*Service, *InMemoryRepository, *clock, uuid.UUID) {
	t.Helper()
	c := &clock{t: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	profiles := profile.NewInMemoryRepository()
	p, err := profiles.Create(context.Background(), profile.Profile{
		FirstName: "Jane", LastName: "Doe", Email: "a@x.com", EmployeeCode: "0000000000001",
		ClassificationID: profile.DefaultClassificationID,
	})
	require.NoError(t, err)

	repo := NewInMemoryRepository().WithClock(c.Now)
	return NewService(repo, profiles, WithClock(c.Now)), repo, c, p.EmployeeID
}

func TestNotifyDedupe(t *testing.T) {
	ctx := context.Background()
	svc, repo, c, employeeID := setup(t)

	svc.Notify(ctx, employeeID, "Password changed", "Your password was reset.")
	c.Advance(30 * time.Second)
	svc.Notify(ctx, employeeID, "Password changed", "Your password was reset.")

	list, err := repo.ListForEmployee(ctx, employeeID)
	require.NoError(t, err)
	assert.Len(t, list, 1, "duplicate inside the window is skipped")

	c.Advance(31 * time.Second)
	svc.Notify(ctx, employeeID, "Password changed", "Your password was reset.")
	list, err = repo.ListForEmployee(ctx, employeeID)
	require.NoError(t, err)
	assert.Len(t, list, 2, "window elapsed")

	svc.Notify(ctx, employeeID, "Account unlocked", "An administrator unlocked your account.")
	list, err = repo.ListForEmployee(ctx, employeeID)
	require.NoError(t, err)
	assert.Len(t, list, 3, "different message is not a duplicate")
}

func TestNotifyUnknownEmployeeIsAbsorbed(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := setup(t)

	stranger := uuid.New()
	svc.Notify(ctx, stranger, "Hi", "there")

	list, err := repo.ListForEmployee(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, list)
}

type failingRepo struct{ InMemoryRepository }

func (failingRepo) HasRecentDuplicate(context.Context, uuid.UUID, string, string, time.Time) (bool, error) {
	return false, errors.New("db down")
}

func TestNotifyStorageErrorIsAbsorbed(t *testing.T) {
	_, _, c, _ := setup(t)
	profiles := profile.NewInMemoryRepository()
	p, err := profiles.Create(context.Background(), profile.Profile{Email: "b@x.com", EmployeeCode: "0000000000002"})
	require.NoError(t, err)

	svc := NewService(&failingRepo{}, profiles, WithClock(c.Now))
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), p.EmployeeID, "Hi", "there")
	})
}

func TestBroadcastAndList(t *testing.T) {
	ctx := context.Background()
	svc, _, c, employeeID := setup(t)

	_, err := svc.Broadcast(ctx, "Office closed", "Friday is a public holiday.")
	require.NoError(t, err)
	c.Advance(time.Minute)
	require.NoError(t, svc.SendPersonal(ctx, employeeID, "Leave approved", "Enjoy your time off."))

	list, err := svc.ListForEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Leave approved", list[0].Title, "newest first")
	assert.True(t, list[1].IsBroadcast)

	other, err := svc.ListForEmployee(ctx, uuid.New())
	require.NoError(t, err)
	require.Len(t, other, 1, "broadcasts are visible to everyone")
}

func TestSendPersonalValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, employeeID := setup(t)

	err := svc.SendPersonal(ctx, uuid.New(), "Hi", "there")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))

	err = svc.SendPersonal(ctx, employeeID, "", "there")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))

	_, err = svc.Broadcast(ctx, "Title", "   ")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
}

func TestListForEmployeeEmpty(t *testing.T) {
	svc, _, _, employeeID := setup(t)
	list, err := svc.ListForEmployee(context.Background(), employeeID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
