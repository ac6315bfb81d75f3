package profile

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"both names", Profile{FirstName: "jane", LastName: "doe", Email: "a@x.com"}, "JD"},
		{"missing last name", Profile{FirstName: "Jane", Email: "a@x.com"}, "A"},
		{"unicode", Profile{FirstName: "élodie", LastName: "Ørsted"}, "ÉØ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.Initials())
		})
	}
}

func TestGenerateEmployeeCode(t *testing.T) {
	digits := regexp.MustCompile(`^[0-9]{13}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateEmployeeCode()
		require.NoError(t, err)
		assert.Regexp(t, digits, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

var profileColumns = []string{
	"employee_id", "first_name", "last_name", "contact_no", "email", "address",
	"employee_code", "date_hired", "supervisor_name", "leave_balance", "classification_id",
	"is_admin", "created_at",
	"classification_id", "department", "position", "role", "employment_type", "employee_level",
}

func TestPostgresRepository_GetByEmployeeID(t *testing.T) {
	id := uuid.New()
	hired := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	classID := 2
	dept, pos, role, empType, level := "General", "Staff", "staff", "Full-time", "Junior"

	t.Run("with classification", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`LEFT JOIN emp_classification ec`).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(profileColumns).AddRow(
				id, "Jane", "Doe", (*string)(nil), "a@x.com", "1 Rd",
				"0000000000042", hired, DefaultSupervisorName, 0.0, 2,
				false, hired,
				&classID, &dept, &pos, &role, &empType, &level,
			))

		got, err := NewPostgresRepository(mock).GetByEmployeeID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.FirstName)
		require.NotNil(t, got.Classification)
		assert.Equal(t, "General", got.Classification.Department)
		assert.Equal(t, "Junior", got.Classification.EmployeeLevel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM employees e`).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(profileColumns))

		_, err = NewPostgresRepository(mock).GetByEmployeeID(context.Background(), id)
		assert.ErrorIs(t, err, ErrProfileNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_CreateDuplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO employees`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "employees_email_key"})

	_, err = NewPostgresRepository(mock).Create(context.Background(), Profile{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	p, err := repo.Create(ctx, Profile{
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "a@x.com",
		Address:          "1 Rd",
		EmployeeCode:     "0000000000001",
		ClassificationID: DefaultClassificationID,
	})
	require.NoError(t, err)

	exists, err := repo.EmailExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Create(ctx, Profile{Email: "a@x.com", EmployeeCode: "0000000000002"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := repo.GetByEmployeeID(ctx, p.EmployeeID)
	require.NoError(t, err)
	require.NotNil(t, got.Classification)
	assert.Equal(t, "staff", got.Classification.Role)

	ok, err := repo.SetAdminByEmail(ctx, "a@x.com", true)
	require.NoError(t, err)
	assert.True(t, ok)
	got, err = repo.GetByEmployeeID(ctx, p.EmployeeID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	ok, err = repo.SetAdminByEmail(ctx, "nobody@x.com", true)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.GetByEmployeeID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
