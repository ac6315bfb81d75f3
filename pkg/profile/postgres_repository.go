package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clockit/clockit-idm/pkg/dbx"
)

// PostgresRepository implements Repository on the employees and
// emp_classification tables
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository creates a repository bound to db, a pool or a transaction.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check employee email: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Profile) (Profile, error) {
	if p.EmployeeID == uuid.Nil {
		p.EmployeeID = uuid.New()
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO employees (employee_id, first_name, last_name, contact_no, email, address,
			employee_code, date_hired, supervisor_name, leave_balance, classification_id, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at`,
		p.EmployeeID, p.FirstName, p.LastName, p.ContactNo, p.Email, p.Address,
		p.EmployeeCode, p.DateHired, p.SupervisorName, p.LeaveBalance, p.ClassificationID, p.IsAdmin,
	).Scan(&p.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return Profile{}, ErrDuplicateEmail
		}
		return Profile{}, fmt.Errorf("insert employee: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByEmployeeID(ctx context.Context, id uuid.UUID) (Profile, error) {
	var (
		p       Profile
		classID *int

		department, position, role, empType, employeeLevel *string
	)
	err := r.db.QueryRow(ctx,
		`SELECT e.employee_id, e.first_name, e.last_name, e.contact_no, e.email, e.address,
			e.employee_code, e.date_hired, e.supervisor_name, e.leave_balance, e.classification_id,
			e.is_admin, e.created_at,
			ec.classification_id, ec.department, ec.position, ec.role, ec.employment_type, ec.employee_level
		 FROM employees e
		 LEFT JOIN emp_classification ec ON e.classification_id = ec.classification_id
		 WHERE e.employee_id = $1`, id,
	).Scan(
		&p.EmployeeID, &p.FirstName, &p.LastName, &p.ContactNo, &p.Email, &p.Address,
		&p.EmployeeCode, &p.DateHired, &p.SupervisorName, &p.LeaveBalance, &p.ClassificationID,
		&p.IsAdmin, &p.CreatedAt,
		&classID, &department, &position, &role, &empType, &employeeLevel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("get employee: %w", err)
	}
	if classID != nil {
		p.Classification = &Classification{
			ID:             *classID,
			Department:     deref(department),
			Position:       deref(position),
			Role:           deref(role),
			EmploymentType: deref(empType),
			EmployeeLevel:  deref(employeeLevel),
		}
	}
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *PostgresRepository) SetAdminByEmail(ctx context.Context, email string, isAdmin bool) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE employees SET is_admin = $2 WHERE email = $1`, email, isAdmin)
	if err != nil {
		return false, fmt.Errorf("set admin: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
