// Package profile models the employee record linked to an account.
package profile

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// DefaultClassificationID is the general staff classification given to self-registered employees.
	DefaultClassificationID = 2
	DefaultSupervisorName   = "System Administrator"
	EmployeeCodeDigits      = 13
)

// Classification is the department and grade an employee belongs to.
type Classification struct {
	ID             int
	Department     string
	Position       string
	Role           string
	EmploymentType string
	EmployeeLevel  string
}

// Profile is an employee record.
type Profile struct {
	EmployeeID       uuid.UUID
	FirstName        string
	LastName         string
	ContactNo        *string
	Email            string
	Address          string
	EmployeeCode     string
	DateHired        time.Time
	SupervisorName   string
	LeaveBalance     float64
	IsAdmin          bool
	ClassificationID int
	Classification   *Classification
	CreatedAt        time.Time
}

// Initials are the upper-cased first letters of the first and last name,
// or of the email when either name is missing.
func (p Profile) Initials() string {
	if p.FirstName != "" && p.LastName != "" {
		return strings.ToUpper(firstRune(p.FirstName) + firstRune(p.LastName))
	}
	return strings.ToUpper(firstRune(p.Email))
}

func firstRune(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(r)
}

var employeeCodeMax = new(big.Int).Exp(big.NewInt(10), big.NewInt(EmployeeCodeDigits), nil)

// GenerateEmployeeCode returns a random zero-padded 13 digit identifier.
func GenerateEmployeeCode() (string, error) {
	n, err := rand.Int(rand.Reader, employeeCodeMax)
	if err != nil {
		return "", fmt.Errorf("generate employee code: %w", err)
	}
	return fmt.Sprintf("%0*d", EmployeeCodeDigits, n), nil
}
