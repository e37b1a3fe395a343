package repositories

import (
	"Staffline/utils"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrDuplicateKey = errors.New("duplicate key")
var ErrEmployeeNotFound = fmt.Errorf("employee: %w", utils.ErrResourceNotFound)

type Employee struct {
	BaseModel

	email            string
	passwordHash     string
	verificationCode string
	verified         bool
}

func NewEmployee(email string, passwordHash string, verificationCode string) *Employee {
	return &Employee{
		BaseModel:        NewBaseModel(),
		email:            email,
		passwordHash:     passwordHash,
		verificationCode: verificationCode,
		verified:         false,
	}
}

func NewEmployeeFromDB(base BaseModel, email string, passwordHash string, verificationCode string, verified bool) *Employee {
	return &Employee{
		BaseModel:        base,
		email:            email,
		passwordHash:     passwordHash,
		verificationCode: verificationCode,
		verified:         verified,
	}
}

func (e *Employee) Email() string {
	return e.email
}

func (e *Employee) PasswordHash() string {
	return e.passwordHash
}

func (e *Employee) VerificationCode() string {
	return e.verificationCode
}

func (e *Employee) IsVerified() bool {
	return e.verified
}

func (e *Employee) SetVerified(verified bool) {
	if e.verified == verified {
		return
	}

	e.verified = verified
	e.TrackChange("is_verified", verified)
}

// Clone returns a copy that does not share change tracking state with e.
func (e *Employee) Clone() *Employee {
	clone := *e
	clone.changes = make(map[string]any, len(e.changes))
	for k, v := range e.changes {
		clone.changes[k] = v
	}
	return &clone
}

type EmployeeFilter struct {
	id    *uuid.UUID
	email *string
}

func NewEmployeeFilter() EmployeeFilter {
	return EmployeeFilter{}
}

func (f EmployeeFilter) Clone() EmployeeFilter {
	return f
}

func (f EmployeeFilter) Id(id uuid.UUID) EmployeeFilter {
	filter := f.Clone()
	filter.id = &id
	return filter
}

func (f EmployeeFilter) HasId() bool {
	return f.id != nil
}

func (f EmployeeFilter) GetId() uuid.UUID {
	return utils.ZeroIfNil(f.id)
}

func (f EmployeeFilter) Email(email string) EmployeeFilter {
	filter := f.Clone()
	filter.email = &email
	return filter
}

func (f EmployeeFilter) HasEmail() bool {
	return f.email != nil
}

func (f EmployeeFilter) GetEmail() string {
	return utils.ZeroIfNil(f.email)
}

// Matches reports whether e satisfies every criterion set on the filter.
func (f EmployeeFilter) Matches(e *Employee) bool {
	if f.HasId() && e.Id() != f.GetId() {
		return false
	}

	if f.HasEmail() && e.Email() != f.GetEmail() {
		return false
	}

	return true
}

//go:generate mockgen -destination=./mocks/employee_repository.go -package=mocks Staffline/internal/repositories EmployeeRepository
type EmployeeRepository interface {
	// Single returns ErrEmployeeNotFound when nothing matches.
	Single(ctx context.Context, filter EmployeeFilter) (*Employee, error)
	// First returns nil without an error when nothing matches.
	First(ctx context.Context, filter EmployeeFilter) (*Employee, error)
	// Insert fails with ErrDuplicateKey if the email is already taken.
	Insert(ctx context.Context, employee *Employee) error
	// Update persists tracked changes. It fails with ErrEmployeeNotFound if the
	// record is gone and with ErrVersionMismatch on a concurrent update.
	Update(ctx context.Context, employee *Employee) error
	Ping(ctx context.Context) error
}
