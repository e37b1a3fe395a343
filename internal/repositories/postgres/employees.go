package postgres

import (
	"Staffline/internal/clock"
	"Staffline/internal/logging"
	"Staffline/internal/repositories"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type postgresEmployee struct {
	id               uuid.UUID
	auditCreatedAt   time.Time
	auditUpdatedAt   time.Time
	version          int64
	email            string
	passwordHash     string
	verificationCode string
	verified         bool
}

func (e *postgresEmployee) scanPointers() []any {
	return []any{
		&e.id,
		&e.auditCreatedAt,
		&e.auditUpdatedAt,
		&e.version,
		&e.email,
		&e.passwordHash,
		&e.verificationCode,
		&e.verified,
	}
}

func (e *postgresEmployee) Map() *repositories.Employee {
	return repositories.NewEmployeeFromDB(
		repositories.NewBaseModelFromDB(e.id, e.auditCreatedAt, e.auditUpdatedAt, e.version),
		e.email,
		e.passwordHash,
		e.verificationCode,
		e.verified,
	)
}

type EmployeeRepository struct {
	db    *sql.DB
	clock clock.Service
}

func NewEmployeeRepository(db *sql.DB, clockService clock.Service) *EmployeeRepository {
	return &EmployeeRepository{
		db:    db,
		clock: clockService,
	}
}

func (r *EmployeeRepository) selectQuery(filter repositories.EmployeeFilter) *sqlbuilder.SelectBuilder {
	s := sqlbuilder.PostgreSQL.NewSelectBuilder()
	s.Select(
		"id",
		"audit_created_at",
		"audit_updated_at",
		"version",
		"email",
		"password_hash",
		"verification_code",
		"is_verified",
	).From("employees")

	if filter.HasId() {
		s.Where(s.Equal("id", filter.GetId()))
	}

	if filter.HasEmail() {
		s.Where(s.Equal("email", filter.GetEmail()))
	}

	return s
}

func (r *EmployeeRepository) Single(ctx context.Context, filter repositories.EmployeeFilter) (*repositories.Employee, error) {
	employee, err := r.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, repositories.ErrEmployeeNotFound
	}
	return employee, nil
}

func (r *EmployeeRepository) First(ctx context.Context, filter repositories.EmployeeFilter) (*repositories.Employee, error) {
	s := r.selectQuery(filter)
	s.Limit(1)

	query, args := s.Build()
	logging.Logger.Debug("executing sql: ", query)
	row := r.db.QueryRowContext(ctx, query, args...)

	employee := &postgresEmployee{}
	err := row.Scan(employee.scanPointers()...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil

	case err != nil:
		return nil, fmt.Errorf("scanning row: %w", err)
	}

	return employee.Map(), nil
}

func (r *EmployeeRepository) insertQuery(id uuid.UUID, now time.Time, employee *repositories.Employee) *sqlbuilder.InsertBuilder {
	s := sqlbuilder.PostgreSQL.NewInsertBuilder()
	s.InsertInto("employees").
		Cols(
			"id",
			"audit_created_at",
			"audit_updated_at",
			"version",
			"email",
			"password_hash",
			"verification_code",
			"is_verified",
		).
		Values(
			id,
			now,
			now,
			1,
			employee.Email(),
			employee.PasswordHash(),
			employee.VerificationCode(),
			employee.IsVerified(),
		)
	return s
}

func (r *EmployeeRepository) Insert(ctx context.Context, employee *repositories.Employee) error {
	id := uuid.New()
	now := r.clock.Now()

	query, args := r.insertQuery(id, now, employee).Build()
	logging.Logger.Debug("executing sql: ", query)
	_, err := r.db.ExecContext(ctx, query, args...)

	var pqErr *pq.Error
	switch {
	case errors.As(err, &pqErr) && pqErr.Code == uniqueViolation:
		return fmt.Errorf("inserting employee %s: %w", employee.Email(), repositories.ErrDuplicateKey)

	case err != nil:
		return fmt.Errorf("inserting employee: %w", err)
	}

	employee.Inserted(id, now, 1)
	return nil
}

func (r *EmployeeRepository) updateQuery(now time.Time, employee *repositories.Employee) *sqlbuilder.UpdateBuilder {
	s := sqlbuilder.PostgreSQL.NewUpdateBuilder()
	s.Update("employees")

	changes := employee.Changes()
	columns := make([]string, 0, len(changes))
	for column := range changes {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	assignments := []string{
		s.Assign("audit_updated_at", now),
		s.Assign("version", employee.Version()+1),
	}
	for _, column := range columns {
		assignments = append(assignments, s.Assign(column, changes[column]))
	}
	s.Set(assignments...)

	s.Where(
		s.Equal("id", employee.Id()),
		s.Equal("version", employee.Version()),
	)

	return s
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *repositories.Employee) error {
	if !employee.HasChanges() {
		return nil
	}

	now := r.clock.Now()

	query, args := r.updateQuery(now, employee).Build()
	logging.Logger.Debug("executing sql: ", query)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if affected == 0 {
		current, err := r.First(ctx, repositories.NewEmployeeFilter().Id(employee.Id()))
		if err != nil {
			return err
		}
		if current == nil {
			return repositories.ErrEmployeeNotFound
		}
		return repositories.ErrVersionMismatch
	}

	employee.Updated(now, employee.Version()+1)
	return nil
}

func (r *EmployeeRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
