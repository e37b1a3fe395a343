package postgres

import (
	"Staffline/internal/clock"
	"Staffline/internal/repositories"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSelectQuery_FiltersByEmail(t *testing.T) {
	t.Parallel()

	// arrange
	r := NewEmployeeRepository(nil, clock.NewClockService())
	filter := repositories.NewEmployeeFilter().Email("a@x.com")

	// act
	query, args := r.selectQuery(filter).Build()

	// assert
	assert.Contains(t, query, "FROM employees")
	assert.Contains(t, query, "email = $1")
	assert.NotContains(t, query, "id = $")
	assert.Equal(t, []any{"a@x.com"}, args)
}

func TestSelectQuery_FiltersById(t *testing.T) {
	t.Parallel()

	// arrange
	r := NewEmployeeRepository(nil, clock.NewClockService())
	id := uuid.New()

	// act
	query, args := r.selectQuery(repositories.NewEmployeeFilter().Id(id)).Build()

	// assert
	assert.Contains(t, query, "id = $1")
	assert.Equal(t, []any{id}, args)
}

func TestInsertQuery(t *testing.T) {
	t.Parallel()

	// arrange
	r := NewEmployeeRepository(nil, clock.NewClockService())
	employee := repositories.NewEmployee("a@x.com", "hash", "123456")
	id := uuid.New()
	now := time.Now()

	// act
	query, args := r.insertQuery(id, now, employee).Build()

	// assert
	assert.Contains(t, query, "INSERT INTO employees")
	assert.Equal(t, []any{id, now, now, 1, "a@x.com", "hash", "123456", false}, args)
}

func TestUpdateQuery_OnlyTouchesChangedColumns(t *testing.T) {
	t.Parallel()

	// arrange
	r := NewEmployeeRepository(nil, clock.NewClockService())
	now := time.Now()
	employee := repositories.NewEmployee("a@x.com", "hash", "123456")
	employee.Mock(now)
	employee.SetVerified(true)

	// act
	query, args := r.updateQuery(now, employee).Build()

	// assert
	assert.Contains(t, query, "UPDATE employees")
	assert.Contains(t, query, "is_verified = $")
	assert.NotContains(t, query, "password_hash")
	assert.NotContains(t, query, "verification_code")
	assert.Equal(t, []any{now, int64(2), true, employee.Id(), int64(1)}, args)
}
