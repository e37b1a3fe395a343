package memory

import (
	"Staffline/internal/clock"
	"Staffline/internal/repositories"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// EmployeeRepository keeps employees in process memory, keyed by email.
type EmployeeRepository struct {
	clock clock.Service

	mu      sync.RWMutex
	byEmail map[string]*repositories.Employee
}

func NewEmployeeRepository(clockService clock.Service) *EmployeeRepository {
	return &EmployeeRepository{
		clock:   clockService,
		byEmail: make(map[string]*repositories.Employee),
	}
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

func (r *EmployeeRepository) First(_ context.Context, filter repositories.EmployeeFilter) (*repositories.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if filter.HasEmail() {
		employee, ok := r.byEmail[filter.GetEmail()]
		if !ok || !filter.Matches(employee) {
			return nil, nil
		}
		return employee.Clone(), nil
	}

	for _, employee := range r.byEmail {
		if filter.Matches(employee) {
			return employee.Clone(), nil
		}
	}

	return nil, nil
}

func (r *EmployeeRepository) Insert(_ context.Context, employee *repositories.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[employee.Email()]; ok {
		return fmt.Errorf("inserting employee %s: %w", employee.Email(), repositories.ErrDuplicateKey)
	}

	employee.Inserted(uuid.New(), r.clock.Now(), 1)
	r.byEmail[employee.Email()] = employee.Clone()

	return nil
}

func (r *EmployeeRepository) Update(_ context.Context, employee *repositories.Employee) error {
	if !employee.HasChanges() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byEmail[employee.Email()]
	if !ok || stored.Id() != employee.Id() {
		return repositories.ErrEmployeeNotFound
	}

	if stored.Version() != employee.Version() {
		return repositories.ErrVersionMismatch
	}

	employee.Updated(r.clock.Now(), employee.Version()+1)
	r.byEmail[employee.Email()] = employee.Clone()

	return nil
}

func (r *EmployeeRepository) Ping(_ context.Context) error {
	return nil
}
