package redis

import (
	"Staffline/internal/clock"
	"Staffline/internal/repositories"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "staffline:employees:"

func emailKey(email string) string {
	return keyPrefix + "email:" + email
}

func idKey(id uuid.UUID) string {
	return keyPrefix + "id:" + id.String()
}

type redisEmployee struct {
	Id               uuid.UUID `json:"id"`
	AuditCreatedAt   time.Time `json:"auditCreatedAt"`
	AuditUpdatedAt   time.Time `json:"auditUpdatedAt"`
	Version          int64     `json:"version"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"passwordHash"`
	VerificationCode string    `json:"verificationCode"`
	IsVerified       bool      `json:"isVerified"`
}

func mapEmployee(e *repositories.Employee) redisEmployee {
	return redisEmployee{
		Id:               e.Id(),
		AuditCreatedAt:   e.AuditCreatedAt(),
		AuditUpdatedAt:   e.AuditUpdatedAt(),
		Version:          e.Version(),
		Email:            e.Email(),
		PasswordHash:     e.PasswordHash(),
		VerificationCode: e.VerificationCode(),
		IsVerified:       e.IsVerified(),
	}
}

func (e redisEmployee) Map() *repositories.Employee {
	return repositories.NewEmployeeFromDB(
		repositories.NewBaseModelFromDB(e.Id, e.AuditCreatedAt, e.AuditUpdatedAt, e.Version),
		e.Email,
		e.PasswordHash,
		e.VerificationCode,
		e.IsVerified,
	)
}

// EmployeeRepository stores every employee as a JSON document under its email.
// A second key maps ids to emails.
type EmployeeRepository struct {
	client *redis.Client
	clock  clock.Service
}

func NewEmployeeRepository(client *redis.Client, clockService clock.Service) *EmployeeRepository {
	return &EmployeeRepository{
		client: client,
		clock:  clockService,
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

func (r *EmployeeRepository) First(ctx context.Context, filter repositories.EmployeeFilter) (*repositories.Employee, error) {
	var email string

	switch {
	case filter.HasEmail():
		email = filter.GetEmail()

	case filter.HasId():
		value, err := r.client.Get(ctx, idKey(filter.GetId())).Result()
		switch {
		case errors.Is(err, redis.Nil):
			return nil, nil

		case err != nil:
			return nil, fmt.Errorf("resolving employee id: %w", err)
		}
		email = value

	default:
		return nil, fmt.Errorf("employee lookup needs an email or id filter")
	}

	document, err := r.load(ctx, r.client, email)
	if err != nil || document == nil {
		return nil, err
	}

	employee := document.Map()
	if !filter.Matches(employee) {
		return nil, nil
	}

	return employee, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *EmployeeRepository) load(ctx context.Context, c getter, email string) (*redisEmployee, error) {
	value, err := c.Get(ctx, emailKey(email)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil

	case err != nil:
		return nil, fmt.Errorf("getting employee: %w", err)
	}

	var document redisEmployee
	err = json.Unmarshal(value, &document)
	if err != nil {
		return nil, fmt.Errorf("decoding employee: %w", err)
	}

	return &document, nil
}

func (r *EmployeeRepository) Insert(ctx context.Context, employee *repositories.Employee) error {
	id := uuid.New()
	now := r.clock.Now()

	document := mapEmployee(employee)
	document.Id = id
	document.AuditCreatedAt = now
	document.AuditUpdatedAt = now
	document.Version = 1

	value, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("encoding employee: %w", err)
	}

	key := emailKey(employee.Email())

	// the document and the id index are written in one MULTI so neither exists without the other
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return repositories.ErrDuplicateKey
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, 0)
			pipe.Set(ctx, idKey(id), employee.Email(), 0)
			return nil
		})
		return err
	}, key)

	switch {
	case errors.Is(err, repositories.ErrDuplicateKey), errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("inserting employee %s: %w", employee.Email(), repositories.ErrDuplicateKey)

	case err != nil:
		return fmt.Errorf("inserting employee: %w", err)
	}

	employee.Inserted(id, now, 1)
	return nil
}

func (r *EmployeeRepository) Update(ctx context.Context, employee *repositories.Employee) error {
	if !employee.HasChanges() {
		return nil
	}

	now := r.clock.Now()
	key := emailKey(employee.Email())

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := r.load(ctx, tx, employee.Email())
		if err != nil {
			return err
		}

		if stored == nil || stored.Id != employee.Id() {
			return repositories.ErrEmployeeNotFound
		}

		if stored.Version != employee.Version() {
			return repositories.ErrVersionMismatch
		}

		document := mapEmployee(employee)
		document.AuditUpdatedAt = now
		document.Version = employee.Version() + 1

		value, err := json.Marshal(document)
		if err != nil {
			return fmt.Errorf("encoding employee: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetXX(ctx, key, value, redis.KeepTTL)
			return nil
		})
		return err
	}, key)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		return repositories.ErrVersionMismatch

	case err != nil:
		return fmt.Errorf("updating employee: %w", err)
	}

	employee.Updated(now, employee.Version()+1)
	return nil
}

func (r *EmployeeRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
