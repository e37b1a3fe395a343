package redis

import (
	"Staffline/internal/clock"
	"Staffline/internal/repositories"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestKeys(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6b1d3a4e-2f0c-4d8e-9a51-0c7f1e2d3b4a")

	assert.Equal(t, "staffline:employees:email:a@x.com", emailKey("a@x.com"))
	assert.Equal(t, "staffline:employees:id:6b1d3a4e-2f0c-4d8e-9a51-0c7f1e2d3b4a", idKey(id))
}

func TestDocumentKeepsVerificationState(t *testing.T) {
	t.Parallel()

	// arrange
	employee := repositories.NewEmployee("a@x.com", "hash", "123456")
	employee.Mock(time.Now())
	employee.SetVerified(true)

	// act
	mapped := mapEmployee(employee).Map()

	// assert
	assert.Equal(t, employee.Id(), mapped.Id())
	assert.Equal(t, employee.Version(), mapped.Version())
	assert.True(t, mapped.IsVerified())
	assert.Equal(t, "123456", mapped.VerificationCode())
	assert.False(t, mapped.HasChanges())
}

type EmployeeRepositorySuite struct {
	suite.Suite
	now        time.Time
	setTime    clock.TimeSetterFn
	server     *miniredis.Miniredis
	client     *redis.Client
	repository *EmployeeRepository
}

func TestEmployeeRepositorySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(EmployeeRepositorySuite))
}

func (s *EmployeeRepositorySuite) SetupTest() {
	s.now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clockService, setTime := clock.NewMockService(s.now)
	s.setTime = setTime

	s.server = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.server.Addr()})
	s.repository = NewEmployeeRepository(s.client, clockService)
}

func (s *EmployeeRepositorySuite) TearDownTest() {
	s.Require().NoError(s.client.Close())
}

func (s *EmployeeRepositorySuite) TestInsertWritesDocumentAndIdIndex() {
	// arrange
	employee := repositories.NewEmployee("a@x.com", "hash", "123456")

	// act
	err := s.repository.Insert(s.T().Context(), employee)

	// assert
	s.Require().NoError(err)
	s.Equal(int64(1), employee.Version())
	s.Equal([]string{emailKey("a@x.com"), idKey(employee.Id())}, s.server.Keys())
	indexed, err := s.server.Get(idKey(employee.Id()))
	s.Require().NoError(err)
	s.Equal("a@x.com", indexed)
}

func (s *EmployeeRepositorySuite) TestInsertDuplicateEmailFails() {
	// arrange
	first := repositories.NewEmployee("a@x.com", "hash", "123456")
	s.Require().NoError(s.repository.Insert(s.T().Context(), first))
	second := repositories.NewEmployee("a@x.com", "other", "654321")

	// act
	err := s.repository.Insert(s.T().Context(), second)

	// assert
	s.ErrorIs(err, repositories.ErrDuplicateKey)
	s.Len(s.server.Keys(), 2)
	stored, err := s.repository.Single(s.T().Context(), repositories.NewEmployeeFilter().Email("a@x.com"))
	s.Require().NoError(err)
	s.Equal(first.Id(), stored.Id())
	s.Equal("123456", stored.VerificationCode())
}

func (s *EmployeeRepositorySuite) TestInsertFailureLeavesNoDocument() {
	// arrange
	s.server.SetError("READONLY You can't write against a read only replica.")

	// act
	err := s.repository.Insert(s.T().Context(), repositories.NewEmployee("a@x.com", "hash", "123456"))

	// assert
	s.Error(err)
	s.NotErrorIs(err, repositories.ErrDuplicateKey)
	s.server.SetError("")
	s.Empty(s.server.Keys())
	s.NoError(s.repository.Insert(s.T().Context(), repositories.NewEmployee("a@x.com", "hash", "123456")))
}

func (s *EmployeeRepositorySuite) TestFirstMissReturnsNil() {
	// act
	employee, err := s.repository.First(s.T().Context(), repositories.NewEmployeeFilter().Email("nobody@x.com"))

	// assert
	s.NoError(err)
	s.Nil(employee)
}

func (s *EmployeeRepositorySuite) TestFirstById() {
	// arrange
	employee := repositories.NewEmployee("a@x.com", "hash", "123456")
	s.Require().NoError(s.repository.Insert(s.T().Context(), employee))

	// act
	found, err := s.repository.First(s.T().Context(), repositories.NewEmployeeFilter().Id(employee.Id()))

	// assert
	s.Require().NoError(err)
	s.Equal("a@x.com", found.Email())
	s.Equal(employee.Id(), found.Id())
}

func (s *EmployeeRepositorySuite) TestUpdatePersistsVerification() {
	// arrange
	s.Require().NoError(s.repository.Insert(s.T().Context(), repositories.NewEmployee("a@x.com", "hash", "123456")))
	employee, err := s.repository.Single(s.T().Context(), repositories.NewEmployeeFilter().Email("a@x.com"))
	s.Require().NoError(err)
	later := s.now.Add(time.Minute)
	s.setTime(later)

	// act
	employee.SetVerified(true)
	err = s.repository.Update(s.T().Context(), employee)

	// assert
	s.Require().NoError(err)
	s.Equal(int64(2), employee.Version())
	stored, err := s.repository.Single(s.T().Context(), repositories.NewEmployeeFilter().Email("a@x.com"))
	s.Require().NoError(err)
	s.True(stored.IsVerified())
	s.Equal(int64(2), stored.Version())
	s.True(later.Equal(stored.AuditUpdatedAt()))
}

func (s *EmployeeRepositorySuite) TestUpdateStaleVersionFails() {
	// arrange
	s.Require().NoError(s.repository.Insert(s.T().Context(), repositories.NewEmployee("a@x.com", "hash", "123456")))
	filter := repositories.NewEmployeeFilter().Email("a@x.com")
	first, err := s.repository.Single(s.T().Context(), filter)
	s.Require().NoError(err)
	second, err := s.repository.Single(s.T().Context(), filter)
	s.Require().NoError(err)

	first.SetVerified(true)
	s.Require().NoError(s.repository.Update(s.T().Context(), first))

	// act
	second.SetVerified(true)
	err = s.repository.Update(s.T().Context(), second)

	// assert
	s.ErrorIs(err, repositories.ErrVersionMismatch)
}

func (s *EmployeeRepositorySuite) TestUpdateUnknownEmployeeFails() {
	// arrange
	employee := repositories.NewEmployee("a@x.com", "hash", "123456")
	employee.Mock(s.now)

	// act
	employee.SetVerified(true)
	err := s.repository.Update(s.T().Context(), employee)

	// assert
	s.ErrorIs(err, repositories.ErrEmployeeNotFound)
}

func TestConcurrentInsertsForSameEmail(t *testing.T) {
	t.Parallel()

	// arrange
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	clockService, _ := clock.NewMockServiceNow()
	repository := NewEmployeeRepository(client, clockService)

	var succeeded atomic.Int32
	var duplicates atomic.Int32
	var wg sync.WaitGroup

	// act
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repository.Insert(t.Context(), repositories.NewEmployee("race@x.com", "hash", fmt.Sprintf("%06d", 100000+i)))
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, repositories.ErrDuplicateKey):
				duplicates.Add(1)
			}
		}(i)
	}
	wg.Wait()

	// assert
	require.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(15), duplicates.Load())
	assert.Len(t, server.Keys(), 2)
}
