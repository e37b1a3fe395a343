package memory

import (
	"Staffline/internal/clock"
	"Staffline/internal/repositories"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type EmployeeRepositorySuite struct {
	suite.Suite
	now        time.Time
	setTime    clock.TimeSetterFn
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
	s.repository = NewEmployeeRepository(clockService)
}

func (s *EmployeeRepositorySuite) TestInsertPopulatesBase() {
	// arrange
	employee := repositories.NewEmployee("a@x.com", "hash", "123456")

	// act
	err := s.repository.Insert(s.T().Context(), employee)

	// assert
	s.Require().NoError(err)
	s.NotZero(employee.Id())
	s.Equal(s.now, employee.AuditCreatedAt())
	s.Equal(int64(1), employee.Version())
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
	stored, err := s.repository.Single(s.T().Context(), repositories.NewEmployeeFilter().Email("a@x.com"))
	s.Require().NoError(err)
	s.Equal(first.Id(), stored.Id())
	s.Equal("123456", stored.VerificationCode())
}

func (s *EmployeeRepositorySuite) TestFirstMissReturnsNil() {
	// act
	employee, err := s.repository.First(s.T().Context(), repositories.NewEmployeeFilter().Email("nobody@x.com"))

	// assert
	s.NoError(err)
	s.Nil(employee)
}

func (s *EmployeeRepositorySuite) TestFirstIsExactMatch() {
	// arrange
	s.Require().NoError(s.repository.Insert(s.T().Context(), repositories.NewEmployee("a@x.com", "hash", "123456")))

	// act
	employee, err := s.repository.First(s.T().Context(), repositories.NewEmployeeFilter().Email("A@x.com"))

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
}

func (s *EmployeeRepositorySuite) TestSingleMissReturnsNotFound() {
	// act
	_, err := s.repository.Single(s.T().Context(), repositories.NewEmployeeFilter().Email("nobody@x.com"))

	// assert
	s.ErrorIs(err, repositories.ErrEmployeeNotFound)
}

func (s *EmployeeRepositorySuite) TestReturnedRecordsAreDetached() {
	// arrange
	s.Require().NoError(s.repository.Insert(s.T().Context(), repositories.NewEmployee("a@x.com", "hash", "123456")))
	employee, err := s.repository.Single(s.T().Context(), repositories.NewEmployeeFilter().Email("a@x.com"))
	s.Require().NoError(err)

	// act
	employee.SetVerified(true)

	// assert
	stored, err := s.repository.Single(s.T().Context(), repositories.NewEmployeeFilter().Email("a@x.com"))
	s.Require().NoError(err)
	s.False(stored.IsVerified())
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
	s.False(employee.HasChanges())
	stored, err := s.repository.Single(s.T().Context(), repositories.NewEmployeeFilter().Email("a@x.com"))
	s.Require().NoError(err)
	s.True(stored.IsVerified())
	s.Equal(later, stored.AuditUpdatedAt())
}

func (s *EmployeeRepositorySuite) TestUpdateWithoutChangesIsNoop() {
	// arrange
	employee := repositories.NewEmployee("a@x.com", "hash", "123456")
	s.Require().NoError(s.repository.Insert(s.T().Context(), employee))

	// act
	err := s.repository.Update(s.T().Context(), employee)

	// assert
	s.NoError(err)
	s.Equal(int64(1), employee.Version())
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
	clockService, _ := clock.NewMockServiceNow()
	repository := NewEmployeeRepository(clockService)

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
}
