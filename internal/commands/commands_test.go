package commands

import (
	"Staffline/internal/clock"
	"Staffline/internal/events"
	"Staffline/internal/mediator"
	"Staffline/internal/middlewares"
	"Staffline/internal/repositories"
	"Staffline/internal/repositories/memory"
	"Staffline/internal/services"
	"Staffline/utils"
	"context"
	"testing"

	"github.com/The127/ioc"
	"github.com/stretchr/testify/require"
)

type harness struct {
	ctx       context.Context
	employees repositories.EmployeeRepository
}

func newHarness(t *testing.T, mailService services.MailService, codeGenerator services.CodeGenerator) harness {
	t.Helper()

	clockService, _ := clock.NewMockServiceNow()
	employees := memory.NewEmployeeRepository(clockService)

	templateService, err := services.NewTemplateService()
	require.NoError(t, err)

	m := mediator.NewMediator()
	mediator.RegisterEventHandler(m, events.SendVerificationMailOnEmployeeRegisteredEvent)

	dc := ioc.NewDependencyCollection()
	ioc.RegisterTransient(dc, func(dp *ioc.DependencyProvider) repositories.EmployeeRepository {
		return employees
	})
	ioc.RegisterTransient(dc, func(dp *ioc.DependencyProvider) utils.PasswordHasher {
		return utils.NewBcryptHasher()
	})
	ioc.RegisterTransient(dc, func(dp *ioc.DependencyProvider) services.CodeGenerator {
		return codeGenerator
	})
	ioc.RegisterTransient(dc, func(dp *ioc.DependencyProvider) services.TemplateService {
		return templateService
	})
	ioc.RegisterTransient(dc, func(dp *ioc.DependencyProvider) services.MailService {
		return mailService
	})
	ioc.RegisterTransient(dc, func(dp *ioc.DependencyProvider) mediator.Mediator {
		return m
	})
	scope := dc.BuildProvider()

	return harness{
		ctx:       middlewares.ContextWithScope(t.Context(), scope),
		employees: employees,
	}
}

func (h harness) employee(t *testing.T, email string) *repositories.Employee {
	t.Helper()

	employee, err := h.employees.First(h.ctx, repositories.NewEmployeeFilter().Email(email))
	require.NoError(t, err)
	return employee
}
