package commands

import (
	"Staffline/internal/events"
	"Staffline/internal/mediator"
	"Staffline/internal/middlewares"
	"Staffline/internal/repositories"
	"Staffline/internal/services"
	"Staffline/utils"
	"context"
	"errors"
	"fmt"

	"github.com/The127/ioc"
)

// RegisterEmployee is open to anyone, so there is no policy check.
type RegisterEmployee struct {
	Email    string `validate:"required,email" name:"email"`
	Password string `validate:"required,minlength=6" name:"password"`
}

func (c RegisterEmployee) GetRequestName() string {
	return "RegisterEmployee"
}

type RegisterEmployeeResponse struct {
	Employee *repositories.Employee
}

func HandleRegisterEmployee(ctx context.Context, command RegisterEmployee) (*RegisterEmployeeResponse, error) {
	scope := middlewares.GetScope(ctx)
	employeeRepository := ioc.GetDependency[repositories.EmployeeRepository](scope)

	existing, err := employeeRepository.First(ctx, repositories.NewEmployeeFilter().Email(command.Email))
	if err != nil {
		return nil, fmt.Errorf("looking up employee: %w", err)
	}
	if existing != nil {
		return nil, ErrEmployeeAlreadyExists
	}

	codeGenerator := ioc.GetDependency[services.CodeGenerator](scope)
	code, err := codeGenerator.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating verification code: %w", err)
	}

	hasher := ioc.GetDependency[utils.PasswordHasher](scope)
	passwordHash, err := hasher.Hash(command.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	employee := repositories.NewEmployee(command.Email, passwordHash, code)
	err = employeeRepository.Insert(ctx, employee)
	switch {
	case errors.Is(err, repositories.ErrDuplicateKey):
		return nil, ErrEmployeeAlreadyExists

	case err != nil:
		return nil, fmt.Errorf("inserting employee: %w", err)
	}

	m := ioc.GetDependency[mediator.Mediator](scope)
	err = mediator.SendEvent(ctx, m, events.EmployeeRegisteredEvent{
		Email:            employee.Email(),
		VerificationCode: employee.VerificationCode(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}

	return &RegisterEmployeeResponse{
		Employee: employee,
	}, nil
}
