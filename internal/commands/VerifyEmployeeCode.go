package commands

import (
	"Staffline/internal/middlewares"
	"Staffline/internal/repositories"
	"context"
	"errors"
	"fmt"

	"github.com/The127/ioc"
)

type VerifyEmployeeCode struct {
	Email            string `validate:"required,email" name:"email"`
	VerificationCode string `validate:"required" name:"verificationCode"`
}

func (c VerifyEmployeeCode) GetRequestName() string {
	return "VerifyEmployeeCode"
}

type VerifyEmployeeCodeResponse struct {
	Employee *repositories.Employee
}

func HandleVerifyEmployeeCode(ctx context.Context, command VerifyEmployeeCode) (*VerifyEmployeeCodeResponse, error) {
	scope := middlewares.GetScope(ctx)
	employeeRepository := ioc.GetDependency[repositories.EmployeeRepository](scope)

	filter := repositories.NewEmployeeFilter().Email(command.Email)
	employee, err := employeeRepository.First(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("looking up employee: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	if employee.VerificationCode() != command.VerificationCode {
		return nil, ErrInvalidVerificationCode
	}

	if employee.IsVerified() {
		return &VerifyEmployeeCodeResponse{
			Employee: employee,
		}, nil
	}

	employee.SetVerified(true)
	err = employeeRepository.Update(ctx, employee)
	if errors.Is(err, repositories.ErrVersionMismatch) {
		// a concurrent verification won, which leaves the same end state
		employee, err = employeeRepository.Single(ctx, filter)
		if err == nil && !employee.IsVerified() {
			err = repositories.ErrVersionMismatch
		}
	}
	if err != nil {
		return nil, fmt.Errorf("updating employee: %w", err)
	}

	return &VerifyEmployeeCodeResponse{
		Employee: employee,
	}, nil
}
