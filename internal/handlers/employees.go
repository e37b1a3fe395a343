package handlers

import (
	"Staffline/internal/commands"
	"Staffline/internal/mediator"
	"Staffline/internal/middlewares"
	"Staffline/internal/repositories"
	"Staffline/utils"
	"encoding/json"
	"net/http"

	"github.com/The127/ioc"
	"github.com/google/uuid"
)

const (
	RegisteredMessage = "Employee registered successfully. Check your email for the verification code."
	VerifiedMessage   = "Verification successful."
)

var ErrInvalidRequestBody = utils.BadRequest("invalid request body")

// EmployeeDto is the public view of an employee. The password hash and the
// verification code never leave the server.
type EmployeeDto struct {
	Id         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"isVerified"`
}

func mapEmployee(e *repositories.Employee) EmployeeDto {
	return EmployeeDto{
		Id:         e.Id(),
		Email:      e.Email(),
		IsVerified: e.IsVerified(),
	}
}

type EmployeeResponseDto struct {
	Message  string      `json:"message"`
	Employee EmployeeDto `json:"employee"`
}

type RegisterEmployeeRequestDto struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterEmployee creates an unverified employee and mails a verification code.
// @Summary      Register employee
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterEmployeeRequestDto  true  "Credentials"
// @Success      200   {object}  EmployeeResponseDto
// @Failure      400   {object}  utils.ErrorResponseDto
// @Failure      500   {object}  utils.ErrorResponseDto
// @Router       /employees/register [post]
func RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var dto RegisterEmployeeRequestDto
	err := json.NewDecoder(r.Body).Decode(&dto)
	if err != nil {
		utils.HandleHttpError(w, ErrInvalidRequestBody)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.RegisterEmployeeResponse](ctx, m, commands.RegisterEmployee{
		Email:    dto.Email,
		Password: dto.Password,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	utils.WriteJson(w, http.StatusOK, EmployeeResponseDto{
		Message:  RegisteredMessage,
		Employee: mapEmployee(response.Employee),
	})
}

type VerifyEmployeeCodeRequestDto struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

// VerifyEmployeeCode marks the employee as verified when the code matches.
// @Summary      Verify employee code
// @Tags         Employees
// @Accept       json
// @Produce      json
// @Param        body  body      VerifyEmployeeCodeRequestDto  true  "Email and code"
// @Success      200   {object}  EmployeeResponseDto
// @Failure      400   {object}  utils.ErrorResponseDto
// @Failure      404   {object}  utils.ErrorResponseDto
// @Failure      500   {object}  utils.ErrorResponseDto
// @Router       /employees/verify-code [post]
func VerifyEmployeeCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var dto VerifyEmployeeCodeRequestDto
	err := json.NewDecoder(r.Body).Decode(&dto)
	if err != nil {
		utils.HandleHttpError(w, ErrInvalidRequestBody)
		return
	}

	scope := middlewares.GetScope(ctx)
	m := ioc.GetDependency[mediator.Mediator](scope)

	response, err := mediator.Send[*commands.VerifyEmployeeCodeResponse](ctx, m, commands.VerifyEmployeeCode{
		Email:            dto.Email,
		VerificationCode: dto.VerificationCode,
	})
	if err != nil {
		utils.HandleHttpError(w, err)
		return
	}

	utils.WriteJson(w, http.StatusOK, EmployeeResponseDto{
		Message:  VerifiedMessage,
		Employee: mapEmployee(response.Employee),
	})
}
