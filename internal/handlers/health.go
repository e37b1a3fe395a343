package handlers

import (
	"Staffline/internal/middlewares"
	"Staffline/internal/repositories"
	"Staffline/utils"
	"fmt"
	"net/http"

	"github.com/The127/ioc"
)

type HealthResponseDto struct {
	Status string `json:"status"`
}

// ApplicationHealth reports whether the employee store is reachable.
// @Summary     Health check
// @Tags        Monitoring
// @Produce     json
// @Success     200 {object} HealthResponseDto
// @Failure     500 {object} utils.ErrorResponseDto
// @Router      /health [get]
func ApplicationHealth(w http.ResponseWriter, r *http.Request) {
	scope := middlewares.GetScope(r.Context())
	employeeRepository := ioc.GetDependency[repositories.EmployeeRepository](scope)

	err := employeeRepository.Ping(r.Context())
	if err != nil {
		utils.HandleHttpError(w, fmt.Errorf("pinging employee store: %w", err))
		return
	}

	utils.WriteJson(w, http.StatusOK, HealthResponseDto{Status: "ok"})
}
