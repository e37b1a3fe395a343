package client

import (
	"Staffline/internal/handlers"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type EmployeeClient interface {
	Register(ctx context.Context, dto handlers.RegisterEmployeeRequestDto) (handlers.EmployeeResponseDto, error)
	VerifyCode(ctx context.Context, dto handlers.VerifyEmployeeCodeRequestDto) (handlers.EmployeeResponseDto, error)
}

func NewEmployeeClient(transport *Transport) EmployeeClient {
	return &employeeClient{
		transport: transport,
	}
}

type employeeClient struct {
	transport *Transport
}

func (c *employeeClient) Register(ctx context.Context, dto handlers.RegisterEmployeeRequestDto) (handlers.EmployeeResponseDto, error) {
	return c.post(ctx, "/register", dto)
}

func (c *employeeClient) VerifyCode(ctx context.Context, dto handlers.VerifyEmployeeCodeRequestDto) (handlers.EmployeeResponseDto, error) {
	return c.post(ctx, "/verify-code", dto)
}

func (c *employeeClient) post(ctx context.Context, endpoint string, dto any) (handlers.EmployeeResponseDto, error) {
	body, err := json.Marshal(dto)
	if err != nil {
		return handlers.EmployeeResponseDto{}, fmt.Errorf("marshaling dto: %w", err)
	}

	request, err := c.transport.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return handlers.EmployeeResponseDto{}, fmt.Errorf("creating request: %w", err)
	}

	response, err := c.transport.Do(request)
	if err != nil {
		return handlers.EmployeeResponseDto{}, fmt.Errorf("doing request: %w", err)
	}
	defer response.Body.Close()

	var responseDto handlers.EmployeeResponseDto
	err = json.NewDecoder(response.Body).Decode(&responseDto)
	if err != nil {
		return handlers.EmployeeResponseDto{}, fmt.Errorf("decoding response: %w", err)
	}

	return responseDto, nil
}
