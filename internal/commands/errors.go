package commands

import (
	"Staffline/utils"
	"errors"
)

var (
	ErrEmployeeAlreadyExists   = utils.BadRequest("Employee already exists.")
	ErrEmployeeNotFound        = utils.NotFound("Employee not found.")
	ErrInvalidVerificationCode = utils.BadRequest("Invalid verification code.")
)

// ErrEmailDelivery marks a registration whose record was stored but whose
// verification mail could not be sent.
var ErrEmailDelivery = errors.New("email delivery failed")
