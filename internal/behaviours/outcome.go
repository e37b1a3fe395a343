package behaviours

import (
	"Staffline/internal/commands"
	"Staffline/utils"
	"errors"
)

const (
	OutcomeOk            = "ok"
	OutcomeRejected      = "rejected"
	OutcomeEmailDelivery = "email_delivery"
	OutcomeInternal      = "internal"
)

// Outcome classifies the result of a request. Client errors are rejected,
// everything else that is not a mail failure counts as internal.
func Outcome(err error) string {
	var httpErr *utils.HttpError
	switch {
	case err == nil:
		return OutcomeOk

	case errors.As(err, &httpErr):
		return OutcomeRejected

	case errors.Is(err, commands.ErrEmailDelivery):
		return OutcomeEmailDelivery

	default:
		return OutcomeInternal
	}
}
