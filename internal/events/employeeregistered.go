package events

import (
	"Staffline/internal/middlewares"
	"Staffline/internal/services"
	"Staffline/internal/templates"
	"context"
	"fmt"

	"github.com/The127/ioc"
)

type EmployeeRegisteredEvent struct {
	Email            string
	VerificationCode string
}

func SendVerificationMailOnEmployeeRegisteredEvent(ctx context.Context, event EmployeeRegisteredEvent) error {
	scope := middlewares.GetScope(ctx)

	templateService := ioc.GetDependency[services.TemplateService](scope)
	mailBody, err := templateService.Template(
		templates.EmailVerificationTemplate,
		templates.EmailVerificationTemplateData{
			Code: event.VerificationCode,
		},
	)
	if err != nil {
		return fmt.Errorf("templating email verification mail: %w", err)
	}

	mailService := ioc.GetDependency[services.MailService](scope)
	err = mailService.Send(ctx, event.Email, templates.EmailVerificationSubject, mailBody)
	if err != nil {
		return fmt.Errorf("sending email verification mail: %w", err)
	}

	return nil
}
