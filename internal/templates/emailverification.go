package templates

import _ "embed"

type TemplateType string

const (
	EmailVerificationTemplate TemplateType = "email_verification"
)

const EmailVerificationSubject = "Email Verification"

//go:embed email_verification_template.txt
var DefaultEmailVerificationTemplate string

type EmailVerificationTemplateData struct {
	Code string
}

// Defaults maps every template type to its built-in content.
var Defaults = map[TemplateType]string{
	EmailVerificationTemplate: DefaultEmailVerificationTemplate,
}
