package services

import (
	"Staffline/internal/templates"
	"bytes"
	"fmt"
	"text/template"
)

type TemplateService interface {
	Template(templateType templates.TemplateType, data any) (string, error)
}

type templateService struct {
	parsed map[templates.TemplateType]*template.Template
}

func NewTemplateService() (TemplateService, error) {
	parsed := make(map[templates.TemplateType]*template.Template, len(templates.Defaults))
	for templateType, content := range templates.Defaults {
		t, err := template.New(string(templateType)).Option("missingkey=error").Parse(content)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", templateType, err)
		}
		parsed[templateType] = t
	}

	return &templateService{
		parsed: parsed,
	}, nil
}

func (s *templateService) Template(templateType templates.TemplateType, data any) (string, error) {
	t, ok := s.parsed[templateType]
	if !ok {
		return "", fmt.Errorf("template %s not found", templateType)
	}

	var buf bytes.Buffer
	err := t.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
