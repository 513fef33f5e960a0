// internal/workers/application/send-notification/templates.go
package sendnotification

import (
	"fmt"
	"strings"
	"text/template"
)

type message struct {
	subject *template.Template
	body    *template.Template
}

// templateData is what every template can reference.
type templateData struct {
	RecipientName     string
	JobTitle          string
	ApplicationID     int64
	ApplicationStatus string
	QuizTitle         string
	Score             int
	Passed            bool
	PortalURL         string
}

var templateSources = map[string][2]string{
	TypeApplicationSubmitted: {
		"Application received: {{.JobTitle}}",
		"Hi {{.RecipientName}}, your application for {{.JobTitle}} has been submitted. " +
			"Track it at {{.PortalURL}}/applications.",
	},
	TypeNewApplication: {
		"New applicant for {{.JobTitle}}",
		"Hello {{.RecipientName}}, a new candidate applied to {{.JobTitle}} (application #{{.ApplicationID}}). " +
			"Review it at {{.PortalURL}}/company/applications.",
	},
	TypeQuizResult: {
		"Your {{.QuizTitle}} result",
		"Hi {{.RecipientName}}, you scored {{.Score}}% on {{.QuizTitle}} for {{.JobTitle}}. " +
			"{{if .Passed}}You passed.{{else}}You did not reach the passing score.{{end}}",
	},
	TypeStatusChanged: {
		"Update on your application for {{.JobTitle}}",
		"Hi {{.RecipientName}}, your application for {{.JobTitle}} is now {{.ApplicationStatus}}.",
	},
}

func loadTemplates() (map[string]message, error) {
	out := make(map[string]message, len(templateSources))
	for name, src := range templateSources {
		subject, err := template.New(name + ".subject").Parse(src[0])
		if err != nil {
			return nil, fmt.Errorf("parse %s subject: %w", name, err)
		}
		body, err := template.New(name + ".body").Parse(src[1])
		if err != nil {
			return nil, fmt.Errorf("parse %s body: %w", name, err)
		}
		out[name] = message{subject: subject, body: body}
	}
	return out, nil
}

func (m message) render(data templateData) (string, string, error) {
	var subject, body strings.Builder
	if err := m.subject.Execute(&subject, data); err != nil {
		return "", "", err
	}
	if err := m.body.Execute(&body, data); err != nil {
		return "", "", err
	}
	return subject.String(), body.String(), nil
}
