// internal/common/aws/ses.go
package aws

import (
	"context"
	"errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the slice of the SES client the mailer uses.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Mailer struct {
	api  SESAPI
	from string
}

func NewMailer(api SESAPI, from string) *Mailer {
	return &Mailer{api: api, from: from}
}

func NewSESMailer(cfg awssdk.Config, from string) *Mailer {
	return NewMailer(ses.NewFromConfig(cfg), from)
}

// Send delivers a single message and returns the SES message id.
func (m *Mailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) (string, error) {
	if to == "" {
		return "", errors.New("ses: empty recipient")
	}
	body := &types.Body{Text: &types.Content{Data: awssdk.String(textBody), Charset: awssdk.String("UTF-8")}}
	if htmlBody != "" {
		body.Html = &types.Content{Data: awssdk.String(htmlBody), Charset: awssdk.String("UTF-8")}
	}

	out, err := m.api.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject), Charset: awssdk.String("UTF-8")},
			Body:    body,
		},
		Source: awssdk.String(m.from),
	})
	if err != nil {
		return "", fmt.Errorf("ses send email: %w", err)
	}
	return awssdk.ToString(out.MessageId), nil
}
