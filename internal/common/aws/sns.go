// internal/common/aws/sns.go
package aws

import (
	"context"
	"errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the slice of the SNS client the SMS sender uses.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type SMSSender struct {
	api      SNSAPI
	senderID string
}

func NewSMSSender(api SNSAPI, senderID string) *SMSSender {
	return &SMSSender{api: api, senderID: senderID}
}

func NewSNSSender(cfg awssdk.Config, senderID string) *SMSSender {
	return NewSMSSender(sns.NewFromConfig(cfg), senderID)
}

// Send publishes a transactional SMS to an E.164 number.
func (s *SMSSender) Send(ctx context.Context, phone, message string) (string, error) {
	if phone == "" {
		return "", errors.New("sns: empty phone number")
	}
	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    awssdk.String("String"),
			StringValue: awssdk.String("Transactional"),
		},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    awssdk.String("String"),
			StringValue: awssdk.String(s.senderID),
		}
	}

	out, err := s.api.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       awssdk.String(phone),
		Message:           awssdk.String(message),
		MessageAttributes: attrs,
	})
	if err != nil {
		return "", fmt.Errorf("sns publish: %w", err)
	}
	return awssdk.ToString(out.MessageId), nil
}
