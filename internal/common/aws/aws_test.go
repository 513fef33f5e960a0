package aws

import (
	"context"
	"errors"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type mockSNS struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func TestMailer_Send(t *testing.T) {
	var got *ses.SendEmailInput
	m := NewMailer(&mockSES{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			got = params
			return &ses.SendEmailOutput{MessageId: awssdk.String("msg-1")}, nil
		},
	}, "noreply@jobbly.test")

	id, err := m.Send(context.Background(), "ali@example.com", "Application received", "text", "<p>html</p>")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)
	require.NotNil(t, got)
	assert.Equal(t, []string{"ali@example.com"}, got.Destination.ToAddresses)
	assert.Equal(t, "noreply@jobbly.test", awssdk.ToString(got.Source))
	assert.Equal(t, "Application received", awssdk.ToString(got.Message.Subject.Data))
	assert.Equal(t, "<p>html</p>", awssdk.ToString(got.Message.Body.Html.Data))
}

func TestMailer_SendTextOnly(t *testing.T) {
	m := NewMailer(&mockSES{
		SendEmailFunc: func(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			assert.Nil(t, params.Message.Body.Html)
			return &ses.SendEmailOutput{MessageId: awssdk.String("msg-2")}, nil
		},
	}, "noreply@jobbly.test")

	_, err := m.Send(context.Background(), "ali@example.com", "s", "text", "")
	require.NoError(t, err)
}

func TestMailer_Errors(t *testing.T) {
	m := NewMailer(&mockSES{
		SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}, "noreply@jobbly.test")

	_, err := m.Send(context.Background(), "", "s", "b", "")
	assert.EqualError(t, err, "ses: empty recipient")

	_, err = m.Send(context.Background(), "ali@example.com", "s", "b", "")
	assert.EqualError(t, err, "ses send email: throttled")
}

func TestSMSSender_Send(t *testing.T) {
	var got *sns.PublishInput
	s := NewSMSSender(&mockSNS{
		PublishFunc: func(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
			got = params
			return &sns.PublishOutput{MessageId: awssdk.String("sms-1")}, nil
		},
	}, "JOBBLY")

	id, err := s.Send(context.Background(), "+923001234567", "You passed")
	require.NoError(t, err)
	assert.Equal(t, "sms-1", id)
	assert.Equal(t, "+923001234567", awssdk.ToString(got.PhoneNumber))
	assert.Equal(t, "JOBBLY", awssdk.ToString(got.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
	assert.Equal(t, "Transactional", awssdk.ToString(got.MessageAttributes["AWS.SNS.SMS.SMSType"].StringValue))
}

func TestSMSSender_Errors(t *testing.T) {
	s := NewSMSSender(&mockSNS{
		PublishFunc: func(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("opted out")
		},
	}, "")

	_, err := s.Send(context.Background(), "", "x")
	assert.EqualError(t, err, "sns: empty phone number")

	_, err = s.Send(context.Background(), "+923001234567", "x")
	assert.EqualError(t, err, "sns publish: opted out")
}
