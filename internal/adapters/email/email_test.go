package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanagement/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestTemplateRenderer_RegistrationConfirmation(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	subject, html, text, err := r.Render("registration_confirmation", &domain.RegistrationConfirmationEmailData{
		Email:     "ann@example.com",
		Name:      "Ann <3",
		EventID:   7,
		EventName: "Launch",
		Location:  "HQ",
		StartTime: "Mon, 01 Jun 2030 09:00:00 +0000",
		EndTime:   "Mon, 01 Jun 2030 11:00:00 +0000",
	})
	require.NoError(t, err)
	assert.Equal(t, "You're registered for Launch", subject)
	assert.Contains(t, html, "Ann &lt;3")
	assert.Contains(t, text, "Hi Ann <3,")
	assert.Contains(t, text, "Where: HQ")
	assert.Contains(t, text, "Event reference: 7")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)
	_, _, _, err = r.Render("welcome", nil)
	require.Error(t, err)
}

func TestSESMailer_Send(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "events@example.com", FromName: "Events"}, testLogger)

	require.NoError(t, m.Send(context.Background(), "ann@example.com", "Hi", "<p>Hi</p>", "Hi"))
	require.NotNil(t, client.input)
	assert.Equal(t, "Events <events@example.com>", aws.ToString(client.input.Source))
	assert.Equal(t, []string{"ann@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Hi", aws.ToString(client.input.Message.Subject.Data))
	assert.Equal(t, "<p>Hi</p>", aws.ToString(client.input.Message.Body.Html.Data))
	assert.Equal(t, "Hi", aws.ToString(client.input.Message.Body.Text.Data))
}

func TestSESMailer_SendTextOnly(t *testing.T) {
	client := &fakeSES{}
	m := newSESMailer(client, MailerConfig{FromAddress: "events@example.com"}, testLogger)

	require.NoError(t, m.Send(context.Background(), "ann@example.com", "Hi", "", "Hi"))
	assert.Equal(t, "events@example.com", aws.ToString(client.input.Source))
	assert.Nil(t, client.input.Message.Body.Html)
}

func TestSESMailer_SendError(t *testing.T) {
	boom := errors.New("throttled")
	m := newSESMailer(&fakeSES{err: boom}, MailerConfig{FromAddress: "events@example.com"}, testLogger)
	err := m.Send(context.Background(), "ann@example.com", "Hi", "", "Hi")
	require.ErrorIs(t, err, boom)
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name     string
		config   MailerConfig
		wantType any
		wantErr  bool
	}{
		{"noop", MailerConfig{Provider: ProviderNoop}, &noopMailer{}, false},
		{"empty provider", MailerConfig{}, &noopMailer{}, false},
		{"unknown provider", MailerConfig{Provider: "smtp"}, &noopMailer{}, false},
		{"ses", MailerConfig{Provider: ProviderSES, FromAddress: "events@example.com", SES: SESConfig{Region: "eu-west-1"}}, &sesMailer{}, false},
		{"ses without sender", MailerConfig{Provider: ProviderSES}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, testLogger)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, m)
		})
	}
}

func TestNoopMailer_Send(t *testing.T) {
	m := &noopMailer{logger: testLogger}
	assert.NoError(t, m.Send(context.Background(), "ann@example.com", "Hi", "", ""))
}
