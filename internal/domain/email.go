package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationConfirmationEmailData holds data for the registration confirmation email.
type RegistrationConfirmationEmailData struct {
	Email     string
	Name      string
	EventID   int64
	EventName string
	Location  string
	StartTime string
	EndTime   string
}

// RegistrationNotifier is told about every committed registration.
type RegistrationNotifier interface {
	SendRegistrationConfirmation(ctx context.Context, event *Event, attendee *Attendee) error
}
