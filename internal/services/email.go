package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventmanagement/internal/domain"
)

const registrationConfirmationTemplate = "registration_confirmation"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns a RegistrationNotifier that renders templates and sends them with mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.RegistrationNotifier {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRegistrationConfirmation sends the "registration_confirmation" template to the attendee.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, event *domain.Event, attendee *domain.Attendee) error {
	if event == nil || attendee == nil {
		return fmt.Errorf("registration confirmation: event and attendee are required")
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:     attendee.Email,
		Name:      attendee.Name,
		EventID:   event.ID,
		EventName: event.Name,
		Location:  event.Location,
		StartTime: event.StartTime.Format(time.RFC1123Z),
		EndTime:   event.EndTime.Format(time.RFC1123Z),
	}
	subject, htmlBody, textBody, err := s.renderer.Render(registrationConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", registrationConfirmationTemplate, err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration confirmation: %w", err)
	}
	s.logger.InfoContext(ctx, "registration confirmation sent", "event_id", event.ID, "attendee_id", attendee.ID)
	return nil
}
