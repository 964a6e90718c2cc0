package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geospatial-academy/training-hub-api/internal/models"
	"github.com/geospatial-academy/training-hub-api/pkg/jobs"
	"github.com/geospatial-academy/training-hub-api/pkg/mailer"
)

// Notifier dispatches outbound notifications for storefront events. All
// methods are fire-and-forget, a delivery failure never fails the request
// that triggered it.
type Notifier interface {
	RegistrationReceived(reg *models.Registration, course *models.Course)
	RegistrationConfirmed(reg *models.Registration, course *models.Course)
	ContactMessageReceived(msg *models.ContactMessage)
}

// NopNotifier discards all notifications. Used when SMTP is not configured.
type NopNotifier struct{}

func (NopNotifier) RegistrationReceived(*models.Registration, *models.Course)  {}
func (NopNotifier) RegistrationConfirmed(*models.Registration, *models.Course) {}
func (NopNotifier) ContactMessageReceived(*models.ContactMessage)              {}

// EmailNotifierConfig tunes the async delivery queue.
type EmailNotifierConfig struct {
	AdminEmail string
	Workers    int
	MaxRetries int
}

// EmailNotifier renders notification emails and hands them to a background
// queue for delivery with retries.
type EmailNotifier struct {
	mailer     mailer.Mailer
	queue      *jobs.Queue
	logger     *zap.Logger
	adminEmail string
}

// NewEmailNotifier constructs an EmailNotifier. Start must be called before
// notifications are dispatched.
func NewEmailNotifier(m mailer.Mailer, logger *zap.Logger, cfg EmailNotifierConfig) *EmailNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &EmailNotifier{
		mailer:     m,
		logger:     logger,
		adminEmail: cfg.AdminEmail,
	}
	n.queue = jobs.NewQueue("email-notifications", n.deliver, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return n
}

// Start launches the delivery workers.
func (n *EmailNotifier) Start(ctx context.Context) {
	n.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (n *EmailNotifier) Stop() {
	n.queue.Stop()
}

// RegistrationReceived notifies the site admin about a new registration.
func (n *EmailNotifier) RegistrationReceived(reg *models.Registration, course *models.Course) {
	if n.adminEmail == "" {
		return
	}
	courseTitle := reg.CourseID
	if course != nil {
		courseTitle = course.Title
	}
	n.enqueue(mailer.Message{
		To:      n.adminEmail,
		Subject: fmt.Sprintf("New course registration: %s", courseTitle),
		HTML: fmt.Sprintf(
			"<h2>New Registration</h2><p><strong>%s %s</strong> (%s, %s) registered for <strong>%s</strong> on %s.</p><p>Experience level: %s</p>",
			html.EscapeString(reg.FirstName), html.EscapeString(reg.LastName),
			html.EscapeString(reg.Email), html.EscapeString(reg.Country),
			html.EscapeString(courseTitle),
			reg.RegisteredAt.Format("2 Jan 2006 15:04 MST"),
			html.EscapeString(reg.ExperienceLevel),
		),
	})
}

// RegistrationConfirmed notifies the registrant that their place is secured.
func (n *EmailNotifier) RegistrationConfirmed(reg *models.Registration, course *models.Course) {
	courseTitle := reg.CourseID
	duration := ""
	if course != nil {
		courseTitle = course.Title
		duration = course.Duration
	}
	body := fmt.Sprintf(
		"<h2>Registration Confirmed</h2><p>Hi %s,</p><p>Your registration for <strong>%s</strong> has been confirmed.</p>",
		html.EscapeString(reg.FirstName), html.EscapeString(courseTitle),
	)
	if duration != "" {
		body += fmt.Sprintf("<p>Course duration: %s.</p>", html.EscapeString(duration))
	}
	body += "<p>We look forward to seeing you in class.</p>"
	n.enqueue(mailer.Message{
		To:      reg.Email,
		Subject: fmt.Sprintf("Your registration for %s is confirmed", courseTitle),
		HTML:    body,
	})
}

// ContactMessageReceived forwards a contact form submission to the admin.
func (n *EmailNotifier) ContactMessageReceived(msg *models.ContactMessage) {
	if n.adminEmail == "" {
		return
	}
	n.enqueue(mailer.Message{
		To:      n.adminEmail,
		Subject: fmt.Sprintf("Contact form: %s", msg.Subject),
		HTML: fmt.Sprintf(
			"<h2>New Contact Message</h2><p>From: <strong>%s</strong> (%s)</p><p>%s</p>",
			html.EscapeString(msg.Name), html.EscapeString(msg.Email),
			html.EscapeString(msg.Message),
		),
	})
}

func (n *EmailNotifier) enqueue(msg mailer.Message) {
	err := n.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "email",
		Payload: msg,
	})
	if err != nil {
		n.logger.Warn("failed to enqueue notification email",
			zap.String("to", msg.To), zap.Error(err))
	}
}

func (n *EmailNotifier) deliver(ctx context.Context, job jobs.Job) error {
	msg, ok := job.Payload.(mailer.Message)
	if !ok {
		n.logger.Error("unexpected notification payload type", zap.String("job_id", job.ID))
		return nil
	}

	start := time.Now()
	if err := n.mailer.Send(msg); err != nil {
		return err
	}
	n.logger.Info("notification email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Duration("took", time.Since(start)))
	return nil
}
