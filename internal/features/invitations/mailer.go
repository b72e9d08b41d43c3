package invitations

import (
	"fmt"

	"wedsync/internal/config"

	"github.com/wneessen/go-mail"
)

// Mailer delivers invitation emails. Delivery is best-effort; failures
// are logged and never fail the originating request.
type Mailer interface {
	SendInvitation(email, projectName, token string) error
}

type SMTPMailer struct {
	host       string
	port       int
	username   string
	password   string
	from       string
	appBaseURL string
}

// NewSMTPMailerFromEnv returns nil when SMTP_HOST is unset, which
// disables outbound email entirely.
func NewSMTPMailerFromEnv() *SMTPMailer {
	env := config.GetEnv()
	if env.SmtpHost == "" {
		return nil
	}

	return &SMTPMailer{
		host:       env.SmtpHost,
		port:       env.SmtpPort,
		username:   env.SmtpUsername,
		password:   env.SmtpPassword,
		from:       env.SmtpFrom,
		appBaseURL: env.AppBaseURL,
	}
}

func (m *SMTPMailer) SendInvitation(email, projectName, token string) error {
	message := mail.NewMsg()
	if err := message.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := message.To(email); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	acceptLink := fmt.Sprintf("%s/invitations/accept?token=%s", m.appBaseURL, token)

	message.Subject(fmt.Sprintf("You have been invited to collaborate on %s", projectName))
	message.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"You have been invited to collaborate on the wedding project %q.\n\n"+
			"Accept the invitation within 7 days:\n%s\n",
		projectName, acceptLink,
	))

	options := []mail.Option{
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	}

	client, err := mail.NewClient(m.host, options...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}

	return nil
}
