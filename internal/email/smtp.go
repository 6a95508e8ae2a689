package email

import (
	"context"
	"crypto/tls"
	"time"

	mail "github.com/go-mail/mail"

	"github.com/shutterfest/notify/internal/config"
)

// SMTPTransport sends emails through a plain SMTP relay. TLSMode is one of
// "auto", "starttls", "ssl" or "none".
type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
	tlsMode  string
}

// NewSMTPTransport creates an SMTP transport from config.
func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	tlsMode := cfg.TLSMode
	if tlsMode == "" {
		tlsMode = "auto"
	}
	return &SMTPTransport{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		tlsMode:  tlsMode,
	}
}

func (t *SMTPTransport) Name() string { return "smtp" }

// Send delivers a single email over SMTP. The dial and send run inside the
// context deadline via DialAndSend's own timeouts; go-mail has no context
// support, so a cancelled context is checked up front.
func (t *SMTPTransport) Send(ctx context.Context, msg *OutboundMessage) (*SendResult, error) {
	if err := ctx.Err(); err != nil {
		return &SendResult{Success: false, Error: err, Transport: "smtp"}, nil
	}

	m := mail.NewMessage()
	m.SetAddressHeader("From", msg.FromEmail, msg.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}

	// multipart/alternative when both bodies are present
	if msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		if msg.HTML != "" {
			m.AddAlternative("text/html", msg.HTML)
		}
	} else {
		m.SetBody("text/html", msg.HTML)
	}

	d := mail.NewDialer(t.host, t.port, t.username, t.password)
	d.TLSConfig = &tls.Config{ServerName: t.host}
	if deadline, ok := ctx.Deadline(); ok {
		d.Timeout = time.Until(deadline)
	}

	switch t.tlsMode {
	case "ssl":
		d.SSL = true
	case "none":
		d.StartTLSPolicy = mail.NoStartTLS
	case "starttls":
		d.StartTLSPolicy = mail.MandatoryStartTLS
	default:
		// "auto": STARTTLS is negotiated when the server offers it
	}

	if err := d.DialAndSend(m); err != nil {
		return &SendResult{Success: false, Error: err, Transport: "smtp"}, nil
	}

	return &SendResult{Success: true, Transport: "smtp", SentAt: time.Now()}, nil
}
