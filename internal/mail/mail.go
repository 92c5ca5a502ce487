// Package mail sends the notification emails that route an enquiry to the
// responsible mailbox. The SMTP implementation makes a single delivery
// attempt; retrying is left to whoever resubmits the form.
package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"gitlab.com/multycomm/enquiry-service/internal/config"
)

// Mailer sends a single plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTP delivers messages through one SMTP account configured at process
// start. The zero value is not usable; create instances with NewSMTP.
type SMTP struct {
	cfg config.SMTPCfg
}

// NewSMTP creates a mailer for the given account.
func NewSMTP(cfg config.SMTPCfg) *SMTP {
	return &SMTP{cfg: cfg}
}

// Send delivers one plain-text message to a single recipient.
func (s *SMTP) Send(to, subject, body string) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("mail transport not configured, SMTP_HOST is empty")
	}

	msg := buildMessage(s.cfg.From, to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.Secure {
		return s.sendImplicitTLS(addr, auth, to, msg)
	}
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// sendImplicitTLS speaks SMTP over a connection that is encrypted from the
// first byte (typically port 465). smtp.SendMail only upgrades via
// STARTTLS, so the session is driven by hand here.
func (s *SMTP) sendImplicitTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start smtp session with %s: %w", addr, err)
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp authentication failed: %w", err)
		}
	}
	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp server rejected sender %s: %w", s.cfg.From, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp server rejected recipient %s: %w", to, err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open smtp data stream: %w", err)
	}
	if _, err := writer.Write(msg); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish message body: %w", err)
	}

	return client.Quit()
}

// buildMessage assembles the wire form of a plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	message := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n"
	return []byte(message)
}
