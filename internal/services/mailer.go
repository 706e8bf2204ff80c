package services

import (
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/eminenthub/eminenthub-api/internal/config"
	"github.com/eminenthub/eminenthub-api/internal/models"
)

const smtpDialTimeout = 5 * time.Second

// NotifyFeatureRequest emails the admin about a new feature request.
// Delivery is best-effort: failures are logged and never surface to the
// request that triggered the mail.
func NotifyFeatureRequest(cfg *config.Config, request *models.FeatureRequest) {
	if !cfg.MailEnabled() {
		return
	}

	subject := fmt.Sprintf("New feature request: %s", request.Title)
	body := fmt.Sprintf(
		"Title: %s\nCategory: %s\nPriority: %s\nSubmitted by: %s\n\n%s\n",
		request.Title, request.Category, request.Priority,
		request.SubmittedBy, request.Description,
	)

	go func() {
		if err := sendMail(cfg, cfg.AdminEmail, subject, body); err != nil {
			log.Printf("Feature request mail failed: %v", err)
		}
	}()
}

// sendMail delivers one plain-text message over SMTP
func sendMail(cfg *config.Config, to, subject, body string) error {
	client, err := smtpClient(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if cfg.SMTPUser != "" {
		auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := client.Mail(cfg.SMTPFrom); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	message := strings.Join([]string{
		"From: " + cfg.SMTPFrom,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if _, err := writer.Write([]byte(message)); err != nil {
		writer.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return client.Quit()
}

// smtpClient connects and returns a ready client. SMTP_SECURE means
// implicit TLS on connect (port 465 style); otherwise the connection is
// upgraded with STARTTLS whenever the server offers it. PlainAuth will
// not send credentials over an unencrypted remote connection, so the
// upgrade has to happen before Auth.
func smtpClient(cfg *config.Config) (*smtp.Client, error) {
	addr := net.JoinHostPort(cfg.SMTPHost, cfg.SMTPPort)
	tlsConfig := &tls.Config{ServerName: cfg.SMTPHost}

	if cfg.SMTPSecure {
		dialer := &net.Dialer{Timeout: smtpDialTimeout}
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("smtp tls dial: %w", err)
		}
		client, err := smtp.NewClient(conn, cfg.SMTPHost)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("smtp handshake: %w", err)
		}
		return client, nil
	}

	conn, err := net.DialTimeout("tcp", addr, smtpDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("smtp dial: %w", err)
	}
	client, err := smtp.NewClient(conn, cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return nil, fmt.Errorf("smtp starttls: %w", err)
		}
	}
	return client, nil
}
