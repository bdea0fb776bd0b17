package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// SendMail delivers an HTML email through the configured SMTP relay.
// Returns false without error when SMTP is not configured (local development).
func SendMail(to, subject, html string) (bool, error) {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")

	if host == "" || from == "" {
		log.Printf("SMTP not configured, skipping email to %s (%s)", to, subject)
		return false, nil
	}
	if port == "" {
		port = "587"
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, subject, html,
	)

	auth := smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), host)
	addr := host + ":" + port

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return false, fmt.Errorf("failed to send email: %w", err)
	}
	return true, nil
}
