package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt time.Time
}

var contactHTML = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #7c3aed;">Pesan baru dari formulir kontak PolijeCare</h2>
  <p><strong>Nama:</strong> {{.Name}}<br>
  <strong>Email:</strong> {{.Email}}<br>
  <strong>Diterima:</strong> {{.ReceivedAt.Format "02 Jan 2006 15:04 MST"}}</p>
  <p><strong>Perihal:</strong> {{.Subject}}</p>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</body>
</html>`))

// BuildContactRelay addresses a contact form message to the task force
// inbox, with Reply-To set to the sender.
func BuildContactRelay(inbox string, m ContactMessage) (Message, error) {
	subject := strings.TrimSpace(m.Subject)
	if subject == "" {
		subject = "(tanpa perihal)"
	}
	m.Subject = subject

	var html bytes.Buffer
	if err := contactHTML.Execute(&html, m); err != nil {
		return Message{}, fmt.Errorf("render contact email: %w", err)
	}

	text := fmt.Sprintf("Pesan baru dari formulir kontak PolijeCare\n\nNama: %s\nEmail: %s\nDiterima: %s\nPerihal: %s\n\n%s\n",
		m.Name, m.Email, m.ReceivedAt.Format("02 Jan 2006 15:04 MST"), subject, m.Message)

	return Message{
		To:       []string{inbox},
		ReplyTo:  m.Email,
		Subject:  "[PolijeCare] " + subject,
		TextBody: text,
		HTMLBody: html.String(),
	}, nil
}
