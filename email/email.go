package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender handles sending emails via SendGrid
type Sender struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSender creates a new email sender
func NewSender(apiKey, fromName, fromEmail string) *Sender {
	return &Sender{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SendComplaintConfirmation sends a confirmation email to the reporter of a
// newly created denuncia
func (s *Sender) SendComplaintConfirmation(recipientEmail string, id int64, fotoURL string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	subject := fmt.Sprintf("Denuncia #%d recibida", id)
	to := mail.NewEmail(recipientEmail, recipientEmail)

	plainText := fmt.Sprintf(`Hola,

Tu denuncia ha sido registrada con el número %d.

La foto adjunta está disponible en:
%s

Gracias por tu reporte.`, id, fotoURL)

	htmlContent := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Denuncia recibida</h2>
    <p>Hola,</p>
    <p>Tu denuncia ha sido registrada con el número <strong>%d</strong>.</p>
    <p>La foto adjunta está disponible <a href="%s">aquí</a>.</p>
    <p>Gracias por tu reporte.</p>
</body>
</html>`, id, fotoURL)

	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}

	return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
}
