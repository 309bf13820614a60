package email

import "gym_backend/internal/logger"

// LogProvider используется, когда SMTP не настроен: письма не отправляются
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Info("Email skipped: SMTP is not configured", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData, attachments ...Attachment) error {
	logger.Info("Email skipped: SMTP is not configured",
		"to", to,
		"subject", subject,
		"template", templateName,
		"attachments", len(attachments),
	)
	return nil
}

func (p *LogProvider) Validate() error {
	return nil
}
