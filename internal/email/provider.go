package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет email сообщение
	Send(email *Email) error

	// SendTemplate отправляет email по шаблону
	SendTemplate(to []string, subject string, templateName string, data TemplateData, attachments ...Attachment) error

	// Validate проверяет конфигурацию провайдера
	Validate() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
}

// NewProvider - SMTP, если задан хост, иначе провайдер, который только пишет в лог
func NewProvider(config *SMTPConfig, renderer TemplateRenderer) Provider {
	if config == nil || config.Host == "" {
		return NewLogProvider()
	}
	return NewSMTPProvider(config, renderer)
}
