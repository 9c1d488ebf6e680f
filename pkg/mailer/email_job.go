package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template names one of the known templates (verification_code, welcome,
// password_reset); Data carries its fields. Subject/Text/HTML may be set
// directly when no template is used.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Template names understood by the email worker.
const (
	TemplateVerificationCode = "verification_code"
	TemplateWelcome          = "welcome"
	TemplatePasswordReset    = "password_reset"
)
