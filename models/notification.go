package models

// Notification is a templated message addressed to a single recipient.
type Notification struct {
	To           string         `json:"to"`
	Subject      string         `json:"subject"`
	TemplateName string         `json:"templateName"`
	TemplateData map[string]any `json:"templateData"`
}

// Template names known to the notification renderer.
const (
	TemplateWelcomeUser = "welcome-user"
)
