package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/templates"
	"github.com/MKhiriev/go-onboard/internal/utils"
	"github.com/MKhiriev/go-onboard/models"
)

const mailSendPath = "/messages"

// mailMessage is the JSON body accepted by the mail gateway.
type mailMessage struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// MailGatewaySender implements [NotificationSender] by posting rendered
// messages to an HTTP mail gateway.
type MailGatewaySender struct {
	client *utils.HTTPClient
	from   string
	logger *logger.Logger
}

// NewMailGatewaySender constructs a sender bound to cfg.GatewayURL. Every
// request is bounded by cfg.Timeout and carries cfg.GatewayToken as a bearer
// token when set.
func NewMailGatewaySender(cfg config.Mail, log *logger.Logger) (*MailGatewaySender, error) {
	baseURL, err := normalizeBaseURL(cfg.GatewayURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mail gateway address: %w", err)
	}

	return &MailGatewaySender{
		client: utils.NewHTTPClientWithBaseURL(baseURL, cfg.Timeout, cfg.GatewayToken),
		from:   cfg.From,
		logger: log,
	}, nil
}

// Send implements [NotificationSender].
func (m *MailGatewaySender) Send(ctx context.Context, n models.Notification) error {
	log := logger.FromContext(ctx)

	msg, err := renderNotification(n)
	if err != nil {
		return err
	}
	msg.From = m.from

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(mailSendPath)
	if err != nil {
		log.Err(err).Str("func", "MailGatewaySender.Send").Msg("mail gateway request failed")
		return fmt.Errorf("mail gateway request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "MailGatewaySender.Send").Int("status", resp.StatusCode()).Msg("mail gateway rejected message")
		return err
	}

	log.Info().
		Str("func", "MailGatewaySender.Send").
		Str("template", n.TemplateName).
		Msg("notification sent")
	return nil
}

// LogSender implements [NotificationSender] by logging the rendered message.
// It is used when no mail gateway is configured.
type LogSender struct {
	logger *logger.Logger
}

func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{logger: log}
}

// Send implements [NotificationSender].
func (s *LogSender) Send(ctx context.Context, n models.Notification) error {
	msg, err := renderNotification(n)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("func", "LogSender.Send").
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("template", n.TemplateName).
		Int("body_size", len(msg.HTML)).
		Msg("notification (log only)")
	return nil
}

func renderNotification(n models.Notification) (mailMessage, error) {
	if strings.TrimSpace(n.To) == "" {
		return mailMessage{}, ErrNoRecipient
	}

	html, err := templates.Render(n.TemplateName, n.TemplateData)
	if err != nil {
		if errors.Is(err, templates.ErrTemplateNotFound) {
			return mailMessage{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, n.TemplateName)
		}
		return mailMessage{}, fmt.Errorf("%w: %w", ErrRenderingTemplate, err)
	}

	return mailMessage{To: n.To, Subject: n.Subject, HTML: html}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
