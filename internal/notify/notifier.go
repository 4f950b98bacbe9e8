// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"
	"strings"

	"minus-backend/internal/common/config"
	stderrors "minus-backend/internal/common/errors"
	"minus-backend/internal/common/logger"
	"minus-backend/internal/payload"
)

// EmailSender sends a plain-text email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender sends a short text message.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}

const emailSubject = "Your Minus Economic Hygiene Report"

// Notifier delivers finished reports to users who submitted through the
// webhook path and have no stream to watch. Delivery is strictly best-effort:
// failures are logged, never returned.
type Notifier struct {
	cfg   config.DeliveryConfig
	email EmailSender
	sms   SMSSender
	log   logger.Logger
}

func New(cfg config.DeliveryConfig, email EmailSender, sms SMSSender, log logger.Logger) *Notifier {
	return &Notifier{cfg: cfg, email: email, sms: sms, log: log}
}

// Deliver emails the full report and pings the user by SMS, per channel
// configuration.
func (n *Notifier) Deliver(ctx context.Context, sub payload.Submission, report string) {
	if n.cfg.Email.Enabled && n.email != nil && sub.Email != "" {
		if err := n.email.SendEmail(ctx, sub.Email, emailSubject, report); err != nil {
			n.logFailure("email", stderrors.NewDeliveryFailedError("email", err))
		}
	}

	if n.cfg.SMS.Enabled && n.sms != nil && hasUsablePhone(sub.Phone) {
		msg := smsMessage(sub.Name)
		if err := n.sms.SendSMS(ctx, sub.Phone, msg); err != nil {
			n.logFailure("sms", stderrors.NewDeliveryFailedError("sms", err))
		}
	}
}

func (n *Notifier) logFailure(channel string, err error) {
	n.log.WithError(err).Warn("report delivery failed", map[string]interface{}{
		"channel": channel,
	})
}

// hasUsablePhone filters out the bare country prefix left by an empty answer.
func hasUsablePhone(phone string) bool {
	return strings.HasPrefix(phone, "+") && len(phone) > 4
}

func smsMessage(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("Hi %s, your Minus report is ready. Check your email for the full breakdown. Minus — Subtract Debt. Add Life.", name)
}
