// Package email delivers verification-code mail over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"wxgate.app/wxgate/core/config"
)

type Sender struct {
	cfg config.SMTPConfig
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// SendVerificationCode emails the one-time code to the recipient.
func (s *Sender) SendVerificationCode(ctx context.Context, to, code string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject("Your Verification Code")
	msg.SetBodyString(mail.TypeTextHTML, fmt.Sprintf(verificationBody, code))

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}

const verificationBody = `
<html>
<head>
	<style>
		body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
		.email-container { background-color: #ffffff; padding: 20px; border-radius: 8px; box-shadow: 0 4px 8px rgba(0, 0, 0, 0.1); max-width: 600px; margin: 0 auto; }
		.email-header { font-size: 24px; color: #333333; text-align: center; margin-bottom: 20px; }
		.email-body { font-size: 16px; color: #555555; text-align: center; }
		.verification-code { font-size: 32px; font-weight: bold; color: #28a745; margin: 20px 0; }
		.email-footer { font-size: 14px; color: #888888; text-align: center; margin-top: 20px; }
	</style>
</head>
<body>
	<div class="email-container">
		<div class="email-header">Your Verification Code</div>
		<div class="email-body">
			<p>Please use the following verification code to complete your request:</p>
			<div class="verification-code">%s</div>
			<p>This code will expire in 5 minutes.</p>
		</div>
		<div class="email-footer">
			<p>If you did not request this code, please ignore this email.</p>
		</div>
	</div>
</body>
</html>
`
