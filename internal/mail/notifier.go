package mail

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMailerDisabled signals that no mail transport is configured.
var ErrMailerDisabled = errors.New("mail: no mailer configured")

// Notifier composes and sends the application's transactional emails.
type Notifier struct {
	mailer      Mailer
	frontendURL string
}

// NewNotifier creates a Notifier. A nil mailer disables delivery; sends
// then return ErrMailerDisabled so callers can apply their own policy.
func NewNotifier(mailer Mailer, frontendURL string) *Notifier {
	return &Notifier{
		mailer:      mailer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// SendWelcome sends the post-registration welcome message.
func (n *Notifier) SendWelcome(to, name string) error {
	if n.mailer == nil {
		return ErrMailerDisabled
	}
	return n.mailer.Send(Message{
		To:      to,
		Subject: "Welcome to the Volunteer Registration System!",
		Body:    fmt.Sprintf("Hi %s,\n\nThank you for registering. We're excited to have you on board.\n\n- The Team", name),
	})
}

// ResetURL builds the password-reset link embedded in the reset email.
func (n *Notifier) ResetURL(rawToken string) string {
	return fmt.Sprintf("%s/resetpassword/%s", n.frontendURL, rawToken)
}

// SendPasswordReset sends the reset link for a raw (unhashed) reset token.
func (n *Notifier) SendPasswordReset(to, rawToken string) error {
	if n.mailer == nil {
		return ErrMailerDisabled
	}
	resetURL := n.ResetURL(rawToken)
	body := fmt.Sprintf("You are receiving this email because you (or someone else) have requested the reset of a password.\n\n"+
		"Please click the link below to reset your password:\n\n%s\n\n"+
		"This link is valid for 10 minutes.\n\nIf you did not request this, please ignore this email.", resetURL)
	return n.mailer.Send(Message{
		To:      to,
		Subject: "Your Password Reset Token (Valid for 10 min)",
		Body:    body,
	})
}
