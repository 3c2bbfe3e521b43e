package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []Message
}

func (r *recordingMailer) Send(msg Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func TestSendWelcome(t *testing.T) {
	mailer := &recordingMailer{}
	notifier := NewNotifier(mailer, "http://localhost:5173")

	require.NoError(t, notifier.SendWelcome("vol@example.com", "Jordan"))
	require.Len(t, mailer.sent, 1)

	msg := mailer.sent[0]
	assert.Equal(t, "vol@example.com", msg.To)
	assert.Contains(t, msg.Subject, "Welcome")
	assert.Contains(t, msg.Body, "Jordan")
}

func TestSendPasswordReset(t *testing.T) {
	mailer := &recordingMailer{}
	notifier := NewNotifier(mailer, "http://localhost:5173/")

	require.NoError(t, notifier.SendPasswordReset("vol@example.com", "rawtoken123"))
	require.Len(t, mailer.sent, 1)

	msg := mailer.sent[0]
	assert.Equal(t, "vol@example.com", msg.To)
	assert.Contains(t, msg.Subject, "Valid for 10 min")
	assert.Contains(t, msg.Body, "http://localhost:5173/resetpassword/rawtoken123")
	assert.Contains(t, msg.Body, "valid for 10 minutes")
}

func TestResetURLTrimsTrailingSlash(t *testing.T) {
	notifier := NewNotifier(nil, "https://rallypoint.example.org/")
	assert.Equal(t, "https://rallypoint.example.org/resetpassword/tok", notifier.ResetURL("tok"))
}

func TestNilMailerDisablesDelivery(t *testing.T) {
	notifier := NewNotifier(nil, "http://localhost:5173")

	assert.ErrorIs(t, notifier.SendWelcome("vol@example.com", "Jordan"), ErrMailerDisabled)
	assert.ErrorIs(t, notifier.SendPasswordReset("vol@example.com", "tok"), ErrMailerDisabled)
}
