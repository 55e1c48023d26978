package services

import (
	"errors"
	"testing"

	"github.com/piyush5566/job-portal-go/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	failures int
	calls    int
	lastTo   string
	lastBody string
}

func (f *fakeSender) Send(to, from, subject, body string) error {
	f.calls++
	f.lastTo = to
	f.lastBody = body
	if f.calls <= f.failures {
		return errors.New("smtp refused")
	}
	return nil
}

func TestContactSendFirstTry(t *testing.T) {
	sender := &fakeSender{}
	svc := NewContactService(sender, "noreply@jobportal.local", "support@jobportal.local")

	err := svc.Send(&dto.ContactRequest{
		Name: "Alice", Email: "alice@example.com", Subject: "Hello", Message: "Hi there",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "support@jobportal.local", sender.lastTo)
	assert.Contains(t, sender.lastBody, "alice@example.com")
	assert.Contains(t, sender.lastBody, "Hi there")
}

func TestContactSendRecoversAfterRetry(t *testing.T) {
	sender := &fakeSender{failures: 2}
	svc := NewContactService(sender, "noreply@jobportal.local", "support@jobportal.local")

	err := svc.Send(&dto.ContactRequest{Email: "bob@example.com", Message: "ping"})
	require.NoError(t, err)
	assert.Equal(t, 3, sender.calls)
}

func TestContactSendGivesUpAfterAttempts(t *testing.T) {
	sender := &fakeSender{failures: 10}
	svc := NewContactService(sender, "noreply@jobportal.local", "support@jobportal.local")

	err := svc.Send(&dto.ContactRequest{Email: "bob@example.com", Message: "ping"})
	require.Error(t, err)
	assert.Equal(t, contactMaxAttempts, sender.calls)
}
