package ports

import (
	"context"

	"aircardctl/internal/domain"
)

// ConfigPair is one key=value setting destined for the device's
// configuration form.
type ConfigPair struct {
	Key   string
	Value string
}

// Modem is the device's web-management API as seen by the command layer.
// Implemented by the HTTP adapter; tests substitute a mock.
type Modem interface {
	// Login runs the token/password handshake and returns the
	// authenticated status document.
	Login(ctx context.Context) (*domain.StatusDocument, error)
	// SendSMS submits one outbound message for the given receiver.
	SendSMS(ctx context.Context, receiver, text string) error
	// SetConfig applies the key=value pairs in the order given.
	SetConfig(ctx context.Context, pairs []ConfigPair) error
	Close()
}
