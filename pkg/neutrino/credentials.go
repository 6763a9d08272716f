package neutrino

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Header names carrying the credentials on every request.
const (
	HeaderUserID = "user-id"
	HeaderAPIKey = "api-key"
)

// Credentials holds the neutrinoapi.com user id and api key.
// Every printable form is masked; the raw values only leave the package as request headers.
type Credentials struct {
	userID string
	apiKey string
}

// NewCredentials wraps the account user id and api key.
func NewCredentials(userID, apiKey string) Credentials {
	return Credentials{userID: userID, apiKey: apiKey}
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{user-id: %s, api-key: %s}", mask(c.userID), mask(c.apiKey))
}

func (c Credentials) GoString() string { return c.String() }

// Format keeps every fmt verb on the masked form.
func (c Credentials) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, c.String())
}

// MarshalLogObject lets zap log credentials without exposing them.
func (c Credentials) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString(HeaderUserID, mask(c.userID))
	enc.AddString(HeaderAPIKey, mask(c.apiKey))
	return nil
}

// MarshalText keeps JSON and text encoders on the masked form.
func (c Credentials) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c Credentials) headers() map[string]string {
	return map[string]string{
		HeaderUserID: c.userID,
		HeaderAPIKey: c.apiKey,
	}
}

func mask(s string) string {
	if s == "" {
		return "<empty>"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", 4)
}
