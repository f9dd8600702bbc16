package postgresadapter

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

// UUIDGenerator implements ports.IDGenerator using RFC 4122 UUID v4 values.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// SessionTokenGenerator mints opaque 256-bit session tokens. Tokens carry no
// structure; identity lives server-side in the session store.
type SessionTokenGenerator struct{}

func (SessionTokenGenerator) NewToken(_ context.Context) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
