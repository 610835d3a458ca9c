package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	domainerrors "quorum/contexts/voter-access/registry-service/domain/errors"
)

// Signer implements ports.TokenSigner with HMAC-SHA256 over the voter key.
// Tokens look like base64url(voterKey).base64url(mac).
type Signer struct {
	secret []byte
}

func NewSigner(secret string) (Signer, error) {
	if secret == "" {
		return Signer{}, errors.New("session secret is required")
	}
	return Signer{secret: []byte(secret)}, nil
}

func (s Signer) Mint(voterKey string) (string, error) {
	if strings.TrimSpace(voterKey) == "" {
		return "", domainerrors.ErrInvalidSessionToken
	}
	encoded := base64.RawURLEncoding.EncodeToString([]byte(voterKey))
	return encoded + "." + s.sign(voterKey), nil
}

func (s Signer) Verify(token string) (string, error) {
	encoded, mac, found := strings.Cut(token, ".")
	if !found {
		return "", domainerrors.ErrInvalidSessionToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", domainerrors.ErrInvalidSessionToken
	}
	voterKey := string(raw)
	if !hmac.Equal([]byte(mac), []byte(s.sign(voterKey))) {
		return "", domainerrors.ErrInvalidSessionToken
	}
	return voterKey, nil
}

func (s Signer) sign(voterKey string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(voterKey))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
