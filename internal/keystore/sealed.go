package keystore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

const sealedPrefix = "v1:"

// ErrSealed is returned when a stored value cannot be decrypted with the
// configured secret.
var ErrSealed = errors.New("stored credential cannot be decrypted")

// Sealed encrypts credentials before handing them to the wrapped backend.
// Empty values pass through unencrypted so that "absent" survives.
type Sealed struct {
	next   Backend
	secret [32]byte
}

// NewSealed wraps next with XChaCha20-Poly1305 using a key derived from secret
func NewSealed(next Backend, secret string) *Sealed {
	return &Sealed{next: next, secret: sha256.Sum256([]byte(secret))}
}

func (s *Sealed) Put(ctx context.Context, profile, value string) error {
	if value == "" {
		return s.next.Put(ctx, profile, "")
	}
	sealed, err := s.seal(profile, value)
	if err != nil {
		return err
	}
	return s.next.Put(ctx, profile, sealed)
}

func (s *Sealed) Fetch(ctx context.Context, profile string) (string, error) {
	stored, err := s.next.Fetch(ctx, profile)
	if err != nil || stored == "" {
		return stored, err
	}
	return s.open(profile, stored)
}

func (s *Sealed) seal(profile, value string) (string, error) {
	aead, err := chacha20poly1305.NewX(s.secret[:])
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	// The profile id is bound as associated data so values cannot be swapped between profiles.
	out := aead.Seal(nonce, nonce, []byte(value), []byte(profile))
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *Sealed) open(profile, stored string) (string, error) {
	if !strings.HasPrefix(stored, sealedPrefix) {
		return "", ErrSealed
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(stored, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealed, err)
	}
	aead, err := chacha20poly1305.NewX(s.secret[:])
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrSealed
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, []byte(profile))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealed, err)
	}
	return string(plain), nil
}
