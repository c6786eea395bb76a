// Package sharelink signs short-lived public links to private resources.
package sharelink

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalid is returned for malformed or tampered tokens.
	ErrInvalid = errors.New("invalid share token")
	// ErrExpired is returned for well-formed tokens past their expiry.
	ErrExpired = errors.New("share token expired")
)

// Signer issues and verifies HMAC-SHA256 share tokens of the form
// base64(kind:subject).expiry.signature.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner constructs a signer with the provided secret and TTL.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token granting access to subject of the given kind.
func (s *Signer) Sign(kind, subject string) (string, time.Time, error) {
	if kind == "" || subject == "" {
		return "", time.Time{}, fmt.Errorf("kind and subject required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().UTC().Add(s.ttl).Truncate(time.Second)
	body := base64.RawURLEncoding.EncodeToString([]byte(kind + ":" + subject))
	exp := strconv.FormatInt(expiresAt.Unix(), 10)
	return strings.Join([]string{body, exp, s.mac(body, exp)}, "."), expiresAt, nil
}

// Verify checks the token and returns its subject when kind matches.
func (s *Signer) Verify(kind, token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrInvalid
	}
	body, exp, signature := parts[0], parts[1], parts[2]
	if !hmac.Equal([]byte(s.mac(body, exp)), []byte(signature)) {
		return "", ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return "", ErrInvalid
	}
	gotKind, subject, ok := strings.Cut(string(raw), ":")
	if !ok || gotKind != kind || subject == "" {
		return "", ErrInvalid
	}
	expUnix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return "", ErrInvalid
	}
	if s.now().After(time.Unix(expUnix, 0)) {
		return "", ErrExpired
	}
	return subject, nil
}

func (s *Signer) mac(body, exp string) string {
	h := hmac.New(sha256.New, s.secret)
	_, _ = h.Write([]byte(body + "|" + exp))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
