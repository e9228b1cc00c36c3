// Package nonce issues and verifies the one-time tokens that guard admin
// page actions against forged requests.
package nonce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultLifetime is how long a token window stays open. Tokens verify
	// during the tick they were issued in and the tick before the current
	// one, so the effective lifetime is between one and two windows.
	DefaultLifetime = 12 * time.Hour

	// TokenLength is the number of hex characters emitted per token.
	TokenLength = 12
)

// Option configures a Service before construction.
type Option func(*Service)

// WithLifetime overrides the tick window duration. Non-positive values are
// ignored.
func WithLifetime(d time.Duration) Option {
	return func(s *Service) {
		if d <= 0 {
			return
		}
		s.lifetime = d
	}
}

// WithClock injects the time source used to compute ticks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now == nil {
			return
		}
		s.now = now
	}
}

// Service signs action scopes with a keyed HMAC and verifies the resulting
// tokens within a rolling two-tick window.
type Service struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
}

// New constructs a Service from a signing key. The key must not be empty.
func New(key []byte, options ...Option) (*Service, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("nonce: signing key is required")
	}
	s := &Service{
		key:      append([]byte(nil), key...),
		lifetime: DefaultLifetime,
		now:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Issue returns a token bound to the supplied scope and user for the current
// tick. Scope is conventionally "slug:action".
func (s *Service) Issue(scope, userID string) string {
	if s == nil {
		return ""
	}
	return s.tokenAt(s.tick(0), scope, userID)
}

// Verify reports whether token matches the scope and user within the current
// or previous tick. Comparison is constant time.
func (s *Service) Verify(token, scope, userID string) bool {
	if s == nil {
		return false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	for _, offset := range []int64{0, -1} {
		expected := s.tokenAt(s.tick(offset), scope, userID)
		if hmac.Equal([]byte(expected), []byte(token)) {
			return true
		}
	}
	return false
}

func (s *Service) tick(offset int64) int64 {
	return s.now().UnixNano()/s.lifetime.Nanoseconds() + offset
}

func (s *Service) tokenAt(tick int64, scope, userID string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(strconv.FormatInt(tick, 10)))
	mac.Write([]byte("|"))
	mac.Write([]byte(strings.TrimSpace(scope)))
	mac.Write([]byte("|"))
	mac.Write([]byte(strings.TrimSpace(userID)))
	sum := hex.EncodeToString(mac.Sum(nil))
	if len(sum) > TokenLength {
		sum = sum[:TokenLength]
	}
	return sum
}

// Scope joins a page slug and action name into the canonical nonce scope.
func Scope(slug, action string) string {
	return strings.TrimSpace(slug) + ":" + strings.TrimSpace(action)
}
