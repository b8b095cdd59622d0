package auth

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

var ErrInvalidToken = errors.New("invalid session token")

const tokenVersion = "v1"

// HMACStrategy signs session tokens with an HMAC-SHA256 keyed by the server
// secret. Tokens are self-contained; no session store is involved.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken generates a signed session token for the user.
func (s *HMACStrategy) IssueToken(userID int64) (string, error) {
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s|%d|%d", tokenVersion, userID, expires)
	token := payload + "|" + s.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken verifies the signature and expiry, returning the user ID.
func (s *HMACStrategy) ParseToken(token string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}

	parts := strings.Split(string(raw), "|")
	if len(parts) != 4 || parts[0] != tokenVersion {
		return 0, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], "|")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	if time.Unix(expires, 0).Before(s.now()) {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
