package auth

import "time"

// Strategy issues and verifies session tokens for backoffice accounts.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token issuance. TTL defaults to a full call-center shift.
type Options struct {
	TTL time.Duration
}
