package models

import "time"

// Token is an opaque bearer credential bound to one phone number.
// It authorizes actions for that phone only while Expires is in the future.
type Token struct {
	ID      string    `json:"id"`
	Phone   string    `json:"phone"`
	Expires time.Time `json:"expires"`
}

// Expired reports whether the token is past its expiry.
func (t *Token) Expired() bool {
	return !t.Expires.After(time.Now())
}
