package entity

import "time"

// PasscodePurpose labels what a passcode is allowed to be exchanged for.
type PasscodePurpose string

const (
	// PasscodePurposeLogin is issued by the request-otp flow.
	PasscodePurposeLogin PasscodePurpose = "login"
)

// Passcode is the single pending login code for an email address.
//
// At most one record exists per email: issuing a new code replaces any
// previous one. Only the hash of the code is stored.
type Passcode struct {
	Email     string
	CodeHash  string
	Purpose   PasscodePurpose
	ExpiresAt time.Time
}

// Expired reports whether the code is no longer usable at the given time.
// The boundary is exclusive: a code presented exactly at ExpiresAt is
// still accepted.
func (p Passcode) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
