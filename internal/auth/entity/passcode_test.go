package entity

import (
	"testing"
	"time"
)

func TestPasscodeExpired(t *testing.T) {
	expiresAt := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	pc := Passcode{Email: "ani@kemenkeu.go.id", ExpiresAt: expiresAt}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "BeforeExpiry", now: expiresAt.Add(-time.Second), want: false},
		{name: "AtExpiryInstant", now: expiresAt, want: false},
		{name: "AfterExpiry", now: expiresAt.Add(time.Nanosecond), want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pc.Expired(tc.now); got != tc.want {
				t.Fatalf("Expired(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}
