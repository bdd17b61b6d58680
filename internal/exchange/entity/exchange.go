package entity

import (
	"time"

	"github.com/asnswap/asnswap/internal/pkg/valueobject"
)

// Profile is a civil servant looking to swap duty regions.
type Profile struct {
	ID            int64
	Email         string
	Name          string
	NIP           string // employee number, optional
	Agency        string
	Position      string
	Grade         string
	CurrentRegion string
	DesiredRegion string
	IsSubscribed  bool
	IsVerified    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfileFilter narrows a profile search. Empty fields are ignored; set
// fields match as case-insensitive substrings.
type ProfileFilter struct {
	DesiredRegion string
	CurrentRegion string
	Agency        string
}

// Message is a chat message between two profiles.
type Message struct {
	ID        int64
	FromEmail string
	ToEmail   string
	Body      string
	Read      bool
	Metadata  valueobject.JSONMap
	CreatedAt time.Time
}

// MatchRequest is a formal swap proposal from one profile to another.
type MatchRequest struct {
	ID             int64
	RequesterEmail string
	TargetEmail    string
	Note           string
	Status         MatchStatus
	CreatedAt      time.Time
}
