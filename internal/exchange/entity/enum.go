package entity

// MatchStatus is the lifecycle state of a match request.
type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

func (m MatchStatus) String() string {
	return string(m)
}
