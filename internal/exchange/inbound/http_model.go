package inbound

import "time"

type ProfileUpsertRequest struct {
	Name          string `json:"name"`
	NIP           string `json:"nip,omitempty"`
	Agency        string `json:"agency"`
	Position      string `json:"position"`
	Grade         string `json:"grade,omitempty"`
	CurrentRegion string `json:"current_region"`
	DesiredRegion string `json:"desired_region"`
}

type ProfileUpsertResponse struct{}

func (ProfileUpsertResponse) Message() string {
	return "Profile saved."
}

type ProfileResponse struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	NIP           string `json:"nip,omitempty"`
	Agency        string `json:"agency"`
	Position      string `json:"position"`
	Grade         string `json:"grade,omitempty"`
	CurrentRegion string `json:"current_region"`
	DesiredRegion string `json:"desired_region"`
	IsSubscribed  bool   `json:"is_subscribed"`
	IsVerified    bool   `json:"is_verified"`
}

type SearchResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}

type ChatSendRequest struct {
	ToEmail string `json:"to_email"`
	Body    string `json:"message"`
}

type ChatSendResponse struct{}

func (ChatSendResponse) Message() string {
	return "Message sent."
}

type MessageResponse struct {
	FromEmail string    `json:"from_email"`
	ToEmail   string    `json:"to_email"`
	Body      string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	Messages []MessageResponse `json:"messages"`
}

type MatchRequestRequest struct {
	TargetEmail string `json:"target_email"`
	Note        string `json:"note,omitempty"`
}

type MatchRequestResponse struct{}

func (MatchRequestResponse) Message() string {
	return "Match request sent."
}

type MatchItemResponse struct {
	RequesterEmail string    `json:"requester_email"`
	TargetEmail    string    `json:"target_email"`
	Note           string    `json:"note,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type MatchListResponse struct {
	Requests []MatchItemResponse `json:"requests"`
}

type AdminUserListResponse struct {
	Users []ProfileResponse `json:"users"`
}

type AdminVerifyRequest struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

type AdminUserExportResponse struct {
	URL string `json:"url"`
}
