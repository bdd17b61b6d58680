package inbound

import (
	"github.com/asnswap/asnswap/internal/exchange/entity"
	"github.com/asnswap/asnswap/internal/exchange/usecase"
	"github.com/asnswap/asnswap/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for swap profiles, chat, match
// requests, and the admin surface.
type HTTPEndpoint struct {
	uc uc
}

func toProfileResponse(p entity.Profile) ProfileResponse {
	return ProfileResponse{
		Email:         p.Email,
		Name:          p.Name,
		NIP:           p.NIP,
		Agency:        p.Agency,
		Position:      p.Position,
		Grade:         p.Grade,
		CurrentRegion: p.CurrentRegion,
		DesiredRegion: p.DesiredRegion,
		IsSubscribed:  p.IsSubscribed,
		IsVerified:    p.IsVerified,
	}
}

// ProfileUpsert creates or updates the caller's swap profile.
// @Summary Save profile
// @Description Creates or updates the swap profile of the authenticated user.
// @Tags Exchange, Profile
// @Security BearerAuth
// @Accept json
// @Param request body ProfileUpsertRequest true "Profile payload"
// @Success 200 {object} router.successResponse{data=ProfileUpsertResponse} "Profile saved"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/profile [post]
func (h *HTTPEndpoint) ProfileUpsert(r *router.Request) (any, error) {
	var req ProfileUpsertRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ProfileUpsert(r.Context(), usecase.ProfileUpsertInput{
		Name:          req.Name,
		NIP:           req.NIP,
		Agency:        req.Agency,
		Position:      req.Position,
		Grade:         req.Grade,
		CurrentRegion: req.CurrentRegion,
		DesiredRegion: req.DesiredRegion,
	}); err != nil {
		return nil, err
	}

	return ProfileUpsertResponse{}, nil
}

// ProfileGet returns one profile by email.
// @Summary Get profile
// @Tags Exchange, Profile
// @Security BearerAuth
// @Produce json
// @Param email path string true "Profile email"
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Profile not found"
// @Router /api/profile/{email} [get]
func (h *HTTPEndpoint) ProfileGet(r *router.Request) (any, error) {
	resp, err := h.uc.ProfileGet(r.Context(), usecase.ProfileGetInput{
		Email: r.GetParam("email"),
	})
	if err != nil {
		return nil, err
	}

	return toProfileResponse(resp.Profile), nil
}

// Search finds swap candidates by region and agency.
// @Summary Search profiles
// @Description Case-insensitive substring search over desired region, current region, and agency.
// @Tags Exchange, Profile
// @Security BearerAuth
// @Produce json
// @Param desired_region query string false "Desired region filter"
// @Param current_region query string false "Current region filter"
// @Param agency query string false "Agency filter"
// @Success 200 {object} router.successResponse{data=SearchResponse} "Matching profiles"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/search [get]
func (h *HTTPEndpoint) Search(r *router.Request) (any, error) {
	resp, err := h.uc.Search(r.Context(), usecase.SearchInput{
		DesiredRegion: r.GetQuery("desired_region"),
		CurrentRegion: r.GetQuery("current_region"),
		Agency:        r.GetQuery("agency"),
	})
	if err != nil {
		return nil, err
	}

	return SearchResponse{Profiles: lo.Map(resp.Profiles,
		func(p entity.Profile, _ int) ProfileResponse { return toProfileResponse(p) })}, nil
}

// ChatSend stores a chat message to another profile.
// @Summary Send message
// @Tags Exchange, Chat
// @Security BearerAuth
// @Accept json
// @Param request body ChatSendRequest true "Message payload"
// @Success 200 {object} router.successResponse{data=ChatSendResponse} "Message sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/chat/send [post]
func (h *HTTPEndpoint) ChatSend(r *router.Request) (any, error) {
	var req ChatSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ChatSend(r.Context(), usecase.ChatSendInput{
		ToEmail: req.ToEmail,
		Body:    req.Body,
	}); err != nil {
		return nil, err
	}

	return ChatSendResponse{}, nil
}

// ChatHistory returns the conversation with another profile.
// @Summary Chat history
// @Tags Exchange, Chat
// @Security BearerAuth
// @Produce json
// @Param with query string true "Other participant email"
// @Success 200 {object} router.successResponse{data=ChatHistoryResponse} "Conversation"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/chat/history [get]
func (h *HTTPEndpoint) ChatHistory(r *router.Request) (any, error) {
	resp, err := h.uc.ChatHistory(r.Context(), usecase.ChatHistoryInput{
		WithEmail: r.GetQuery("with"),
	})
	if err != nil {
		return nil, err
	}

	return ChatHistoryResponse{Messages: lo.Map(resp.Messages,
		func(m entity.Message, _ int) MessageResponse {
			return MessageResponse{
				FromEmail: m.FromEmail,
				ToEmail:   m.ToEmail,
				Body:      m.Body,
				Read:      m.Read,
				CreatedAt: m.CreatedAt,
			}
		})}, nil
}

// MatchRequest records a swap proposal.
// @Summary Request match
// @Tags Exchange, Match
// @Security BearerAuth
// @Accept json
// @Param request body MatchRequestRequest true "Match request payload"
// @Success 200 {object} router.successResponse{data=MatchRequestResponse} "Match request sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/match/request [post]
func (h *HTTPEndpoint) MatchRequest(r *router.Request) (any, error) {
	var req MatchRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.MatchRequest(r.Context(), usecase.MatchRequestInput{
		TargetEmail: req.TargetEmail,
		Note:        req.Note,
	}); err != nil {
		return nil, err
	}

	return MatchRequestResponse{}, nil
}

// MatchList returns match requests sent or received by the caller.
// @Summary List match requests
// @Tags Exchange, Match
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=MatchListResponse} "Match requests"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/match/requests [get]
func (h *HTTPEndpoint) MatchList(r *router.Request) (any, error) {
	resp, err := h.uc.MatchList(r.Context())
	if err != nil {
		return nil, err
	}

	return MatchListResponse{Requests: lo.Map(resp.Requests,
		func(m entity.MatchRequest, _ int) MatchItemResponse {
			return MatchItemResponse{
				RequesterEmail: m.RequesterEmail,
				TargetEmail:    m.TargetEmail,
				Note:           m.Note,
				Status:         m.Status.String(),
				CreatedAt:      m.CreatedAt,
			}
		})}, nil
}

// AdminUserList returns every profile.
// @Summary List users
// @Tags Exchange, Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=AdminUserListResponse} "All profiles"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Router /api/admin/users [get]
func (h *HTTPEndpoint) AdminUserList(r *router.Request) (any, error) {
	resp, err := h.uc.AdminUserList(r.Context())
	if err != nil {
		return nil, err
	}

	return AdminUserListResponse{Users: lo.Map(resp.Profiles,
		func(p entity.Profile, _ int) ProfileResponse { return toProfileResponse(p) })}, nil
}

// AdminVerify marks a profile verified or unverified.
// @Summary Verify user
// @Tags Exchange, Admin
// @Security BearerAuth
// @Accept json
// @Param request body AdminVerifyRequest true "Verification payload"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Profile not found"
// @Router /api/admin/verify [post]
func (h *HTTPEndpoint) AdminVerify(r *router.Request) (any, error) {
	var req AdminVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.AdminVerify(r.Context(), usecase.AdminVerifyInput{
		Email:    req.Email,
		Verified: req.Verified,
	})
}

// AdminUserDelete removes a profile and its messages.
// @Summary Delete user
// @Tags Exchange, Admin
// @Security BearerAuth
// @Param email path string true "Profile email"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Profile not found"
// @Router /api/admin/users/{email} [delete]
func (h *HTTPEndpoint) AdminUserDelete(r *router.Request) (any, error) {
	return nil, h.uc.AdminUserDelete(r.Context(), usecase.AdminUserDeleteInput{
		Email: r.GetParam("email"),
	})
}

// AdminUserExport exports all profiles to CSV and returns a download URL.
// @Summary Export users
// @Tags Exchange, Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=AdminUserExportResponse} "Download URL"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Router /api/admin/users-export [get]
func (h *HTTPEndpoint) AdminUserExport(r *router.Request) (any, error) {
	resp, err := h.uc.AdminUserExport(r.Context())
	if err != nil {
		return nil, err
	}

	return AdminUserExportResponse{URL: resp.URL}, nil
}
