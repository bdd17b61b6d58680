package inbound

import (
	"github.com/asnswap/asnswap/internal/auth/usecase"
	"github.com/asnswap/asnswap/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for passwordless authentication.
type HTTPEndpoint struct {
	uc uc
}

// RequestOTP issues a one-time login code for the email.
// @Summary Request login code
// @Description Generates a 6-digit code, replaces any previous pending code, and emails it to the address.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RequestOTPRequest true "Request payload"
// @Success 200 {object} router.successResponse{data=RequestOTPResponse} "Code issued"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 503 {object} router.errorResponse "Passcode store unavailable"
// @Router /api/auth/request-otp [post]
func (h *HTTPEndpoint) RequestOTP(r *router.Request) (any, error) {
	var req RequestOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RequestOTP(r.Context(), usecase.RequestOTPInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return RequestOTPResponse{DebugCode: resp.DebugCode}, nil
}

// VerifyOTP exchanges a pending code for a session token.
// @Summary Verify login code
// @Description Validates the 6-digit code and returns a bearer session token. Codes are single use.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=VerifyOTPResponse} "Session token"
// @Failure 400 {object} router.errorResponse "Invalid or expired code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 503 {object} router.errorResponse "Passcode store unavailable"
// @Router /api/auth/verify-otp [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		AccessToken: resp.AccessToken,
		TokenType:   "bearer",
	}, nil
}

// Me returns the identity of the authenticated caller.
// @Summary Current identity
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=MeResponse} "Authenticated identity"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	resp, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return MeResponse{Email: resp.Email}, nil
}
