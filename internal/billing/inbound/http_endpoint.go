package inbound

import (
	"github.com/asnswap/asnswap/internal/billing/usecase"
	"github.com/asnswap/asnswap/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for subscription billing.
type HTTPEndpoint struct {
	uc uc
}

// CheckoutSession creates a Stripe checkout session for the premium plan.
// @Summary Create checkout session
// @Description Opens a hosted Stripe checkout page for the monthly premium subscription.
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body CheckoutSessionRequest true "Checkout payload"
// @Success 200 {object} router.successResponse{data=CheckoutSessionResponse} "Checkout session created"
// @Failure 400 {object} router.errorResponse "Invalid request body or provider rejection"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Checkout already in progress"
// @Router /api/checkout/session [post]
func (h *HTTPEndpoint) CheckoutSession(r *router.Request) (any, error) {
	var req CheckoutSessionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CheckoutSession(r.Context(), usecase.CheckoutSessionInput{
		Email: req.Email,
	})
	if err != nil {
		return nil, err
	}

	return CheckoutSessionResponse{ID: resp.ID, URL: resp.URL}, nil
}
