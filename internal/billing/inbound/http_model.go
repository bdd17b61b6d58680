package inbound

type CheckoutSessionRequest struct {
	Email string `json:"email"`
}

type CheckoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (CheckoutSessionResponse) Message() string {
	return "Checkout session created."
}
