package inbound

type RequestOTPRequest struct {
	Email string `json:"email"`
}

type RequestOTPResponse struct {
	DebugCode string `json:"debug_code,omitempty"`
}

func (RequestOTPResponse) Message() string {
	return "If the email is valid, a login code has been sent."
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyOTPResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (VerifyOTPResponse) Message() string {
	return "Login successful."
}

type MeResponse struct {
	Email string `json:"email"`
}
