package event

const OTPRequestedDestination string = "otp_requested"
const OTPRequestedConsumerNotification string = "otp_requested_notification"

type OTPRequestedMessage struct {
	Email     string `json:"email"`
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"`
}
