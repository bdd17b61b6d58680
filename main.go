// ASN Swap is the backend for a civil-servant region-swap marketplace:
// passwordless OTP login, swap profiles and search, chat, match requests,
// and subscription checkout.
package main

import (
	"context"
	"time"

	"github.com/asnswap/asnswap/internal/app"
)

func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
