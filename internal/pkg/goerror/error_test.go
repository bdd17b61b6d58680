package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "Server", err: NewServer(errors.New("boom")), want: http.StatusInternalServerError},
		{name: "Unavailable", err: NewUnavailable(errors.New("redis down")), want: http.StatusServiceUnavailable},
		{name: "BusinessBadRequest", err: NewBusiness("Invalid OTP", CodeBadRequest), want: http.StatusBadRequest},
		{name: "BusinessUnauthorized", err: NewBusiness("Authentication required", CodeUnauthorized), want: http.StatusUnauthorized},
		{name: "BusinessForbidden", err: NewBusiness("Account not allowed", CodeForbidden), want: http.StatusForbidden},
		{name: "BusinessNotFound", err: NewBusiness("Profile not found", CodeNotFound), want: http.StatusNotFound},
		{name: "BusinessTooManyRequest", err: NewBusiness("Checkout already in progress", CodeTooManyRequest), want: http.StatusTooManyRequests},
		{name: "InvalidInput", err: NewInvalidInput(errors.New("bad")), want: http.StatusUnprocessableEntity},
		{name: "InvalidFormat", err: NewInvalidFormat(), want: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {

			// Act
			var gerr *Error
			if !errors.As(tc.err, &gerr) {
				t.Fatalf("expected *Error, got %T", tc.err)
			}

			// Assert
			if got := gerr.StatusCode(); got != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, got)
			}
		})
	}
}

func TestNewUnavailable(t *testing.T) {

	// Arrange
	cause := errors.New("dial tcp: connection refused")

	// Act
	err := NewUnavailable(cause)

	// Assert
	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Type() != TypeServer {
		t.Fatalf("expected server type, got %v", gerr.Type())
	}
	if gerr.Code() != CodeUnavailable {
		t.Fatalf("expected CodeUnavailable, got %v", gerr.Code())
	}
	if gerr.Msg() != "Service unavailable" {
		t.Fatalf("unexpected message %q", gerr.Msg())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive")
	}
}
