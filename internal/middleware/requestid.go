package middleware

import (
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID is a resty middleware that tags each outbound request with a
// unique identifier.
//
// Behavior:
//   - Generates a new UUID (v4) unless the request already carries one.
//   - Sends it in the "X-Request-ID" header so the auction API logs can be
//     matched with ours.
//
// Usage:
//
//	client := resty.New()
//	client.OnBeforeRequest(middleware.RequestID())
func RequestID() resty.RequestMiddleware {
	return func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get(RequestIDHeader) == "" {
			r.SetHeader(RequestIDHeader, uuid.NewString())
		}
		return nil
	}
}
