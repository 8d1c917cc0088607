package testutil

import (
	"context"
	"net/http"

	id "github.com/illustspace/gsr/pkg/domain"
	"github.com/illustspace/gsr/pkg/requestcontext"
)

// WithCaller adds an authenticated caller to the request context, as the auth
// middleware would. Addresses that fail to parse are not added.
func WithCaller(req *http.Request, address string) *http.Request {
	caller, err := id.ParsePrimaryAddress(address)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

// WithRequestID adds a request ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
