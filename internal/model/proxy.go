// Package model defines shared types for the proxy.
package model

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// ProxyRequest represents a client request to be inspected and forwarded.
// Body is the live request stream; the intercept pipeline buffers it fully
// before any policy runs.
type ProxyRequest struct {
	Ctx    context.Context
	Method string
	Host   string
	Path   string
	Query  url.Values
	Header http.Header
	Body   io.ReadCloser
}

// HeaderRequestID is the response header carrying the per-request
// correlation token.
const HeaderRequestID = "x-proxy-request-id"

// BackendResponse represents the backend response to be streamed back.
type BackendResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser

	// RequestID is the correlation token assigned to the request that
	// produced this response; surfaced as the x-proxy-request-id header.
	RequestID string
}
