// Package service implements the request interception and forwarding pipeline.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"intercept-proxy-go/internal/client"
	"intercept-proxy-go/internal/config"
	"intercept-proxy-go/internal/inspect"
	"intercept-proxy-go/internal/metrics"
	"intercept-proxy-go/internal/model"
)

// Pipeline stage errors. Handlers distinguish them with errors.Is to map
// each failure to the right client response.
var (
	// ErrBlocked marks a request whose body contains the blocked substring.
	// Not a fault: the designed rejection path, answered with 401.
	ErrBlocked = errors.New("request body contains blocked substring")

	// ErrBodyRead marks a request whose body stream could not be drained.
	ErrBodyRead = errors.New("request body read failed")

	// ErrDelay marks a duplicate-body throttle wait that was interrupted.
	ErrDelay = errors.New("duplicate delay failed")

	// ErrForwarding marks a failure to reach or write to the backend.
	ErrForwarding = errors.New("forwarding to backend failed")
)

// hopByHopHeaders are headers that must not be forwarded to the backend.
var hopByHopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"TE",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// InterceptService runs each request through the inspection pipeline:
// buffer the body, reject blocked content, throttle duplicates, then
// forward the buffered body to the fixed backend.
type InterceptService struct {
	client  *client.BackendClient
	gate    *inspect.DelayGate
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	baseURL *url.URL
}

// NewInterceptService creates an InterceptService with a fresh duplicate
// gate. The metrics parameter is optional; pass nil to disable pipeline
// metrics recording.
func NewInterceptService(c *client.BackendClient, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*InterceptService, error) {
	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base_url: %w", err)
	}

	return &InterceptService{
		client:  c,
		gate:    inspect.NewDelayGate(cfg.Filter.DuplicateDelay()),
		cfg:     cfg,
		logger:  logger.With("component", "intercept_service"),
		metrics: m,
		baseURL: u,
	}, nil
}

// Process runs the pipeline for one request and returns the backend
// response tagged with the generated request id. The caller is responsible
// for closing the response body.
//
// The body is forwarded exactly once, from the buffered copy: it has
// already been fully drained for the policy checks, so the original stream
// holds nothing more.
func (s *InterceptService) Process(pr *model.ProxyRequest) (*model.BackendResponse, error) {
	id := uuid.NewString()

	body, err := inspect.ReadBody(pr.Body)
	if err != nil {
		s.logger.Error("collect request body",
			"err", err,
			"request_id", id,
			"method", pr.Method,
		)
		return nil, fmt.Errorf("%w: %w", ErrBodyRead, err)
	}

	s.logger.Info("request received",
		"method", pr.Method,
		"request_id", id,
		"body", body,
		"host", pr.Host,
	)

	if inspect.IsBlocked(body, s.cfg.Filter.BlockedSubstring) {
		if s.metrics != nil {
			s.metrics.RejectedTotal.Inc()
		}
		s.logger.Error("request rejected by content filter",
			"request_id", id,
			"method", pr.Method,
			"host", pr.Host,
		)
		return nil, fmt.Errorf("%w (request %s)", ErrBlocked, id)
	}

	// The gate decides and updates its slot atomically; only the wait
	// itself happens outside the critical section.
	if s.gate.Check(body) {
		if s.metrics != nil {
			s.metrics.DelayedTotal.Inc()
		}
		s.logger.Info("duplicate body, delaying response",
			"request_id", id,
			"delay", s.gate.Delay(),
		)
		if err := s.gate.Wait(pr.Ctx); err != nil {
			s.logger.Error("duplicate delay aborted",
				"err", err,
				"request_id", id,
			)
			return nil, fmt.Errorf("%w: %w", ErrDelay, err)
		}
	}

	backendURL := s.buildBackendURL(pr.Path, pr.Query)
	header := forwardHeaders(pr.Header)

	s.logger.Debug("forwarding request",
		"request_id", id,
		"method", pr.Method,
		"url", backendURL,
	)

	resp, err := s.client.DoStream(pr.Ctx, pr.Method, backendURL, pr.Host, header, strings.NewReader(body))
	if err != nil {
		s.logger.Error("forward to backend",
			"err", err,
			"request_id", id,
			"method", pr.Method,
		)
		return nil, fmt.Errorf("%w: %w", ErrForwarding, err)
	}

	resp.RequestID = id
	return resp, nil
}

func (s *InterceptService) buildBackendURL(path string, query url.Values) string {
	u := *s.baseURL
	u.Path = path
	u.RawQuery = query.Encode()
	return u.String()
}

// forwardHeaders clones the client's header set for the backend request,
// dropping only hop-by-hop headers. Everything else passes through verbatim.
func forwardHeaders(src http.Header) http.Header {
	dst := src.Clone()
	if dst == nil {
		dst = make(http.Header)
	}
	for _, h := range hopByHopHeaders {
		dst.Del(h)
	}
	return dst
}
