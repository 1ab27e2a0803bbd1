// Package api implements the HTTP boundary to the remote docchat backend.
// The gateway is a pure request/response layer: it attaches credentials and
// classifies failures, but never mutates UI or session state itself.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/docchat/docchat-cli/internal/errs"
)

// TokenSource supplies the current access token. An empty string means
// unauthenticated; no bearer header is attached then.
type TokenSource interface {
	Current() string
}

// Gateway performs JSON requests against the fixed remote origin.
type Gateway struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

// NewGateway constructs a gateway for baseURL. tokens may serve empty values;
// log must be non-nil (use zap.NewNop for silence).
func NewGateway(baseURL string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// Do issues an authenticated JSON request and decodes the 2xx body into out
// (skipped when out is nil). body, when non-nil, is JSON-encoded with JSON
// content headers. Failures map onto the errs taxonomy: 401 to
// ErrSessionExpired, other non-2xx to *errs.RequestError, network/decode
// trouble to ErrTransport.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	req, err := g.jsonRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return g.send(req, out, true)
}

// doPublic is Do for the pre-auth endpoints (register, login): no bearer is
// attached and a 401 is an ordinary request failure, not session expiry.
func (g *Gateway) doPublic(ctx context.Context, method, path string, body, out any) error {
	req, err := g.jsonRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return g.send(req, out, false)
}

// DoMultipart issues an authenticated multipart POST (uploads). contentType
// is the multipart writer's FormDataContentType.
func (g *Gateway) DoMultipart(ctx context.Context, path string, form io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, form)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", errs.ErrTransport, err)
	}
	req.Header.Set("Content-Type", contentType)
	return g.send(req, out, true)
}

func (g *Gateway) jsonRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %v", errs.ErrTransport, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", errs.ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (g *Gateway) send(req *http.Request, out any, authenticated bool) error {
	if authenticated {
		if tok := g.tokens.Current(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if rid, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-ID", rid.String())
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("http",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", errs.ErrTransport, err)
	}
	defer resp.Body.Close()

	// metadata only, never payloads
	g.log.Debug("http",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("dur", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", errs.ErrTransport, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && authenticated:
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, errs.ErrSessionExpired)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &errs.RequestError{Status: resp.StatusCode, Detail: serverDetail(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", errs.ErrTransport, err)
	}
	return nil
}

// serverDetail extracts the server's error message from a failure body.
// Precedence is fixed: "detail", then "error"; "" when neither parses.
func serverDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
		Err    string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Detail != "" {
		return body.Detail
	}
	return body.Err
}
