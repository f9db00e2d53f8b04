package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "wellness/internal/platform/errors"
)

// Client talks to a Supabase project: GoTrue for auth, PostgREST for rows.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL, anonKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx answer. It unwraps to the matching apperrors sentinels.
type APIError struct {
	Status  int
	Code    string
	Message string
	kinds   []error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("supabase: status %d", e.Status)
	}
	return fmt.Sprintf("supabase: %s (status %d)", e.Message, e.Status)
}

func (e *APIError) Unwrap() []error { return e.kinds }

type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
	Code             any    `json:"code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

type endpointKind int

const (
	authEndpoint endpointKind = iota
	restEndpoint
)

func (c *Client) do(ctx context.Context, kind endpointKind, method, path, token string, headers map[string]string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	bearer := token
	if bearer == "" {
		bearer = c.anonKey
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", apperrors.ErrNetwork, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(kind, res.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(kind endpointKind, status int, raw []byte) error {
	eb := errorBody{}
	_ = json.Unmarshal(raw, &eb)
	apiErr := &APIError{Status: status, Code: eb.ErrorCode}
	for _, m := range []string{eb.Msg, eb.ErrorDescription, eb.Message, eb.Error} {
		if m != "" {
			apiErr.Message = m
			break
		}
	}
	if apiErr.Code == "" {
		if s, ok := eb.Code.(string); ok {
			apiErr.Code = s
		} else {
			apiErr.Code = eb.Error
		}
	}

	lower := strings.ToLower(apiErr.Message + " " + apiErr.Code)
	switch {
	case status >= 500:
		apiErr.kinds = []error{apperrors.ErrNetwork}
	case kind == authEndpoint && strings.Contains(lower, "not confirmed"),
		kind == authEndpoint && strings.Contains(lower, "email_not_confirmed"):
		apiErr.kinds = []error{apperrors.ErrAuth, apperrors.ErrEmailNotConfirmed}
	case kind == authEndpoint && (strings.Contains(lower, "invalid login credentials") ||
		strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "invalid_credentials")):
		apiErr.kinds = []error{apperrors.ErrAuth, apperrors.ErrInvalidCredentials}
	case kind == authEndpoint:
		apiErr.kinds = []error{apperrors.ErrAuth}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.kinds = []error{apperrors.ErrNotAuthenticated}
	default:
		apiErr.kinds = []error{apperrors.ErrInvalidInput}
	}
	return apiErr
}
