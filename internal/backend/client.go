// Package backend is the portal's only gateway to the ERP backend API. It
// carries one login's session cookies, speaks the backend's JSON envelope and
// folds every failure into the apperrors taxonomy so stores never inspect
// HTTP details themselves.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgate/student-portal/internal/config"
	"github.com/campusgate/student-portal/internal/pkg/apperrors"
)

// envelope is the backend's uniform response shape: {status, data, message}.
// A false status signals an application-level failure even under HTTP 200.
type envelope struct {
	Status  bool            `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client talks to the ERP backend on behalf of a single portal session. Its
// cookie jar accumulates the backend's session cookies from login onwards and
// replays them on every later call.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  zerolog.Logger
}

// New creates a prototype client from configuration. Sessions never use the
// prototype directly; they call Clone to get a jar of their own.
func New(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: cfg.BackendTimeout(),
			Jar:     jar,
		},
		logger: logger,
	}, nil
}

// Clone returns a client bound to the same backend with an empty cookie jar,
// isolating one login's session from every other.
func (c *Client) Clone() *Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		// cookiejar.New(nil) cannot actually fail; keep the signature clean.
		panic(err)
	}
	return &Client{
		baseURL: c.baseURL,
		http: &http.Client{
			Timeout: c.http.Timeout,
			Jar:     jar,
		},
		logger: c.logger,
	}
}

// Get issues a GET request and decodes the envelope's data into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post issues a JSON POST request and decodes the envelope's data into out.
// A nil in sends an empty body; a nil out discards the data field.
func (c *Client) Post(ctx context.Context, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, out)
}

// FormFile is one file part of a multipart POST.
type FormFile struct {
	Field    string
	Name     string
	Contents []byte
}

// PostMultipart issues a multipart/form-data POST (profile photo upload).
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FormFile, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return fmt.Errorf("failed to create form file %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Contents); err != nil {
			return fmt.Errorf("failed to write form file %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf, out)
}

// do performs the request and classifies the outcome. This is the single
// place where transport errors, HTTP statuses and the envelope are mapped
// onto the apperrors sentinels.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	u := c.baseURL.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Backend unreachable")
		return &apperrors.CustomError{
			Err:     apperrors.ErrBackendUnavailable,
			Message: "could not reach the university server",
		}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("requestId", requestID).
		Msg("Backend call")

	switch resp.StatusCode {
	case http.StatusNotFound:
		return apperrors.ErrNotFoundYet
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthenticated
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.CustomError{
			Err:     apperrors.ErrBackendUnavailable,
			Message: "connection to the university server was interrupted",
		}
	}

	var env envelope
	if len(raw) > 0 {
		// Tolerate non-envelope bodies (proxies, HTML error pages); they fall
		// through to the status-code check below with Status=false.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Status {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("request failed (%s)", resp.Status)
		}
		return apperrors.NewBackendError(msg)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}

	return nil
}
