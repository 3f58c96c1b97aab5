// Package client talks to the remote generation service and turns a
// successful answer into a snapcode.CodeBundle.
package client

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

	"aiupstart.com/snapcode"
	"aiupstart.com/snapcode/internal/model"
	"aiupstart.com/snapcode/internal/utils"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// Generator produces a CodeBundle from a UI description.
type Generator interface {
	Generate(ctx context.Context, description string) (snapcode.CodeBundle, error)
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	segmenter  snapcode.Segmenter
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSegmenter replaces the default RegexSegmenter.
func WithSegmenter(s snapcode.Segmenter) Option {
	return func(c *Client) { c.segmenter = s }
}

// New returns a Client posting to <baseURL>/generate.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/generate",
		httpClient: &http.Client{Timeout: timeout},
		segmenter:  snapcode.RegexSegmenter{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint is the URL requests are sent to.
func (c *Client) Endpoint() string { return c.endpoint }

// Generate sends description to the service and segments the returned blob.
// description is expected to be non-empty and already trimmed. No retries are
// made; on failure the error is a *GenerateError and no bundle is returned.
func (c *Client) Generate(ctx context.Context, description string) (snapcode.CodeBundle, error) {
	start := time.Now()
	raw, err := c.fetch(ctx, description)
	if err != nil {
		utils.Logger.Debug().Err(err).Str("module", "client").Str("endpoint", c.endpoint).Msg("Generation request failed")
		return snapcode.CodeBundle{}, &GenerateError{Err: err}
	}
	utils.Logger.Debug().Str("module", "client").
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(raw)).
		Msg("Generation response received")
	return c.segmenter.Segment(raw), nil
}

func (c *Client) fetch(ctx context.Context, description string) (string, error) {
	body, err := json.Marshal(model.GenerateRequest{Description: description})
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("encoding request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Status: statusIfFailed(resp.StatusCode), Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{Status: resp.StatusCode, Detail: errorDetail(data)}
	}

	var out model.GenerateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return "", &FormatError{}
		}
		return "", &TransportError{Err: fmt.Errorf("malformed response body: %w", err)}
	}
	if out.Code == nil || *out.Code == "" {
		return "", &FormatError{}
	}
	return *out.Code, nil
}

func statusIfFailed(status int) int {
	if status < 200 || status > 299 {
		return status
	}
	return 0
}

// errorDetail pulls the service's "detail" message out of an error body.
func errorDetail(data []byte) string {
	var e model.ErrorResponse
	if err := json.Unmarshal(data, &e); err != nil {
		return ""
	}
	return e.Detail
}
