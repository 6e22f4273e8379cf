package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/pos_frontend/config"
)

// Client talks to the upstream inventory REST API. It holds no business
// state; every call is a single request/response exchange authenticated by
// the caller's session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient() *Client {
	return &Client{
		baseURL:    strings.TrimRight(config.UpstreamBaseURL(), "/"),
		httpClient: &http.Client{Timeout: config.UpstreamTimeout()},
		logger:     config.GetLogger(),
	}
}

// NewClientWith builds a client against an explicit base URL. Used by tests
// and by deployments that inject the upstream address directly.
func NewClientWith(baseURL string, httpClient *http.Client, logger *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.UpstreamTimeout()}
	}
	if logger == nil {
		logger = config.GetLogger()
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient, logger: logger}
}

// get performs an authenticated GET and returns the raw body. Callers must
// have checked the session; an unauthenticated session fails with
// ErrMissingCredential.
func (c *Client) get(ctx context.Context, sess Session, path string, query url.Values) ([]byte, error) {
	if !sess.Authenticated() {
		return nil, ErrMissingCredential
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerRejectedError{StatusCode: resp.StatusCode, Message: rejectionMessage(body)}
	}
	return body, nil
}

// postJSON performs an authenticated POST with a JSON payload.
func (c *Client) postJSON(ctx context.Context, sess Session, path string, payload any) ([]byte, error) {
	if !sess.Authenticated() {
		return nil, ErrMissingCredential
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerRejectedError{StatusCode: resp.StatusCode, Message: rejectionMessage(body)}
	}
	return body, nil
}

// rejectionMessage pulls the upstream's structured error message out of a
// failure body so it can be surfaced to the user verbatim.
func rejectionMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "request failed"
}

// skipUnauthenticated logs the short-circuit for an unauthenticated read.
// "No token" is not an error: an unauthenticated view showing no data is a
// valid, displayable state.
func (c *Client) skipUnauthenticated(funcName string) {
	c.logger.WithFields(logrus.Fields{
		"module":   "api",
		"funcName": funcName,
	}).Debug("no auth token found, skipping fetch")
}
