package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultAPIURL  = "http://localhost:8080/api/v1"
	defaultTimeout = 15 * time.Second
)

// Client calls the shop API. The auth endpoints may live on a different base
// URL than the rest.
type Client struct {
	apiURL  string
	authURL string
	session *Session
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(apiURL, authURL string, session *Session, opts ...Option) *Client {
	if authURL == "" {
		authURL = apiURL
	}
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		apiURL:  strings.TrimRight(apiURL, "/"),
		authURL: strings.TrimRight(authURL, "/"),
		session: session,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FromEnv reads AUTOSHOP_API_URL and AUTOSHOP_AUTH_URL.
func FromEnv(session *Session, opts ...Option) *Client {
	api := os.Getenv("AUTOSHOP_API_URL")
	if api == "" {
		api = defaultAPIURL
	}
	return New(api, os.Getenv("AUTOSHOP_AUTH_URL"), session, opts...)
}

func (c *Client) Session() *Session { return c.session }

func (c *Client) get(ctx context.Context, base, path string, out any) error {
	return c.do(ctx, http.MethodGet, base+path, nil, out)
}

func (c *Client) post(ctx context.Context, base, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, base+path, in, out)
}

// do sends one JSON request and decodes the "data" member of the envelope
// into out.
func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestFailedError{Message: genericFailure, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestFailedError{StatusCode: resp.StatusCode, Message: genericFailure, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.session.Invalidate()
		}
		code, msg := messageFrom(raw)
		if msg == "" {
			msg = genericFailure
		}
		return &RequestFailedError{StatusCode: resp.StatusCode, Code: code, Message: msg}
	}

	if out == nil {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return &RequestFailedError{StatusCode: resp.StatusCode, Message: genericFailure, Err: err}
	}
	if len(env.Data) == 0 {
		return &RequestFailedError{StatusCode: resp.StatusCode, Message: genericFailure, Err: errors.New("response has no data")}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &RequestFailedError{StatusCode: resp.StatusCode, Message: genericFailure, Err: err}
	}
	return nil
}
