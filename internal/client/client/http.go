package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/postboard/internal/api"
	"github.com/dmitrijs2005/postboard/internal/common"
)

// TokenSource returns the bearer token to attach, or "" for none.
type TokenSource func() string

// tokenTransport adds the session token to outgoing requests.
type tokenTransport struct {
	base   http.RoundTripper
	source TokenSource
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(common.AuthorizationHeaderName) != "" {
		return t.base.RoundTrip(req)
	}
	token := t.source()
	if token == "" {
		return t.base.RoundTrip(req)
	}

	r := req.Clone(req.Context())
	r.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	return t.base.RoundTrip(r)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the API at baseURL. source is consulted
// on every request; it is the only place tokens enter the transport.
func NewHTTPClient(baseURL string, timeout time.Duration, source TokenSource) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q: scheme must be http or https", baseURL)
	}
	if source == nil {
		source = func() string { return "" }
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &tokenTransport{base: http.DefaultTransport, source: source},
		},
	}, nil
}

func (c *HTTPClient) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	var out api.AuthResponse
	if err := c.do(ctx, http.MethodPost, api.PathRegister, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var out api.AuthResponse
	if err := c.do(ctx, http.MethodPost, api.PathLogin, "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Profile(ctx context.Context, token string) (*api.Profile, error) {
	var out api.Profile
	if err := c.do(ctx, http.MethodGet, api.PathProfile, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]api.Post, error) {
	var out []api.Post
	if err := c.do(ctx, http.MethodGet, api.PathPosts, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, text string) (*api.Post, error) {
	var out api.Post
	if err := c.do(ctx, http.MethodPost, api.PathPosts, "", api.PostRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePost(ctx context.Context, id, text string) (*api.Post, error) {
	var out api.Post
	if err := c.do(ctx, http.MethodPut, postPath(id, ""), "", api.PostRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, postPath(id, ""), "", nil, nil)
}

func (c *HTTPClient) ToggleLike(ctx context.Context, id string) (*api.Post, error) {
	var out api.Post
	if err := c.do(ctx, http.MethodPut, postPath(id, "/like"), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RequestImageUpload(ctx context.Context, id string) (*api.ImageUpload, error) {
	var out api.ImageUpload
	if err := c.do(ctx, http.MethodPost, postPath(id, "/image"), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ImageURL(ctx context.Context, id string) (string, error) {
	var out api.ImageLink
	if err := c.do(ctx, http.MethodGet, postPath(id, "/image"), "", nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var out api.Health
	return c.do(ctx, http.MethodGet, api.PathHealth, "", nil, &out)
}

func postPath(id, suffix string) string {
	return api.PathPosts + "/" + url.PathEscape(id) + suffix
}

// do sends a JSON request and decodes a JSON response into out (if not
// nil). A non-empty token overrides the session token for this call.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return mapStatus(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapStatus converts an error response into a sentinel carrying the
// server's message.
func mapStatus(resp *http.Response) error {
	var msg api.Message
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&msg)
	if msg.Message == "" {
		msg.Message = resp.Status
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrorValidation
	case http.StatusUnauthorized:
		sentinel = common.ErrorUnauthorized
	case http.StatusForbidden:
		sentinel = common.ErrorForbidden
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
	case http.StatusServiceUnavailable:
		sentinel = common.ErrorUnavailable
	default:
		sentinel = common.ErrorInternal
	}
	return fmt.Errorf("%w: %s", sentinel, msg.Message)
}
