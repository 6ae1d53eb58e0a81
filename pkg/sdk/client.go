package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Client provides a high-level interface to the CityResolved backend API.
// It wraps whatever Doer it is given - usually a *Gateway so the bearer
// header and 401/403 recovery are applied uniformly - with an ergonomic
// method per backend operation.
type Client struct {
	doer    Doer
	baseURL string
	logger  *zap.Logger
}

// ClientOptions configures SDK client construction.
type ClientOptions struct {
	HTTPClient *http.Client
	Gateway    *Gateway
	Logger     *zap.Logger
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client used for backend calls. Calls
// go out without gateway semantics; useful for purely public access.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithGateway routes every call through the authenticated request gateway.
func WithGateway(gateway *Gateway) ClientOption {
	return func(opts *ClientOptions) {
		opts.Gateway = gateway
	}
}

// WithLogger enables structured debug logging of backend calls.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = logger
	}
}

// NewClient creates a new CityResolved SDK client that communicates with
// the API server at baseURL. An http.Client is created automatically when
// neither a gateway nor a client is supplied.
func NewClient(baseURL string, optFns ...ClientOption) *Client {
	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	var doer Doer
	switch {
	case opts.Gateway != nil:
		doer = opts.Gateway
	case opts.HTTPClient != nil:
		doer = opts.HTTPClient
	default:
		doer = http.DefaultClient
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// do executes one backend call: JSON request body in, JSON response body
// decoded into out (when non-nil). Non-2xx business answers become
// APIError; transport failures surface as NetworkError (wrapped here when
// running without a gateway).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("backend call", zap.String("method", method), zap.String("path", path))

	resp, err := c.doer.Do(req)
	if err != nil {
		if isTypedError(err) {
			return err
		}
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isTypedError(err error) bool {
	switch err.(type) {
	case *NetworkError, *AuthorizationError, *ProviderError:
		return true
	}
	return false
}

func apiErrorFromResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = payload.Error
		}
	}
	return apiErr
}
