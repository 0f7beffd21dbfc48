package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Client dispatches REST calls against the rental platform API with the
// bearer token attached and 401 recovery handled by its Transport.
type Client struct {
	baseURL    string
	store      TokenStore
	httpClient *http.Client
	logger     Logger
}

// ClientOption customizes client construction.
type ClientOption func(*Client)

// WithClientLogger overrides the logger used by the client and its transport.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPTimeout bounds every request the client issues.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient builds a client rooted at the configured API base URL. The
// navigator receives the login route when a token refresh fails
// unrecoverably.
func NewClient(cfg Config, store TokenStore, navigator Navigator, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		store:   store,
		logger:  defLogger{},
	}

	c.httpClient = &http.Client{
		Timeout: cfg.GetRequestTimeout(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient.Transport = &Transport{
		Store:      store,
		Refresh:    c.RefreshTokens,
		Navigator:  navigator,
		LoginRoute: cfg.GetLoginRoute(),
		Logger:     c.logger,
	}

	return c
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// RefreshTokens calls the refresh endpoint directly, bypassing the
// interceptor so a failing refresh can never recurse into itself.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode refresh request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(body))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build refresh request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, wrapNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read refresh response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, data)
	}

	pair := &TokenPair{}
	if err := json.Unmarshal(data, pair); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode refresh response")
	}

	if pair.AccessToken == "" {
		return nil, goerrors.New("refresh endpoint returned no access token", goerrors.CategoryAuth)
	}

	return pair, nil
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body")
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body), out)
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body")
	}
	return c.do(ctx, http.MethodPut, path, "application/json", bytes.NewReader(body), out)
}

// PostForm issues a POST with a form-encoded body, the shape the login
// endpoint expects.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), out)
}

// PutMultipart issues a PUT with multipart form fields plus an optional file
// part, used by profile updates carrying a photo.
func (c *Client) PutMultipart(ctx context.Context, path string, fields map[string]string, fileField, fileName string, file io.Reader, out any) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode multipart field")
		}
	}

	if file != nil {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create multipart file part")
		}
		if _, err := io.Copy(part, file); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to copy multipart file")
		}
	}

	if err := writer.Close(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to finish multipart body")
	}

	return c.do(ctx, http.MethodPut, path, writer.FormDataContentType(), bytes.NewReader(buf.Bytes()), out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode response body")
	}

	return nil
}

func wrapNetworkError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryOperation,
		"Unable to connect to server. Please check your internet connection.").
		WithTextCode(TextCodeNetworkFailure)
}
