package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a session-aware JSON client for the test server.
func NewClient(serverURL string) (*Client, error) {
	jar, err := newInsecureCookieJar()
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    serverURL,
	}, nil
}

// insecureCookieJar stores Secure cookies even over plain HTTP. The test
// server listens on localhost without TLS while the session cookie is marked
// Secure, so a standard jar would silently drop it.
type insecureCookieJar struct {
	jar *cookiejar.Jar
}

func newInsecureCookieJar() (*insecureCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("new cookie jar: %w", err)
	}
	return &insecureCookieJar{jar: jar}, nil
}

func (j *insecureCookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		cookie.Secure = false
	}
	j.jar.SetCookies(u, cookies)
}

func (j *insecureCookieJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return fmt.Errorf("close response body: %w", err)
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return fmt.Errorf("close response body: %w", err)
			}
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// DoJSON sends an optional JSON body and decodes the JSON response into out
// when out is non-nil. It returns the HTTP status code.
func (c *Client) DoJSON(ctx context.Context, method, urlPath string, body, out any) (int, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, reqBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response body: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// GetJSON fetches urlPath and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, urlPath string, out any) (int, error) {
	return c.DoJSON(ctx, http.MethodGet, urlPath, nil, out)
}

// PostJSON sends body to urlPath and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, urlPath string, body, out any) (int, error) {
	return c.DoJSON(ctx, http.MethodPost, urlPath, body, out)
}

// Delete sends a DELETE request to urlPath.
func (c *Client) Delete(ctx context.Context, urlPath string) (int, error) {
	return c.DoJSON(ctx, http.MethodDelete, urlPath, nil, nil)
}

// Login logs in to the server, registering the account on first use.
func (c *Client) Login(ctx context.Context, email, name string) error {
	status, err := c.PostJSON(ctx, "/api/session", map[string]string{
		"email": email,
		"name":  name,
	}, nil)
	if err != nil {
		return fmt.Errorf("post session: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", status)
	}
	return nil
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	status, err := c.Delete(ctx, "/api/session")
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d", status)
	}
	return nil
}
