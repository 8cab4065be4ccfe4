package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"
)

// Client is an HTTP client with its own cookie jar, so each Client acts as
// a separate browser.
type Client struct {
	t    *testing.T
	ts   *TestServer
	HTTP *http.Client
}

// NewClient returns a client that keeps cookies and does not follow
// redirects.
func (ts *TestServer) NewClient(t *testing.T) *Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}

	return &Client{
		t:  t,
		ts: ts,
		HTTP: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Do sends a request to path on the test server. A non-nil body is sent as
// JSON. The response body is closed when the test ends.
func (c *Client) Do(method, path string, body any) *http.Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, c.ts.Server.URL+path, reader)
	if err != nil {
		c.t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	c.t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func (c *Client) Get(path string) *http.Response {
	c.t.Helper()
	return c.Do(http.MethodGet, path, nil)
}

func (c *Client) Post(path string, body any) *http.Response {
	c.t.Helper()
	return c.Do(http.MethodPost, path, body)
}

func (c *Client) Put(path string, body any) *http.Response {
	c.t.Helper()
	return c.Do(http.MethodPut, path, body)
}

func (c *Client) Delete(path string) *http.Response {
	c.t.Helper()
	return c.Do(http.MethodDelete, path, nil)
}

// Cookie returns the value the jar holds for name, or "".
func (c *Client) Cookie(name string) string {
	u, _ := url.Parse(c.ts.Server.URL)
	for _, cookie := range c.HTTP.Jar.Cookies(u) {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}
