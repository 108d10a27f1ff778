package modem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	connectTimeout = 30 * time.Second
	requestTimeout = 30 * time.Second
)

// Transport issues single-attempt HTTP requests against the device,
// carrying the session cookie jar on every call. Redirects are followed
// and cookies the device sets along the way are captured in the jar.
type Transport struct {
	client  *http.Client
	log     *slog.Logger
	verbose bool
}

func NewTransport(jar http.CookieJar, log *slog.Logger, verbose bool) *Transport {
	dialer := &net.Dialer{Timeout: connectTimeout}
	return &Transport{
		client: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
			Transport: &http.Transport{
				DialContext: dialer.DialContext,
			},
		},
		log:     log,
		verbose: verbose,
	}
}

// Request performs one HTTP round trip and returns the status code and
// body. There are no retries; the caller decides what a failure means.
// A transport-level error (no status code at all) is returned as-is and
// is fatal for every caller: the protocol cannot proceed without knowing
// the HTTP outcome.
func (t *Transport) Request(ctx context.Context, method, url string, headers map[string]string, body string) (int, string, error) {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return 0, "", fmt.Errorf("new request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if t.verbose {
		t.log.Debug("HTTP request", "method", method, "url", url)
		for name, values := range req.Header {
			t.log.Debug("HTTP request header", "name", name, "value", strings.Join(values, ", "))
		}
		if body != "" {
			t.log.Debug("HTTP request body", "body", body)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("read response from %s: %w", url, err)
	}

	if t.verbose {
		t.log.Debug("HTTP response", "status", resp.StatusCode, "body", string(data))
	}
	return resp.StatusCode, string(data), nil
}
