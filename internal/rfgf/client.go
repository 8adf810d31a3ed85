package rfgf

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultURL is the registry query endpoint.
const DefaultURL = "https://bi.rfgf.ru/corelogic/api/query"

// Client posts saved queries to the registry.
type Client struct {
	HTTP *http.Client
	URL  string
}

// NewClient returns a client for url. The registry certificate chain is
// not always verifiable, insecure disables verification.
func NewClient(url string, timeout time.Duration, insecure bool) *Client {
	if url == "" {
		url = DefaultURL
	}

	transport := &http.Transport{
		TLSNextProto: make(map[string]func(string, *tls.Conn) http.RoundTripper),
	}
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Client{
		HTTP: &http.Client{Transport: transport, Timeout: timeout},
		URL:  url,
	}
}

// Query posts payload (a JSON query as copied from the registry web page)
// and returns the raw JSON response.
func (c *Client) Query(ctx context.Context, payload []byte) ([]byte, error) {
	if !json.Valid(payload) {
		return nil, fmt.Errorf("query payload is not valid JSON")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Authorization", "Bearer NoAuth")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("DNT", "1")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	return body, nil
}

// Download posts the query stored at requestPath and writes the response
// to resultPath.
func (c *Client) Download(ctx context.Context, requestPath, resultPath string) error {
	payload, err := os.ReadFile(requestPath)
	if err != nil {
		return err
	}

	start := time.Now()
	body, err := c.Query(ctx, payload)
	if err != nil {
		return fmt.Errorf("query %s: %w", c.URL, err)
	}

	log.Info().
		Str("url", c.URL).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("Registry export downloaded")

	if dir := filepath.Dir(resultPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(resultPath, body, 0644)
}
