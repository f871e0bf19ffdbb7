package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Host is the external hosting collaborator: it makes a document available
// under a site name and tears it down again. Deployment mechanics live
// entirely behind this interface.
type Host interface {
	Publish(ctx context.Context, siteName, html string) (url string, err error)
	Unpublish(ctx context.Context) error
}

// Client talks to a hosting API over HTTP.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a hosting API client.
func NewClient(apiKey, endpoint string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type publishRequest struct {
	SiteName string `json:"siteName"`
	HTML     string `json:"html"`
}

type publishResponse struct {
	URL string `json:"url"`
}

// Publish uploads the document and returns the address it is served from.
func (c *Client) Publish(ctx context.Context, siteName, html string) (string, error) {
	body, err := json.Marshal(publishRequest{SiteName: siteName, HTML: html})
	if err != nil {
		return "", fmt.Errorf("marshal publish request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/sites", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("create publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send publish request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("hosting API returned %s: %s", resp.Status, string(b))
	}

	var out publishResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode publish response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("hosting API returned no url")
	}
	return out.URL, nil
}

// Unpublish removes the currently hosted document.
func (c *Client) Unpublish(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint+"/v1/sites", nil)
	if err != nil {
		return fmt.Errorf("create unpublish request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send unpublish request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("hosting API returned %s: %s", resp.Status, string(b))
	}
	return nil
}

// SimulatedHost keeps published content in memory and derives the public URL
// from the site name. Used when no hosting endpoint is configured.
type SimulatedHost struct {
	baseDomain string

	mu   sync.Mutex
	site string
	html string
}

func NewSimulatedHost(baseDomain string) *SimulatedHost {
	if baseDomain == "" {
		baseDomain = "aishomepage.dev"
	}
	return &SimulatedHost{baseDomain: baseDomain}
}

func (h *SimulatedHost) Publish(_ context.Context, siteName, html string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.site = siteName
	h.html = html
	return fmt.Sprintf("https://%s.%s", siteName, h.baseDomain), nil
}

func (h *SimulatedHost) Unpublish(context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.site = ""
	h.html = ""
	return nil
}
