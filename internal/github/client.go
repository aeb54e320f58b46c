// Package github looks up the repository star count shown in the navbar.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIURL is the public GitHub REST API.
const DefaultAPIURL = "https://api.github.com"

// DefaultTimeout bounds a star lookup when no timeout is given.
const DefaultTimeout = 5 * time.Second

// Client fetches repository metadata from the GitHub REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient returns a client for baseURL with the given request timeout.
// A non-positive timeout means DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type repoResponse struct {
	StargazersCount int `json:"stargazers_count"`
}

// Stars returns the stargazer count of repo, given as "owner/name".
func (c *Client) Stars(ctx context.Context, repo string) (int, error) {
	if strings.Count(repo, "/") != 1 || strings.HasPrefix(repo, "/") || strings.HasSuffix(repo, "/") {
		return 0, fmt.Errorf("invalid repository %q: want owner/name", repo)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/repos/"+repo, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetching %s: %w", repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetching %s: unexpected status %d", repo, resp.StatusCode)
	}

	var body repoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding response for %s: %w", repo, err)
	}
	return body.StargazersCount, nil
}
