// Package github fetches release metadata from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultAPIBase is the public GitHub API endpoint.
const DefaultAPIBase = "https://api.github.com"

// Release is the subset of the GitHub release payload verbump uses.
type Release struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

func TokenFromEnv() string {
	if tok := strings.TrimSpace(os.Getenv("VERBUMP_GITHUB_TOKEN")); tok != "" {
		return tok
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

func UserAgent(version string) string {
	return fmt.Sprintf("verbump/%s", version)
}

// Client issues authenticated GET requests against APIBase.
type Client struct {
	APIBase   string
	Token     string
	UserAgent string
	HTTP      *http.Client
}

// NewClient returns a Client for apiBase (DefaultAPIBase when empty) using
// the token from the environment.
func NewClient(apiBase, userAgent string) *Client {
	base := strings.TrimRight(strings.TrimSpace(apiBase), "/")
	if base == "" {
		base = DefaultAPIBase
	}
	return &Client{
		APIBase:   base,
		Token:     TokenFromEnv(),
		UserAgent: userAgent,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBase+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.HTTP.Do(req)
}

// LatestRelease returns the latest published release of repo ("owner/name").
func (c *Client) LatestRelease(ctx context.Context, repo string) (*Release, error) {
	repo = strings.Trim(strings.TrimSpace(repo), "/")
	if strings.Count(repo, "/") != 1 {
		return nil, fmt.Errorf("github repo must be owner/name, got %q", repo)
	}

	resp, err := c.get(ctx, "/repos/"+repo+"/releases/latest")
	if err != nil {
		return nil, fmt.Errorf("fetch latest release of %s: %w", repo, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read latest release of %s: %w", repo, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API %d for %s: %s", resp.StatusCode, repo, strings.TrimSpace(string(body)))
	}

	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("parse latest release of %s: %w", repo, err)
	}
	return &rel, nil
}
