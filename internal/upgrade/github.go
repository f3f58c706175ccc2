package upgrade

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

// metadataTimeout bounds the releases/latest request. Asset downloads are
// not subject to it; they run until the transfer completes.
const metadataTimeout = 60 * time.Second

// Release is the subset of a GitHub release this tool consumes.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               uint64 `json:"size"`
}

// FindAsset returns the asset with the given name.
func (r *Release) FindAsset(name string) (*Asset, error) {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i], nil
		}
	}
	return nil, &AssetNotFoundError{Asset: name}
}

// ReleaseClient queries the GitHub releases API.
type ReleaseClient struct {
	owner     string
	repo      string
	token     string // optional, avoids anonymous rate limits
	userAgent string
	client    *http.Client
	baseURL   string // overridable for tests
}

// NewReleaseClient creates a client for the given repository. The tool's
// own version is embedded in the User-Agent header.
func NewReleaseClient(owner, repo, version string) *ReleaseClient {
	return &ReleaseClient{
		owner:     owner,
		repo:      repo,
		userAgent: "ralph/" + version,
		client:    &http.Client{Timeout: metadataTimeout},
		baseURL:   defaultBaseURL,
	}
}

// WithToken sets an optional GitHub token for authentication.
func (c *ReleaseClient) WithToken(token string) *ReleaseClient {
	c.token = token
	return c
}

// LatestRelease fetches metadata for the most recent published release.
func (c *ReleaseClient) LatestRelease() (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if resp.StatusCode == http.StatusForbidden && resp.Header.Get("x-ratelimit-remaining") == "0" {
			return nil, &RateLimitError{}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, &APIError{Message: "failed to decode response: " + err.Error()}
	}

	return &release, nil
}
