package upgrade

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLatestRelease_Success(t *testing.T) {
	var gotAccept, gotUA, gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")

		if r.URL.Path != "/repos/lyonbot/ralph-cli/releases/latest" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"tag_name": "ralph-v1.0.0",
			"assets": [
				{"name": "ralph-x86_64-unknown-linux-gnu.tar.gz", "browser_download_url": "https://example.com/a", "size": 1234},
				{"name": "ralph-x86_64-unknown-linux-gnu.tar.gz.sha256", "browser_download_url": "https://example.com/b", "size": 90}
			]
		}`))
	}))
	defer server.Close()

	client := NewReleaseClient("lyonbot", "ralph-cli", "0.9.0").WithToken("tok123")
	client.baseURL = server.URL

	release, err := client.LatestRelease()
	if err != nil {
		t.Fatalf("LatestRelease() error = %v", err)
	}

	if release.TagName != "ralph-v1.0.0" {
		t.Errorf("TagName = %s, want ralph-v1.0.0", release.TagName)
	}
	if len(release.Assets) != 2 {
		t.Fatalf("len(Assets) = %d, want 2", len(release.Assets))
	}
	if release.Assets[0].Size != 1234 {
		t.Errorf("Assets[0].Size = %d, want 1234", release.Assets[0].Size)
	}

	if gotAccept != "application/vnd.github+json" {
		t.Errorf("Accept = %s, want application/vnd.github+json", gotAccept)
	}
	if gotUA != "ralph/0.9.0" {
		t.Errorf("User-Agent = %s, want ralph/0.9.0", gotUA)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %s, want Bearer tok123", gotAuth)
	}
}

func TestLatestRelease_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewReleaseClient("lyonbot", "ralph-cli", "0.9.0")
	client.baseURL = server.URL

	_, err := client.LatestRelease()
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("LatestRelease() error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if apiErr.Message != "boom" {
		t.Errorf("Message = %q, want boom", apiErr.Message)
	}
}

func TestLatestRelease_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ratelimit-remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewReleaseClient("lyonbot", "ralph-cli", "0.9.0")
	client.baseURL = server.URL

	_, err := client.LatestRelease()
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("LatestRelease() error = %v, want *RateLimitError", err)
	}
}

func TestLatestRelease_ForbiddenWithQuotaLeft(t *testing.T) {
	// A 403 with quota remaining is an ordinary API error, not rate limiting.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ratelimit-remaining", "42")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewReleaseClient("lyonbot", "ralph-cli", "0.9.0")
	client.baseURL = server.URL

	_, err := client.LatestRelease()
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("LatestRelease() error = %v, want *APIError", err)
	}
}

func TestLatestRelease_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := NewReleaseClient("lyonbot", "ralph-cli", "0.9.0")
	client.baseURL = server.URL

	_, err := client.LatestRelease()
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("LatestRelease() error = %v, want *APIError", err)
	}
}

func TestLatestRelease_TransportError(t *testing.T) {
	client := NewReleaseClient("lyonbot", "ralph-cli", "0.9.0")
	client.baseURL = "http://127.0.0.1:0"

	_, err := client.LatestRelease()
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("LatestRelease() error = %v, want *NetworkError", err)
	}
}

func TestFindAsset(t *testing.T) {
	release := &Release{
		TagName: "v1.0.0",
		Assets: []Asset{
			{Name: "ralph-aarch64-apple-darwin.tar.gz"},
			{Name: "ralph-aarch64-apple-darwin.tar.gz.sha256"},
		},
	}

	asset, err := release.FindAsset("ralph-aarch64-apple-darwin.tar.gz.sha256")
	if err != nil {
		t.Fatalf("FindAsset() error = %v", err)
	}
	if asset.Name != "ralph-aarch64-apple-darwin.tar.gz.sha256" {
		t.Errorf("Name = %s", asset.Name)
	}

	_, err = release.FindAsset("ralph-x86_64-pc-windows-msvc.zip")
	var notFound *AssetNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("FindAsset() error = %v, want *AssetNotFoundError", err)
	}
	if notFound.Asset != "ralph-x86_64-pc-windows-msvc.zip" {
		t.Errorf("AssetNotFoundError.Asset = %s", notFound.Asset)
	}
}
