package upgrade

import "fmt"

// UnsupportedPlatformError indicates no release artifact exists for the
// running OS/architecture combination.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s %s", e.OS, e.Arch)
}

// NetworkError indicates a transport failure or a non-success HTTP status
// while fetching release metadata or assets.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	return fmt.Sprintf("download failed (HTTP %d): %s", e.Status, e.URL)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError indicates the GitHub API answered with an error status or a
// response that could not be interpreted.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GitHub API error: request failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error: %s", e.Message)
}

// RateLimitError indicates the GitHub API rejected the request because the
// caller has no remaining rate-limit quota.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "GitHub rate limit exceeded. Please try again in an hour."
}

// VersionParseError indicates a release tag that matches no known tagging
// convention.
type VersionParseError struct {
	Tag string
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("failed to parse version tag: %s", e.Tag)
}

// AssetNotFoundError indicates the release carries no asset with the name
// expected for this platform.
type AssetNotFoundError struct {
	Asset string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("release asset not found: %s", e.Asset)
}

// ChecksumParseError indicates the downloaded digest file was empty or
// malformed. Verification is never skipped on this error.
type ChecksumParseError struct {
	Path string
}

func (e *ChecksumParseError) Error() string {
	return fmt.Sprintf("failed to parse checksum file: %s", e.Path)
}

// ChecksumMismatchError indicates the downloaded archive's digest disagrees
// with the published one.
type ChecksumMismatchError struct {
	Expected string
	Actual   string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("download verification failed (expected %s, got %s)", e.Expected, e.Actual)
}

// PermissionError indicates the installation path is not writable by the
// current user. This is the only error the CLI pairs with a remediation
// message.
type PermissionError struct {
	Path string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("cannot write to installation path: %s (permission denied)", e.Path)
}
