package upgrade

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Options configures an upgrade attempt.
type Options struct {
	CurrentVersion string    // version of the running binary
	Owner          string    // GitHub repository owner
	Repo           string    // GitHub repository name
	Product        string    // executable base name inside release archives
	Token          string    // optional GitHub token
	Progress       io.Writer // status lines; defaults to os.Stderr
}

// Outcome is the terminal result of an upgrade attempt.
type Outcome struct {
	Upgraded bool
	Current  *semver.Version // version running before the attempt
	Latest   *semver.Version // newest released version
}

// UpdateAvailable reports whether the latest release is strictly newer
// than the running version.
func (o *Outcome) UpdateAvailable() bool {
	return o.Latest.GreaterThan(o.Current)
}

// Upgrader runs the upgrade pipeline: check, download, verify, extract,
// swap. Each attempt is self-contained; nothing persists between runs
// except the replaced executable.
type Upgrader struct {
	opts       Options
	current    *semver.Version
	client     *ReleaseClient
	downloader *Downloader
	swapper    *binarySwapper
	progress   io.Writer

	// overridable for tests
	executable func() (string, error)
	goos       string
	goarch     string
	confirm    func(exe string) string
}

// NewUpgrader creates an upgrader for the current binary. Fails if the
// running version is not a release version (e.g. a dev build).
func NewUpgrader(opts Options) (*Upgrader, error) {
	current, err := ParseReleaseTag(opts.CurrentVersion)
	if err != nil {
		return nil, err
	}
	if opts.Product == "" {
		opts.Product = "ralph"
	}
	progress := opts.Progress
	if progress == nil {
		progress = os.Stderr
	}

	return &Upgrader{
		opts:       opts,
		current:    current,
		client:     NewReleaseClient(opts.Owner, opts.Repo, opts.CurrentVersion).WithToken(opts.Token),
		downloader: NewDownloader(progress),
		swapper:    newBinarySwapper(),
		progress:   progress,
		executable: os.Executable,
		goos:       runtime.GOOS,
		goarch:     runtime.GOARCH,
		confirm:    confirmVersion,
	}, nil
}

// Check queries the registry and reports the latest released version
// without touching the installation.
func (u *Upgrader) Check() (*Outcome, error) {
	release, err := u.client.LatestRelease()
	if err != nil {
		return nil, err
	}
	latest, err := ParseReleaseTag(release.TagName)
	if err != nil {
		return nil, err
	}
	return &Outcome{Current: u.current, Latest: latest}, nil
}

// Run performs one upgrade attempt. A failure at any step leaves the
// currently installed executable in place.
func (u *Upgrader) Run() (*Outcome, error) {
	exe, err := u.executable()
	if err != nil {
		return nil, fmt.Errorf("locate current executable: %w", err)
	}
	installDir := filepath.Dir(exe)

	if err := ensureDirWritable(installDir, exe); err != nil {
		return nil, err
	}

	fmt.Fprintln(u.progress, "Checking for updates…")
	release, err := u.client.LatestRelease()
	if err != nil {
		return nil, err
	}
	latest, err := ParseReleaseTag(release.TagName)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(u.progress, "Current version: v%s\n", u.current)
	fmt.Fprintf(u.progress, "Latest version:  v%s\n", latest)

	if !latest.GreaterThan(u.current) {
		return &Outcome{Current: u.current, Latest: latest}, nil
	}

	target, err := ResolveTarget(u.goos, u.goarch)
	if err != nil {
		return nil, err
	}

	archiveName := target.ArchiveName(u.opts.Product)
	checksumName := target.ChecksumName(u.opts.Product)

	archiveAsset, err := release.FindAsset(archiveName)
	if err != nil {
		return nil, err
	}
	checksumAsset, err := release.FindAsset(checksumName)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(u.progress, "Downloading: %s (%d bytes)\n", archiveName, archiveAsset.Size)

	tmpDir, err := os.MkdirTemp("", "ralph-upgrade-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	checksumPath := filepath.Join(tmpDir, checksumName)
	archivePath := filepath.Join(tmpDir, archiveName)

	// Checksum file first, then the archive.
	if err := u.downloader.Download(checksumAsset.BrowserDownloadURL, checksumPath); err != nil {
		return nil, err
	}
	if err := u.downloader.Download(archiveAsset.BrowserDownloadURL, archivePath); err != nil {
		return nil, err
	}

	expected, err := readExpectedDigest(checksumPath)
	if err != nil {
		return nil, err
	}
	actual, err := fileSHA256(archivePath)
	if err != nil {
		return nil, err
	}
	if !digestsEqual(expected, actual) {
		return nil, &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	fmt.Fprintln(u.progress, "Verified SHA256 checksum.")

	execName := execFileName(u.opts.Product, u.goos)
	stagedPath := filepath.Join(tmpDir, execName)
	if err := extractExecutable(archivePath, target.Ext, execName, stagedPath); err != nil {
		return nil, err
	}
	if err := ensureExecutable(stagedPath); err != nil {
		return nil, fmt.Errorf("mark extracted binary executable: %w", err)
	}

	fmt.Fprintf(u.progress, "Replacing current binary: %s\n", exe)
	if err := u.swapper.swap(exe, stagedPath); err != nil {
		return nil, err
	}

	// Best effort; the swap itself already succeeded.
	if out := u.confirm(exe); out != "" {
		fmt.Fprintf(u.progress, "Now running: %s\n", out)
	}

	return &Outcome{Upgraded: true, Current: u.current, Latest: latest}, nil
}

// confirmVersion runs the freshly installed binary once to capture the
// version it reports about itself. Failures are swallowed.
func confirmVersion(exe string) string {
	out, err := exec.Command(exe, "--version").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// PermissionSuggestions renders the remediation steps shown when the
// installation path is not writable.
func PermissionSuggestions(path string) string {
	return strings.Join([]string{
		fmt.Sprintf("Cannot write to %s (permission denied)", path),
		"",
		"Solutions:",
		"1. Run with elevated permissions: sudo ralph upgrade",
		"2. Reinstall to a user-writable location (e.g. ~/.local/bin)",
		"3. Download manually from GitHub Releases and replace the binary",
		"",
	}, "\n")
}
