package upgrade

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

const downloadChunkSize = 64 * 1024

// Downloader streams release assets to local files.
type Downloader struct {
	client   *http.Client
	progress io.Writer
}

// NewDownloader creates a downloader that writes progress lines to the
// given writer. No timeout is set on the client; a download runs until the
// transfer completes.
func NewDownloader(progress io.Writer) *Downloader {
	return &Downloader{
		client:   &http.Client{},
		progress: progress,
	}
}

// Download streams the response body for url into dst. The destination is
// fully written and closed before Download returns nil. No retries are
// attempted; callers retry the whole upgrade instead.
func (d *Downloader) Download(url, dst string) error {
	resp, err := d.client.Get(url)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return &NetworkError{URL: url, Status: resp.StatusCode}
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	total := resp.ContentLength
	var written int64
	buf := make([]byte, downloadChunkSize)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				_ = out.Close()
				return fmt.Errorf("write %s: %w", dst, werr)
			}
			written += int64(n)
			if total > 0 {
				fmt.Fprintf(d.progress, "\rDownloaded %d/%d bytes…", written, total)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			_ = out.Close()
			return fmt.Errorf("read response body: %w", rerr)
		}
	}
	if total > 0 {
		fmt.Fprintln(d.progress)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}
