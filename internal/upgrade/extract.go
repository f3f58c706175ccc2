package upgrade

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// extractExecutable unpacks exactly the entry named execName from the
// archive into outPath. An unknown archive extension is a programming
// error, not bad input, and panics.
func extractExecutable(archivePath string, ext ArchiveExt, execName, outPath string) error {
	switch ext {
	case ExtTarGz:
		return extractFromTarGz(archivePath, execName, outPath)
	case ExtZip:
		return extractFromZip(archivePath, execName, outPath)
	}
	panic(fmt.Sprintf("unknown archive extension: %q", ext))
}

func extractFromTarGz(archivePath, execName, outPath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read archive entry: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if filepath.Base(hdr.Name) != execName {
			continue
		}
		return writeEntry(outPath, tr)
	}

	return &APIError{Message: fmt.Sprintf("downloaded archive did not contain %q", execName)}
}

func extractFromZip(archivePath, execName, outPath string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open zip archive: %w", err)
	}
	defer func() { _ = zr.Close() }()

	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if !strings.EqualFold(path.Base(entry.Name), execName) {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("open zip entry %s: %w", entry.Name, err)
		}
		werr := writeEntry(outPath, rc)
		_ = rc.Close()
		return werr
	}

	return &APIError{Message: fmt.Sprintf("downloaded archive did not contain %q", execName)}
}

func writeEntry(outPath string, r io.Reader) error {
	out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// ensureExecutable sets the executable bits on the extracted binary.
// Archive extraction does not guarantee they survive. No-op on Windows,
// which has no such permission model.
func ensureExecutable(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, 0o755)
}
