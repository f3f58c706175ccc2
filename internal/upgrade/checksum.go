package upgrade

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// readExpectedDigest extracts the digest from a downloaded .sha256 file.
// The digest is the first whitespace-delimited token; a trailing file name
// (sha256sum output format) is ignored.
func readExpectedDigest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read checksum file: %w", err)
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", &ChecksumParseError{Path: path}
	}
	return fields[0], nil
}

// fileSHA256 streams the file through SHA-256 and returns the lowercase
// hex digest.
func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// digestsEqual compares two hex digests, ignoring case and surrounding
// whitespace.
func digestsEqual(expected, actual string) bool {
	return strings.EqualFold(strings.TrimSpace(expected), strings.TrimSpace(actual))
}
