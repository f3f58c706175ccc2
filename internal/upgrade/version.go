// Package upgrade implements self-upgrade from GitHub releases: version
// check, download, checksum verification, extraction, and atomic binary
// replacement with rollback.
package upgrade

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// productTagPrefix is the release tag convention used by older releases
// ("ralph-v0.2.0"); newer releases use a bare "v" prefix or none at all.
const productTagPrefix = "ralph-v"

// ParseReleaseTag normalizes a release tag to a semantic version.
// Accepts "ralph-v1.2.3", "v1.2.3", and "1.2.3".
func ParseReleaseTag(tag string) (*semver.Version, error) {
	s := strings.TrimSpace(tag)
	if rest, ok := strings.CutPrefix(s, productTagPrefix); ok {
		s = rest
	} else if rest, ok := strings.CutPrefix(s, "v"); ok {
		s = rest
	}

	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, &VersionParseError{Tag: tag}
	}
	return v, nil
}
