package upgrade

import "fmt"

// ArchiveExt identifies the archive format a release artifact ships in.
type ArchiveExt string

const (
	ExtTarGz ArchiveExt = "tar.gz"
	ExtZip   ArchiveExt = "zip"
)

// Target names the release artifact variant for one platform.
type Target struct {
	Triple string
	Ext    ArchiveExt
}

// ResolveTarget maps a GOOS/GOARCH pair to the target triple release
// artifacts are published under.
func ResolveTarget(goos, goarch string) (Target, error) {
	switch goos + "/" + goarch {
	case "darwin/amd64":
		return Target{Triple: "x86_64-apple-darwin", Ext: ExtTarGz}, nil
	case "darwin/arm64":
		return Target{Triple: "aarch64-apple-darwin", Ext: ExtTarGz}, nil
	case "linux/amd64":
		return Target{Triple: "x86_64-unknown-linux-gnu", Ext: ExtTarGz}, nil
	case "linux/arm64":
		return Target{Triple: "aarch64-unknown-linux-gnu", Ext: ExtTarGz}, nil
	case "windows/amd64":
		return Target{Triple: "x86_64-pc-windows-msvc", Ext: ExtZip}, nil
	}
	return Target{}, &UnsupportedPlatformError{OS: goos, Arch: goarch}
}

// ArchiveName returns the release asset name for this target,
// e.g. "ralph-aarch64-apple-darwin.tar.gz".
func (t Target) ArchiveName(product string) string {
	return fmt.Sprintf("%s-%s.%s", product, t.Triple, t.Ext)
}

// ChecksumName returns the name of the digest file published next to the
// archive.
func (t Target) ChecksumName(product string) string {
	return t.ArchiveName(product) + ".sha256"
}

// execFileName returns the executable file name expected inside the
// archive for the given platform.
func execFileName(product, goos string) string {
	if goos == "windows" {
		return product + ".exe"
	}
	return product
}
