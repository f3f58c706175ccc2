package upgrade

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ensureDirWritable probes the installation directory with a throwaway
// file. Runs before any network transfer so a read-only install never
// costs a download. Target is the path reported in the error, normally
// the executable being replaced.
func ensureDirWritable(dir, target string) error {
	probe, err := os.CreateTemp(dir, ".ralph-write-check-*")
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return &PermissionError{Path: target}
		}
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

// binarySwapper replaces the running executable with a staged one. The
// filesystem operations are injectable so failure paths can be tested.
type binarySwapper struct {
	rename        func(oldpath, newpath string) error
	remove        func(name string) error
	isCrossDevice func(err error) bool
}

func newBinarySwapper() *binarySwapper {
	return &binarySwapper{
		rename:        os.Rename,
		remove:        os.Remove,
		isCrossDevice: isCrossDevice,
	}
}

// swap moves stagedPath into currentPath, keeping a ".old" backup beside
// the executable until the install succeeds. On any install failure the
// backup is renamed back, so currentPath always holds a runnable binary.
func (s *binarySwapper) swap(currentPath, stagedPath string) error {
	backup := currentPath + ".old"

	// A stale backup from an earlier attempt blocks the rename on some
	// platforms.
	_ = s.remove(backup)

	if err := s.rename(currentPath, backup); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return &PermissionError{Path: currentPath}
		}
		return fmt.Errorf("back up current binary: %w", err)
	}

	if err := s.rename(stagedPath, currentPath); err != nil {
		if s.isCrossDevice(err) {
			if cerr := s.installAcrossDevices(stagedPath, currentPath); cerr != nil {
				return s.rollback(backup, currentPath, cerr)
			}
		} else {
			return s.rollback(backup, currentPath, err)
		}
	}

	// The backup is harmless if this fails; a later attempt removes it.
	_ = s.remove(backup)
	return nil
}

// installAcrossDevices copies the staged binary when the temp dir and the
// installation dir sit on different volumes, then re-applies the exec bit
// the copy does not preserve.
func (s *binarySwapper) installAcrossDevices(stagedPath, currentPath string) error {
	if err := copyFile(stagedPath, currentPath); err != nil {
		return err
	}
	_ = s.remove(stagedPath)
	return ensureExecutable(currentPath)
}

// rollback restores the backup and reports the original install failure.
// A rollback failure is propagated alongside it rather than masking it.
func (s *binarySwapper) rollback(backup, currentPath string, cause error) error {
	if rerr := s.rename(backup, currentPath); rerr != nil {
		return fmt.Errorf("install new binary: %v (rollback also failed: %w)", cause, rerr)
	}
	return fmt.Errorf("install new binary: %w", cause)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
