//go:build !windows

package upgrade

import (
	"errors"
	"syscall"
)

// isCrossDevice reports whether a rename failed because source and
// destination live on different filesystems.
func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
