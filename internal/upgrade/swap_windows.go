//go:build windows

package upgrade

import (
	"errors"
	"syscall"
)

// errNotSameDevice is ERROR_NOT_SAME_DEVICE, reported by MoveFile for a
// cross-volume rename.
const errNotSameDevice = syscall.Errno(0x11)

func isCrossDevice(err error) bool {
	return errors.Is(err, errNotSameDevice)
}
