//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package internal

import (
	"bytes"
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// PlatformVersion returns a description of the operating system and its
// version, for display by command-line tools.
func PlatformVersion() string {
	var uname unix.Utsname
	if unix.Uname(&uname) != nil {
		// If uname failed, we don't have anything else to try.
		return runtime.GOOS
	}
	s, r := uname.Sysname[:], uname.Release[:]
	return fmt.Sprintf("%s %s", bytes.Trim(s, "\x00"), bytes.Trim(r, "\x00"))
}
