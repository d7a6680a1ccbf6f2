//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || windows)

package internal

import "runtime"

// PlatformVersion returns a description of the operating system.
func PlatformVersion() string {
	return runtime.GOOS
}
