package internal

import (
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// PlatformVersion returns a description of the operating system and its
// version, for display by command-line tools.
func PlatformVersion() string {
	v := windows.RtlGetVersion()
	s := fmt.Sprintf("Windows %d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return s
	}
	defer k.Close()
	if name, _, err := k.GetStringValue("ProductName"); err == nil {
		s += " (" + name + ")"
	}
	return s
}
