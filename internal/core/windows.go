package core

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// IsElevated reports whether the current process runs with administrator
// rights. HKLM key deletion and some Program Files sweeps need elevation.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// WindowsVersion returns the major, minor, and build numbers of the running
// Windows version. Uses RtlGetNtVersionNumbers which works on all Windows
// versions without manifest requirements.
func WindowsVersion() (major, minor, build uint32) {
	major, minor, build = windows.RtlGetNtVersionNumbers()
	// RtlGetNtVersionNumbers returns build with high bits set; mask them off
	build &= 0xFFFF
	return major, minor, build
}

// WindowsVersionString returns a human-readable Windows version string,
// e.g. "Windows 11 (Build 22621)".
func WindowsVersionString() string {
	major, minor, build := WindowsVersion()

	var name string
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	case major == 6 && minor == 3:
		name = "Windows 8.1"
	case major == 6 && minor == 1:
		name = "Windows 7"
	default:
		name = fmt.Sprintf("Windows %d.%d", major, minor)
	}

	return fmt.Sprintf("%s (Build %d)", name, build)
}
