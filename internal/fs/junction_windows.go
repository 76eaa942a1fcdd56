//go:build windows

package fs

import "golang.org/x/sys/windows"

// isSystemJunction reports compatibility junctions such as "Application Data"
// that carry both the system and reparse-point attributes. They cannot be
// listed, so they are left out even when hidden files are shown.
func isSystemJunction(path string) bool {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	const mask = windows.FILE_ATTRIBUTE_SYSTEM | windows.FILE_ATTRIBUTE_REPARSE_POINT
	return attrs&mask == mask
}
