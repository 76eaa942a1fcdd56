//go:build windows

package shellsetup

import (
	"os"
	"path"
	"strings"

	"golang.org/x/sys/windows"
)

// DetectParentShellName returns the executable name of the parent process.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(ppid))
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(handle)

	buffer := make([]uint16, 512)
	for {
		size := uint32(len(buffer))
		err = windows.QueryFullProcessImageName(handle, 0, &buffer[0], &size)
		if err == nil {
			image := strings.ReplaceAll(windows.UTF16ToString(buffer[:size]), "\\", "/")
			return path.Base(image)
		}
		if err != windows.ERROR_INSUFFICIENT_BUFFER || len(buffer) >= 32*1024 {
			return ""
		}
		buffer = make([]uint16, len(buffer)*2)
	}
}
