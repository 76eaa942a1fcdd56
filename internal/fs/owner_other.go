//go:build !unix

package fs

import "os"

// ownerOf is a no-op on platforms without unix ownership.
func ownerOf(_ os.FileInfo) Owner {
	return Owner{}
}
