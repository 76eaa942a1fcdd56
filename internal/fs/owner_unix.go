//go:build unix

package fs

import (
	"os"
	"syscall"
)

func ownerOf(info os.FileInfo) Owner {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Owner{}
	}
	return Owner{
		UID:  st.Uid,
		GID:  st.Gid,
		Mode: uint32(st.Mode),
	}
}
