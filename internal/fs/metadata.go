package fs

import (
	"os"
	"time"
)

// FileKind distinguishes plain files from directories.
type FileKind int

const (
	KindFile FileKind = iota
	KindDirectory
)

// FileType describes what a node is. ChildCount is only meaningful for
// directories and is -1 when the children could not be counted.
type FileType struct {
	Kind       FileKind
	ChildCount int
}

// IsDir reports whether the node is a directory.
func (t FileType) IsDir() bool {
	return t.Kind == KindDirectory
}

// LinkType records whether the node is a symlink and where it points.
type LinkType struct {
	Symlink bool
	Target  string
}

// Owner holds the unix ownership and raw mode bits of the node itself (not
// of a symlink target). All fields are zero on platforms without them.
type Owner struct {
	UID  uint32
	GID  uint32
	Mode uint32
}

// Metadata is a snapshot of a node taken when its Entry or Directory was built.
// It is never updated in place; a reload replaces it.
type Metadata struct {
	Size        uint64
	Modified    time.Time
	Permissions os.FileMode
	FileType    FileType
	LinkType    LinkType
	Owner       Owner
}

// ReadMetadata captures metadata for path. Symlinks are followed for size,
// time, permissions and type; a dangling link falls back to the link itself.
func ReadMetadata(path string) (Metadata, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return Metadata{}, err
	}

	info := linkInfo
	isSymlink := linkInfo.Mode()&os.ModeSymlink != 0
	if isSymlink {
		if targetInfo, err := os.Stat(path); err == nil {
			info = targetInfo
		}
	}

	size := info.Size()
	if size < 0 {
		size = 0
	}

	md := Metadata{
		Size:        uint64(size),
		Modified:    info.ModTime(),
		Permissions: info.Mode().Perm(),
		FileType:    FileType{Kind: KindFile},
		Owner:       ownerOf(linkInfo),
	}

	if info.IsDir() {
		md.FileType = FileType{Kind: KindDirectory, ChildCount: countChildren(path)}
	}

	if isSymlink {
		target, _ := os.Readlink(path)
		md.LinkType = LinkType{Symlink: true, Target: target}
	}

	return md, nil
}

// countChildren reads names only, in directory order, to avoid the sort and
// per-entry lstat that os.ReadDir would do.
func countChildren(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return -1
	}
	defer func() {
		_ = f.Close()
	}()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return -1
	}
	return len(names)
}
