package fs

import "strings"

// Nerd Font glyphs.
const (
	defaultDirIcon  = ""
	defaultFileIcon = ""
)

var dirIconsByName = map[string]string{
	".config":      "",
	".git":         "",
	".github":      "",
	"Desktop":      "",
	"Documents":    "",
	"Downloads":    "",
	"Music":        "",
	"Pictures":     "",
	"Videos":       "",
	"node_modules": "",
}

var fileIconsByName = map[string]string{
	".bashrc":            "",
	".gitignore":         "",
	".gitmodules":        "",
	".zshrc":             "",
	"Cargo.lock":         "",
	"Cargo.toml":         "",
	"Dockerfile":         "",
	"LICENSE":            "",
	"Makefile":           "",
	"go.mod":             "",
	"go.sum":             "",
	"package.json":       "",
	"docker-compose.yml": "",
}

var fileIconsByExtension = map[string]string{
	"7z":   "",
	"bash": "",
	"c":    "",
	"conf": "",
	"cpp":  "",
	"css":  "",
	"csv":  "",
	"gif":  "",
	"go":   "",
	"gz":   "",
	"h":    "",
	"html": "",
	"ini":  "",
	"java": "",
	"jpeg": "",
	"jpg":  "",
	"js":   "",
	"json": "",
	"lock": "",
	"log":  "",
	"lua":  "",
	"md":   "",
	"mp3":  "",
	"mp4":  "",
	"pdf":  "",
	"png":  "",
	"py":   "",
	"rb":   "",
	"rs":   "",
	"sh":   "",
	"sql":  "",
	"svg":  "",
	"tar":  "",
	"toml": "",
	"ts":   "",
	"txt":  "",
	"vim":  "",
	"xml":  "",
	"yaml": "",
	"yml":  "",
	"zip":  "",
}

// iconFor picks a glyph by exact name first, then by extension.
func iconFor(name string, md Metadata) string {
	if md.FileType.IsDir() {
		if icon, ok := dirIconsByName[name]; ok {
			return icon
		}
		return defaultDirIcon
	}

	if icon, ok := fileIconsByName[name]; ok {
		return icon
	}

	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		if icon, ok := fileIconsByExtension[strings.ToLower(name[i+1:])]; ok {
			return icon
		}
	}
	return defaultFileIcon
}
