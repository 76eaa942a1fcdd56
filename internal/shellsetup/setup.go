package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// ParentShellFunc reports the name or path of the shell that launched us.
type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides os.Executable in the generated snippet.
	Executable string
}

// PrintSetup writes the shell integration snippet for shellOverride, or for
// the detected shell when shellOverride is empty.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := canonicalShellName(normalizeShellName(shellOverride))
	if shell == "" {
		shell = detectShell(parent)
	}

	exe := cfg.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			exe = "suha"
		}
	}

	_, err := io.WriteString(w, Script(shell, exe))
	return err
}

// Script returns a `suha` wrapper function for shell. Run without
// arguments, the wrapper starts the browser and then changes into the
// directory it was showing on exit, read from ResultFile.
func Script(shell, exe string) string {
	quoted := strconv.Quote(exe)

	switch shell {
	case "fish":
		return fmt.Sprintf(`function suha
    if test (count $argv) -gt 0
        command %[1]s $argv
        return $status
    end

    command %[1]s &
    set suha_pid $last_pid
    wait $suha_pid

    set tmp $TMPDIR
    test -z "$tmp"; and set tmp /tmp
    set result_file "$tmp/%[2]s$suha_pid.txt"
    if test -f "$result_file" -a ! -L "$result_file" -a -O "$result_file"
        set dest (cat "$result_file" 2>/dev/null)
        if test -d "$dest" 2>/dev/null
            builtin cd "$dest"
        end
    end
    rm -f "$result_file" 2>/dev/null
end
`, quoted, resultFilePrefix)
	case "pwsh":
		return fmt.Sprintf(`function suha {
    param([Parameter(ValueFromRemainingArguments=$true)][string[]]$Args)
    if ($Args.Count -gt 0) {
        & %[1]s @Args
        return
    }

    $process = Start-Process -FilePath %[1]s -NoNewWindow -PassThru
    $process.WaitForExit()

    $resultFile = Join-Path $env:TEMP "%[2]s$($process.Id).txt"
    try {
        if (Test-Path $resultFile -PathType Leaf) {
            $dest = (Get-Content $resultFile -Raw -ErrorAction SilentlyContinue).Trim()
            if (-not [string]::IsNullOrEmpty($dest) -and (Test-Path $dest -PathType Container)) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $resultFile -ErrorAction SilentlyContinue
    }
}
`, quoted, resultFilePrefix)
	default:
		return fmt.Sprintf(`suha() {
    if [ "$#" -gt 0 ]; then
        command %[1]s "$@"
        return $?
    fi

    command %[1]s &
    suha_pid=$!
    wait $suha_pid

    result_file="${TMPDIR:-/tmp}/%[2]s$suha_pid.txt"
    if [ -f "$result_file" ] && [ ! -L "$result_file" ] && [ -O "$result_file" ]; then
        dest=$(cat "$result_file" 2>/dev/null)
        rm -f "$result_file"
        if [ -d "$dest" ] 2>/dev/null; then
            cd "$dest"
        fi
    else
        rm -f "$result_file" 2>/dev/null
    fi
}
`, quoted, resultFilePrefix)
	}
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		return "pwsh"
	}
	return "bash"
}

// canonicalShellName folds aliases onto the three snippet families.
func canonicalShellName(name string) string {
	switch name {
	case "powershell", "pwsh":
		return "pwsh"
	case "bash", "zsh", "sh", "ksh", "dash":
		return "bash"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = extractExecutable(strings.TrimSpace(value))
	if value == "" {
		return ""
	}

	value = strings.ReplaceAll(strings.Trim(value, `"'`), "\\", "/")
	base := strings.ToLower(path.Base(value))
	base = strings.TrimPrefix(base, "-") // login shells: "-zsh"
	return strings.TrimSpace(strings.TrimSuffix(base, ".exe"))
}

func extractExecutable(value string) string {
	for _, quote := range []string{`"`, `'`} {
		if rest, ok := strings.CutPrefix(value, quote); ok {
			if end := strings.Index(rest, quote); end >= 0 {
				return rest[:end]
			}
			return rest
		}
	}
	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}
	return value
}
