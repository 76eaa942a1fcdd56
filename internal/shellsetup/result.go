package shellsetup

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const resultFilePrefix = "suha_result_"

// ResultFile is where the process with the given pid leaves its final
// directory for the wrapper function.
func ResultFile(pid int) string {
	return filepath.Join(os.TempDir(), resultFilePrefix+strconv.Itoa(pid)+".txt")
}

// WriteResult records dir for the shell wrapper of the current process. The
// file is owner-only because the wrapper refuses anything else.
func WriteResult(dir string) error {
	path := ResultFile(os.Getpid())
	if err := os.WriteFile(path, []byte(dir), 0o600); err != nil {
		return fmt.Errorf("cannot write result file %s: %w", path, err)
	}
	return nil
}
