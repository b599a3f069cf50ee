// Package atomicfile replaces a file's content crash-safely: after
// WriteFile returns, the destination holds either its old content or the
// entire new content, never a partial write. The guarantee is best-effort
// and relies on rename being atomic on the destination's filesystem; it
// does not hold across devices.
package atomicfile

import (
	"io/fs"
	"os"
)

// WriteFile writes data to path via a sibling temporary file and an
// atomic rename. If the process dies between the write and the rename a
// stray .tmp file may remain next to the destination; it is harmless and
// is overwritten by the next call.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
