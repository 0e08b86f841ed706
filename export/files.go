package export

import (
	"os"
	"path/filepath"

	"github.com/activecm/asa-elephant/util"
)

// createFile opens path for writing, creating missing parent directories
func createFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && !util.Exists(dir) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, util.NewIOError("create directory", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, util.NewIOError("create", path, err)
	}
	return f, nil
}

// closeFile closes f and reports a failure as an IOError unless err is
// already set
func closeFile(f *os.File, err error) error {
	closeErr := f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return util.NewIOError("close", f.Name(), closeErr)
	}
	return nil
}
