package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted saves source that failed to format as
// <name>.unformatted.go in dir. An empty dir disables it.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, name), content, filePerm)
}
