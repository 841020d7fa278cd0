package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectDir marks a directory that carries its own notes and config.
const ProjectDir = ".jotter"

// FindRoot walks up from startDir looking for a ProjectDir directory and
// returns the directory that contains it.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if info, err := os.Stat(filepath.Join(dir, ProjectDir)); err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}
