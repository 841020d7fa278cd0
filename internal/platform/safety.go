package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// SandboxDir is the directory under os.TempDir() used for dev runs.
const SandboxDir = "jotter-dev"

// IsDevRun reports whether the process was built by `go run` or `go test`.
// Both place the binary in a temporary directory; test binaries end in ".test".
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolvePath returns the data path to use. With forceTemp, paths outside the
// system temp directory are re-rooted under SandboxDir so a dev run never
// touches real notes.
func ResolvePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && !strings.HasPrefix(rel, "..") && userPath != "" {
		return clean
	}

	name := filepath.Base(clean)
	if userPath == "" || name == "." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(os.TempDir(), SandboxDir, name)
}
