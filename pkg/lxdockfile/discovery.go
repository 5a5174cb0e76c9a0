// SPDX-License-Identifier: MPL-2.0

package lxdockfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileNames are the accepted project file names, in precedence order.
var FileNames = []string{".lxdock.yml", "lxdock.yml", ".lxdock.yaml", "lxdock.yaml"}

// Discover locates the project file governing dir by checking dir and each of
// its parents for one of FileNames. It returns the absolute path of the first
// match, or ErrNotFound wrapped with the start directory.
func Discover(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", dir, err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && info.Mode().IsRegular() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w (searched %q and parent directories)", ErrNotFound, dir)
}
