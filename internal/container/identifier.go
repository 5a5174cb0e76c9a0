// SPDX-License-Identifier: MPL-2.0

package container

import (
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"syscall"
)

// maxLXDNameLen is the hostname length limit LXD enforces on instance
// names.
const maxLXDNameLen = 63

// folderid derives a short stable identifier for a project directory. Two
// checkouts of the same project in different directories must map to
// different containers, so the directory's inode number is used rather than
// anything derived from its contents. When the inode is unavailable the
// identifier falls back to a hash of the path.
func folderid(dir string) string {
	if info, err := os.Stat(dir); err == nil {
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			return strconv.FormatUint(st.Ino, 36)
		}
	}
	h := fnv.New32a()
	h.Write([]byte(dir))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}

// LXDName computes the LXD instance name for a project container. The name
// must be a valid hostname, so the project/container prefix is truncated to
// leave room for the directory identifier that makes it unique across
// checkouts.
func LXDName(projectName, containerName, homedir string) string {
	id := folderid(homedir)
	prefix := fmt.Sprintf("%s-%s", projectName, containerName)
	if max := maxLXDNameLen - len(id) - 1; len(prefix) > max {
		prefix = prefix[:max]
	}
	return fmt.Sprintf("%s-%s", prefix, id)
}
