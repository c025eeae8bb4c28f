//go:build unix

package trackheader

import (
	"os"
	"syscall"
)

func linkCount(info os.FileInfo) uint64 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Nlink)
	}

	return 1
}
