package trackheader

import (
	"errors"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchFileFifo(t *testing.T) {
	for _, p := range patchers {
		t.Run(p.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "track.fifo")
			require.NoError(t, syscall.Mkfifo(path, 0o644))

			err := p.patch(path)
			assert.ErrorIs(t, err, ErrNotRegular)

			var accessErr *FileAccessError
			assert.True(t, errors.As(err, &accessErr))
		})
	}
}
