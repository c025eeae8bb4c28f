package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"tracktools/pkg/trackheader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestUsageDoesNotTouchFiles(t *testing.T) {
	sentinel := filepath.Join(t.TempDir(), "sentinel.trk")
	contents := bytes.Repeat([]byte{0xff}, 128)
	require.NoError(t, os.WriteFile(sentinel, contents, 0o644))

	for _, args := range [][]string{{}, {"-h"}, {"--help"}} {
		t.Run(filepath.Join(append([]string{"args"}, args...)...), func(t *testing.T) {
			out, err := execute(t, args...)
			require.NoError(t, err)
			assert.Contains(t, out, "Usage:")
			assert.Contains(t, out, "blesstrack TRACK")

			got, err := os.ReadFile(sentinel)
			require.NoError(t, err)
			assert.Equal(t, contents, got)
		})
	}
}

func TestPatchTrack(t *testing.T) {
	for _, extra := range [][]string{nil, {"--atomic"}, {"-v"}} {
		path := filepath.Join(t.TempDir(), "track.trk")
		original := append(bytes.Repeat([]byte{0xff}, 44), bytes.Repeat([]byte("PAYLOAD."), 7)...)
		require.NoError(t, os.WriteFile(path, original, 0o644))

		out, err := execute(t, append(extra, path)...)
		require.NoError(t, err)
		assert.Empty(t, out)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, got, len(original))
		assert.Equal(t, trackheader.UserHeader(), got[:trackheader.HeaderSize])
		assert.Equal(t, original[trackheader.HeaderSize:], got[trackheader.HeaderSize:])
	}
}

func TestPatchMissingTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.trk")

	_, err := execute(t, path)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestTooManyArguments(t *testing.T) {
	_, err := execute(t, "a.trk", "b.trk")
	assert.Error(t, err)
}
