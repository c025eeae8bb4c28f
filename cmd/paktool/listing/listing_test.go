package listing

import (
	"bytes"
	"strings"
	"testing"

	"tracktools/pkg/pak"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var entries = []pak.Entry{
	{Name: "tracks/alpine.trk", Offset: 0x40, Size: 2048, StoredSize: 2048, Flags: pak.FlagStored},
	{Name: `tracks\desert.trk`, Offset: 0x840, Size: 3 << 20, StoredSize: 1024, Flags: pak.FlagZlib},
	{Name: "readme.txt", Offset: 0xc40, Size: 10, StoredSize: 10},
}

func TestWriteTable(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	require.NoError(t, WriteTable(&out, entries))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Offset")
	assert.Equal(t, "     1  00000040    2.0 KiB        tracks/alpine.trk", lines[1])
	assert.Equal(t, "     2  00000840    3.0 MiB    *   tracks\\desert.trk", lines[2])
	assert.Equal(t, "     3  00000c40       10 B        readme.txt", lines[3])
}

func TestWriteYAML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteYAML(&out, entries))

	var decoded []listedEntry
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, listedEntry{
		Index:      2,
		Name:       `tracks\desert.trk`,
		Offset:     0x840,
		Size:       3 << 20,
		StoredSize: 1024,
		Compressed: true,
	}, decoded[1])
}

func TestWriteTree(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteTree(&out, "data.pak", entries))

	rendered := out.String()
	assert.True(t, strings.HasPrefix(rendered, "data.pak\n"))
	assert.Equal(t, 1, strings.Count(rendered, "tracks\n"))
	assert.Contains(t, rendered, "alpine.trk")
	assert.Contains(t, rendered, "desert.trk")
	assert.Contains(t, rendered, "readme.txt")
}
