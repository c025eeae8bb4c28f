package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "paktool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadPakToolConfig(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected PakToolConfig
		wantErr  bool
	}{
		{
			name: "full",
			input: `extract:
  outputDir: /tmp/extracted
  overwrite: true
`,
			expected: func() PakToolConfig {
				c := PakToolConfig{}
				c.Extract.OutputDir = "/tmp/extracted"
				c.Extract.Overwrite = true
				return c
			}(),
		},
		{
			name:     "defaults",
			input:    "extract:\n  overwrite: false\n",
			expected: PakToolConfig{},
		},
		{
			name: "unknown key",
			input: `extract:
  destination: /tmp
`,
			wantErr: true,
		},
		{
			name:    "malformed",
			input:   "extract: [",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config, err := LoadPakToolConfig(writeConfig(t, tc.input))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, *config)
		})
	}
}

func TestLoadPakToolConfigMissing(t *testing.T) {
	_, err := LoadPakToolConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
