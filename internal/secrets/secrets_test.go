// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeyFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api_key")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		env    string
		file   string
		config string
		want   string
	}{
		{
			name:   "env wins over file and config",
			env:    "from-env",
			file:   "from-file",
			config: "from-config",
			want:   "from-env",
		},
		{
			name:   "file wins over config",
			file:   "  from-file\n",
			config: "from-config",
			want:   "from-file",
		},
		{
			name:   "config as last resort",
			config: "from-config",
			want:   "from-config",
		},
		{
			name: "all absent yields empty",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const envVar = "PAPER_REVIEW_TEST_SECRET"
			if tt.env != "" {
				t.Setenv(envVar, tt.env)
			} else {
				t.Setenv(envVar, "")
			}

			path := ""
			if tt.file != "" {
				path = writeKeyFile(t, tt.file)
			}

			assert.Equal(t, tt.want, Resolve(envVar, path, tt.config))
		})
	}
}

func TestResolveMissingFileIsAbsent(t *testing.T) {
	t.Setenv("PAPER_REVIEW_TEST_SECRET", "")
	got := Resolve("PAPER_REVIEW_TEST_SECRET",
		filepath.Join(t.TempDir(), "does-not-exist"), "fallback")
	assert.Equal(t, "fallback", got)
}
