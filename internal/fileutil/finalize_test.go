package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/encrypter/internal/fileutil"
)

func TestSuffix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dir/file.txt.enc", fileutil.AppendSuffix("dir/file.txt", ".enc"))

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"file.txt.enc", "file.txt", true},
		{"dir/file.enc", "dir/file", true},
		{"file.enc.enc", "file.enc", true},
		{"file.txt", "", false},
		{"file.enc.txt", "", false},
		{".enc", "", false},
		{"dir/.enc", "", false},
	}

	for _, tc := range tests {
		got, ok := fileutil.StripSuffix(tc.name, ".enc")
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestCreateOutputTruncates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(path, []byte("previous content"), 0o600))

	file, err := fileutil.CreateOutput(path)
	require.NoError(t, err)

	_, err = file.WriteString("new")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	size, err := fileutil.FinalizeOutput(path, false, time.Time{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, size)
}
