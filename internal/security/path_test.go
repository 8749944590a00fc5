package security

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathValidator(t *testing.T) {
	_, err := NewPathValidator("")
	assert.Error(t, err)

	v, err := NewPathValidator("drafts")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(v.GetConfiguredDirectory()))
}

func TestNormalizePath(t *testing.T) {
	dir := t.TempDir()
	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "bare name", input: "R001.json", want: filepath.Join(dir, "R001.json")},
		{name: "nested", input: "archive/R001.json", want: filepath.Join(dir, "archive", "R001.json")},
		{name: "absolute inside", input: filepath.Join(dir, "R002.json"), want: filepath.Join(dir, "R002.json")},
		{name: "dot segments inside", input: "a/../R003.json", want: filepath.Join(dir, "R003.json")},
		{name: "null bytes stripped", input: "R00\x004.json", want: filepath.Join(dir, "R004.json")},
		{name: "parent escape", input: "../secrets.json", wantErr: ErrOutsideDirectory},
		{name: "absolute outside", input: filepath.Join(filepath.Dir(dir), "other.json"), wantErr: ErrOutsideDirectory},
		{name: "sibling prefix", input: dir + "-evil/x.json", wantErr: ErrOutsideDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.NormalizePath(tt.input)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = v.NormalizePath("   ")
	assert.Error(t, err)
}

func TestValidatePath_Symlink(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	target := filepath.Join(outside, "real.json")
	require.NoError(t, os.WriteFile(target, []byte("{}"), 0o600))

	link := filepath.Join(dir, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	err = v.ValidatePath(link)
	assert.True(t, errors.Is(err, ErrOutsideDirectory))
}
