package buffer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/c360/streambuf/errors"
)

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"empty config", Config{}, nil},
		{"ring config", Config{Capacity: 1024}, nil},
		{"dynamic config", Config{ExtentSize: 256, MinFree: 64}, nil},
		{"negative capacity", Config{Capacity: -1}, cerrors.ErrInvalidCapacity},
		{"negative extent size", Config{ExtentSize: -1}, cerrors.ErrInvalidExtentSize},
		{"negative minfree", Config{MinFree: -1}, cerrors.ErrInvalidMinFree},
		{"minfree above extent size", Config{ExtentSize: 8, MinFree: 9}, cerrors.ErrInvalidMinFree},
		{"minfree against default extent size", Config{MinFree: DefaultExtentSize}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("capacity: 4096\nextent_size: 512\nmin_free: 128\n"))
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.Capacity)
	assert.Equal(t, 512, cfg.ExtentSize)
	assert.Equal(t, 128, cfg.MinFree)
}

func TestParseConfigErrors(t *testing.T) {
	// Malformed YAML.
	_, err := ParseConfig([]byte("capacity: [not a number"))
	require.Error(t, err)
	assert.True(t, cerrors.IsInvalid(err))

	// Well-formed but invalid values.
	_, err = ParseConfig([]byte("capacity: -5\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, cerrors.ErrInvalidCapacity)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 64\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Capacity)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewCircularFromConfig(t *testing.T) {
	buf, err := NewCircularFromConfig(&Config{Capacity: 32})
	require.NoError(t, err)
	assert.Equal(t, 32, buf.Cap())

	// Zero capacity survives Validate but not construction.
	_, err = NewCircularFromConfig(&Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, cerrors.ErrInvalidCapacity)
}

func TestNewDynamicFromConfig(t *testing.T) {
	buf, err := NewDynamicFromConfig(&Config{ExtentSize: 16, MinFree: 4})
	require.NoError(t, err)
	assert.Equal(t, 16, buf.ExtentSize())

	// Defaults apply when fields are omitted.
	buf, err = NewDynamicFromConfig(&Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultExtentSize, buf.ExtentSize())
}
