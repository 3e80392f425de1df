package apierrors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Camelize)
	assert.Empty(t, cfg.ExtraHandlers)
	assert.Equal(t, ".", cfg.FieldsSeparator)
	assert.Equal(t, "non_field_errors", cfg.NonFieldKey)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		separator string
		wantErr   bool
	}{
		{"dot", ".", false},
		{"pipe", "|", false},
		{"underscore", "_", false},
		{"empty", "", true},
		{"multi char", "..", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.FieldsSeparator = test.separator
			err := cfg.validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRejectsBadSeparator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FieldsSeparator = "::"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewAppliesDefaults(t *testing.T) {
	f, err := New(Config{})
	require.NoError(t, err)

	assert.Equal(t, ".", f.Config().FieldsSeparator)
	assert.Equal(t, "non_field_errors", f.Config().NonFieldKey)
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Camelize)
	assert.Empty(t, cfg.ExtraHandlers)
	assert.Equal(t, ".", cfg.FieldsSeparator)
	assert.Equal(t, DefaultNonFieldKey, cfg.NonFieldKey)
}

func TestLoadConfigFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APIERRORS_CAMELIZE", "true")
	t.Setenv("APIERRORS_FIELDS_SEPARATOR", "|")
	t.Setenv("APIERRORS_EXTRA_HANDLERS", "billing,audit")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Camelize)
	assert.Equal(t, "|", cfg.FieldsSeparator)
	assert.Equal(t, []string{"billing", "audit"}, cfg.ExtraHandlers)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := chdirTemp(t)

	data := []byte("camelize: true\nnon_field_key: base\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "apierrors.yaml"), data, 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Camelize)
	assert.Equal(t, "base", cfg.NonFieldKey)
}

// chdirTemp moves the test into an empty directory so stray config
// files in the repo cannot leak into LoadConfig.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}
