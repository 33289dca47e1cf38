package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/repoatlas/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(New(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxInlineTags)
	assert.Equal(t, model.SensitivityMedium, cfg.Sensitivity)
	assert.Empty(t, cfg.ExcludePatterns)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "max-inline-tags: 4\nsensitivity: high\nexclude:\n  - generated\n  - '*.gen.ts'\nlog-level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(content), 0o644))

	cfg, err := Load(New(dir))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxInlineTags)
	assert.Equal(t, model.SensitivityHigh, cfg.Sensitivity)
	assert.Equal(t, []string{"generated", "*.gen.ts"}, cfg.ExcludePatterns)
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte("sensitivity: high\n"), 0o644))
	t.Setenv("REPOATLAS_SENSITIVITY", "low")
	t.Setenv("REPOATLAS_MAX_INLINE_TAGS", "3")

	cfg, err := Load(New(dir))
	require.NoError(t, err)
	assert.Equal(t, model.SensitivityLow, cfg.Sensitivity)
	assert.Equal(t, 3, cfg.MaxInlineTags)
}

func TestLoadOverride(t *testing.T) {
	t.Parallel()

	v := New(t.TempDir())
	v.Set(KeyMaxInlineTags, 25)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MaxInlineTags)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key   string
		value any
	}{
		{KeySensitivity, "extreme"},
		{KeyMaxInlineTags, -1},
		{KeyLogLevel, "chatty"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			v := New(t.TempDir())
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.key, cfgErr.Field)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte("sensitivity: [unclosed\n"), 0o644))

	_, err := Load(New(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}
