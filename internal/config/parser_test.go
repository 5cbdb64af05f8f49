package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pagelighterrors "github.com/pagelight/pagelight/pkg/errors"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	validYAML := `content_dir: ./site-content
theme:
  accent: "#FF8800"
animations:
  hero_loop: false
log:
  level: debug
`

	invalidYAML := `content_dir: [1, 0]
theme: broken
`

	badLevel := `content_dir: ./content
log:
  level: chatty
`

	badColor := `content_dir: ./content
theme:
  accent: "not-a-color"
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:     "valid configuration is parsed",
			contents: validYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				require.Equal(t, "./site-content", cfg.ContentDir)
				require.Equal(t, filepath.Join("./site-content", "images"), cfg.ImagesDir)
				require.Equal(t, "#FF8800", cfg.Theme.Accent)
				require.True(t, cfg.Animations.Reveal, "omitted toggle defaults on")
				require.False(t, cfg.Animations.HeroLoop)
				require.Equal(t, "debug", cfg.Log.Level)
			},
		},
		{
			name:     "invalid yaml returns parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var parseErr *pagelighterrors.ParseError
				require.ErrorAs(t, err, &parseErr)
			},
		},
		{
			name:     "unknown log level fails validation",
			contents: badLevel,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var validationErr *pagelighterrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Contains(t, validationErr.Field, "level")
			},
		},
		{
			name:     "malformed theme color fails validation",
			contents: badColor,
			assert: func(t *testing.T, cfg *Config, err error) {
				require.Error(t, err)
				var validationErr *pagelighterrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Contains(t, validationErr.Field, "accent")
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "pagelight.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.contents), 0o644))

			cfg, err := Load(path)
			tc.assert(t, cfg, err)
		})
	}
}

func TestLoadMissingFileIsParseError(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	var parseErr *pagelighterrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "./content", cfg.ContentDir)
	require.Equal(t, filepath.Join("./content", "images"), cfg.ImagesDir)
	require.Equal(t, "#7D56F4", cfg.Theme.Accent)
	require.True(t, cfg.Animations.Reveal)
	require.True(t, cfg.Animations.HeroLoop)
}

func TestExtractLineFromYAMLError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pagelight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content_dir: ./c\nlog: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	var parseErr *pagelighterrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Greater(t, parseErr.Line, 0)
}
