package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/hanal/analyzer"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(analyzer.EnvRscDir, "/opt/hanal/rsc")

	t.Run("Без файла", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
		assert.Equal(t, "/opt/hanal/rsc", cfg.Resource.Dir)
		assert.Equal(t, analyzer.DefaultOptions().String(), cfg.Options())
	})

	t.Run("Файл не существует", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("Частичная конфигурация", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hanal.toml")
		src := `
[resource]
dir = "/data/rsc"

[analysis]
top_k = 3
normalize = true

[log]
level = "debug"
color = true
`
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/data/rsc", cfg.Resource.Dir)
		assert.Equal(t, 3, cfg.Analysis.TopK)
		assert.True(t, cfg.Analysis.Normalize)
		assert.Equal(t, 1, cfg.Analysis.WordMerge)
		assert.Equal(t, "debug", cfg.Log.Level)

		opts, err := analyzer.ParseOptions(cfg.Options())
		require.NoError(t, err)
		assert.Equal(t, analyzer.Options{WordMerge: 1, AnalBack: true, Normalize: true, TopK: 3}, opts)
	})

	t.Run("Неверные значения", func(t *testing.T) {
		for name, src := range map[string]string{
			"Синтаксис":           "[analysis\ntop_k = 1",
			"Нулевое top_k":       "[analysis]\ntop_k = 0",
			"Уровень логирования": "[log]\nlevel = \"loud\"",
		} {
			t.Run(name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "hanal.toml")
				require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
				_, err := LoadConfig(path)
				assert.Error(t, err)
			})
		}
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "hanal.toml")
	cfg := DefaultConfig()
	cfg.Resource.Dir = "/data/rsc"
	cfg.Analysis.WordMerge = 2
	cfg.Log.Timestamp = true
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Analysis.WordMerge = 0
	assert.ErrorIs(t, cfg.Validate(), analyzer.ErrOption)
}
