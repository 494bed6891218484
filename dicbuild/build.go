package dicbuild

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/steosofficial/hanal/analyzer"
)

// BuildResources собирает все ресурсы анализатора в директорию outDir:
// словарь морфем из dicPath и весовые таблицы из дампа модели modelPath.
func BuildResources(dicPath, modelPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ошибка создания директории %s: %w", outDir, err)
	}

	dicFile, err := os.Open(dicPath)
	if err != nil {
		return err
	}
	defer dicFile.Close()
	if err := BuildMorphDic(dicFile, stemOf(outDir, analyzer.MorphTrieFile)); err != nil {
		return fmt.Errorf("словарь морфем %s: %w", dicPath, err)
	}

	// Оба блока читаются из одного дампа, поэтому файл открывается дважды.
	for _, step := range []struct {
		name  string
		build func(*os.File) error
	}{
		{"признаки состояний", func(f *os.File) error {
			return BuildStateFeatDic(f, stemOf(outDir, analyzer.StateFeatTrieFile))
		}},
		{"матрица переходов", func(f *os.File) error {
			return BuildTransMatrix(f, filepath.Join(outDir, analyzer.TransMatFile))
		}},
	} {
		modelFile, err := os.Open(modelPath)
		if err != nil {
			return err
		}
		err = step.build(modelFile)
		modelFile.Close()
		if err != nil {
			return fmt.Errorf("%s %s: %w", step.name, modelPath, err)
		}
	}
	return nil
}

// stemOf возвращает путь без расширения ".trie".
func stemOf(dir, trieFile string) string {
	return filepath.Join(dir, strings.TrimSuffix(trieFile, ".trie"))
}
