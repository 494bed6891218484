package analyzer

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalyses(t *testing.T) {
	testCases := []struct {
		name     string
		packed   string
		expected string // разборы через " | "
		err      error
	}{
		{"Одна морфема", "방/NNG", "방/NNG", nil},
		{"Несколько морфем", "들어가/VV\x02시/EP\x02ㄴ다/EF", "들어가/VV + 시/EP + ㄴ다/EF", nil},
		{"Несколько разборов", "가/JKS\x01가/VV", "가/JKS | 가/VV", nil},
		{"Косая черта в лексеме", "//SP", "//SP", nil},
		{"Нет разделителя тега", "방NNG", "", ErrFormat},
		{"Неизвестный тег", "방/XYZ", "", ErrFormat},
		{"Пустая морфема", "방/NNG\x02", "", ErrFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			anals, err := ParseAnalyses([]rune(tc.packed))
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			var got string
			for i, a := range anals {
				if i > 0 {
					got += " | "
				}
				got += a.String()
			}
			assert.Equal(t, tc.expected, got)
		})
	}

	t.Run("Лексема с косой чертой", func(t *testing.T) {
		anals, err := ParseAnalyses([]rune("1/2/SN"))
		require.NoError(t, err)
		assert.Equal(t, Morph{Lex: "1/2", Tag: SN}, anals[0][0])
	})
}

func TestMorphDic(t *testing.T) {
	dir := writeFixture(t, sentenceFixture())
	dic, err := OpenMorphDic(dir)
	require.NoError(t, err)
	defer dic.Close()

	assert.Equal(t, 6, dic.Size())

	t.Run("Поиск префиксов", func(t *testing.T) {
		matches, err := dic.Lookup([]rune("아버지가"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, 3, matches[0].Len)

		anals, err := dic.Value(matches[0].ValIdx)
		require.NoError(t, err)
		require.Len(t, anals, 1)
		assert.Equal(t, Analysis{{Lex: "아버지", Tag: NNG}}, anals[0])
	})

	t.Run("Несколько разборов", func(t *testing.T) {
		matches, err := dic.Lookup([]rune("가"))
		require.NoError(t, err)
		require.Len(t, matches, 1)
		anals, err := dic.Value(matches[0].ValIdx)
		require.NoError(t, err)
		require.Len(t, anals, 2)
		assert.Equal(t, JKS, anals[0].FirstTag())
		assert.Equal(t, VV, anals[1].FirstTag())
	})

	t.Run("Значение кэшируется", func(t *testing.T) {
		first, err := dic.Value(0)
		require.NoError(t, err)
		second, err := dic.Value(0)
		require.NoError(t, err)
		assert.Same(t, &first[0], &second[0])
	})

	t.Run("Параллельное декодирование", func(t *testing.T) {
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < dic.Size(); i++ {
					if _, err := dic.Value(i); err != nil {
						t.Error(err)
					}
				}
			}()
		}
		wg.Wait()
	})

	t.Run("Индекс вне диапазона", func(t *testing.T) {
		_, err := dic.Value(-1)
		assert.ErrorIs(t, err, ErrIndex)
		_, err = dic.Value(dic.Size())
		assert.ErrorIs(t, err, ErrIndex)
	})
}

func TestOpenMorphDicErrors(t *testing.T) {
	t.Run("Нет директории", func(t *testing.T) {
		_, err := OpenMorphDic(filepath.Join(t.TempDir(), "__not_existing_dir__"))
		assert.ErrorIs(t, err, ErrOpen)
	})

	t.Run("Длины не согласованы со значениями", func(t *testing.T) {
		dir := writeFixture(t, sentenceFixture())
		path := filepath.Join(dir, MorphValLenFile)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		data[0]++ // первое значение становится на единицу длиннее
		require.NoError(t, os.WriteFile(path, data, 0o644))

		_, err = OpenMorphDic(dir)
		assert.ErrorIs(t, err, ErrOpen)
	})

	t.Run("Размер значений не кратен записи", func(t *testing.T) {
		dir := writeFixture(t, sentenceFixture())
		f, err := os.OpenFile(filepath.Join(dir, MorphValFile), os.O_APPEND|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		f.Write([]byte{1})
		f.Close()

		_, err = OpenMorphDic(dir)
		assert.True(t, errors.Is(err, ErrOpen), "получено %v", err)
	})
}

func TestWeights(t *testing.T) {
	dir := writeFixture(t, sentenceFixture())
	w, err := OpenWeights(dir)
	require.NoError(t, err)
	defer w.Close()

	t.Run("Веса признаков состояний", func(t *testing.T) {
		assert.Equal(t, float32(2.5), w.States.StateFeatureWeight(SF, "S_0=."))
		assert.Equal(t, float32(0.5), w.States.StateFeatureWeight(NNG, "LSP"))
		assert.Equal(t, float32(-1.5), w.States.StateFeatureWeight(VX, "BOS"))
		// Признак зарегистрирован для другого тега.
		assert.Equal(t, float32(0), w.States.StateFeatureWeight(NNP, "LSP"))
		assert.Equal(t, float32(0), w.States.StateFeatureWeight(NNG, "__non_existing_feature__"))
		assert.Equal(t, float32(0), w.States.StateFeatureWeight(Tag(99), "L_0='"))
		assert.Equal(t, float32(0), w.States.StateFeatureWeight(Tag(-1), "LSP"))
	})

	t.Run("Веса переходов", func(t *testing.T) {
		got, err := w.Trans.TransitionWeight(NNG, JKS)
		require.NoError(t, err)
		assert.Equal(t, float32(1.0), got)

		got, err = w.Trans.TransitionWeight(JKS, NNG)
		require.NoError(t, err)
		assert.Equal(t, float32(0), got)

		got, err = w.Trans.TransitionWeight(NNG, VV)
		require.NoError(t, err)
		assert.Equal(t, float32(-1.0), got)
	})

	t.Run("Тег вне диапазона", func(t *testing.T) {
		for _, bad := range []Tag{-1, Tag(TagCount), 99} {
			_, err := w.Trans.TransitionWeight(bad, NNG)
			assert.ErrorIs(t, err, ErrIndex)
			_, err = w.Trans.TransitionWeight(NNG, bad)
			assert.ErrorIs(t, err, ErrIndex)
		}
	})

	t.Run("Матрица неверного размера", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), TransMatFile)
		writeBinary(t, path, make([]float32, TagCount))
		_, err := OpenTransMatrix(path)
		assert.ErrorIs(t, err, ErrOpen)
	})
}
