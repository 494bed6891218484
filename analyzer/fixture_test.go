package analyzer

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// fixture - исходные данные для набора ресурсов, собираемого тестами во временной директории.
type fixture struct {
	morphs map[string][]string         // форма -> разборы "лексема/ТЕГ + лексема/ТЕГ"
	feats  map[Tag]map[string]float32 // тег -> признак -> вес
	trans  map[[2]Tag]float32         // {from, to} -> вес
}

// sentenceFixture - словарь и веса для предложения "아버지가 방에 들어가신다".
func sentenceFixture() fixture {
	return fixture{
		morphs: map[string][]string{
			"아버지":   {"아버지/NNG"},
			"가":     {"가/JKS", "가/VV"},
			"방":     {"방/NNG"},
			"에":     {"에/JKB"},
			"들어가신다": {"들어가/VV + 시/EP + ㄴ다/EF"},
			"하":     {"하/VV"},
		},
		feats: map[Tag]map[string]float32{
			SF:  {"S_0=.": 2.5},
			NNG: {"LSP": 0.5},
			VX:  {"BOS": -1.5},
		},
		trans: map[[2]Tag]float32{
			{NNG, JKS}: 1.0,
			{NNG, JKB}: 1.0,
			{NNG, VV}:  -1.0,
			{VV, EP}:   0.5,
			{EP, EF}:   0.5,
			{JKB, VV}:  0.3,
		},
	}
}

// writeFixture собирает бинарные ресурсы в t.TempDir() и возвращает путь к директории.
func writeFixture(t testing.TB, fx fixture) string {
	t.Helper()
	dir := t.TempDir()

	// Словарь морфем.
	builder := NewTrieBuilder()
	for surface := range fx.morphs {
		if err := builder.Insert([]rune(surface)); err != nil {
			t.Fatalf("Insert(%q): %v", surface, err)
		}
	}
	nodes, keys := builder.Flatten()
	var vals []rune
	var lens []int16
	for _, key := range keys {
		anals := append([]string(nil), fx.morphs[string(key)]...)
		sort.Strings(anals)
		packed := make([]string, len(anals))
		for i, a := range anals {
			packed[i] = strings.ReplaceAll(a, " + ", string(MorphDelim))
		}
		val := []rune(strings.Join(packed, string(AnalysisDelim)))
		vals = append(vals, val...)
		vals = append(vals, 0)
		lens = append(lens, int16(len(val)+1))
	}
	writeNodes(t, filepath.Join(dir, MorphTrieFile), nodes)
	writeBinary(t, filepath.Join(dir, MorphValFile), vals)
	writeBinary(t, filepath.Join(dir, MorphValLenFile), lens)

	// Признаки состояний.
	featBuilder := NewTrieBuilder()
	weightOf := map[string]float32{}
	for tag, feats := range fx.feats {
		for feat, w := range feats {
			key := StateFeatKey(tag, feat)
			if err := featBuilder.Insert(key); err != nil {
				t.Fatalf("Insert(%q): %v", string(key), err)
			}
			weightOf[string(key)] = w
		}
	}
	featNodes, featKeys := featBuilder.Flatten()
	weights := make([]float32, len(featKeys))
	for i, key := range featKeys {
		weights[i] = weightOf[string(key)]
	}
	writeNodes(t, filepath.Join(dir, StateFeatTrieFile), featNodes)
	writeBinary(t, filepath.Join(dir, StateFeatValFile), weights)

	// Матрица переходов.
	matrix := make([]float32, TagCount*TagCount)
	for pair, w := range fx.trans {
		matrix[int(pair[1])*TagCount+int(pair[0])] = w
	}
	writeBinary(t, filepath.Join(dir, TransMatFile), matrix)
	return dir
}

func writeNodes(t testing.TB, path string, nodes []TrieNode) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := WriteTrieNodes(file, nodes); err != nil {
		t.Fatal(err)
	}
}

func writeBinary(t testing.TB, path string, data any) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := binary.Write(file, binary.LittleEndian, data); err != nil {
		t.Fatal(err)
	}
}
