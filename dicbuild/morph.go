// Package dicbuild собирает бинарные ресурсы анализатора из текстовых исходников:
// словаря морфем и текстового дампа модели crfsuite.
package dicbuild

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/steosofficial/hanal/analyzer"
)

// MorphDic накапливает записи словаря морфем: поверхностная форма -> множество разборов.
// Разборы хранятся в упакованном виде (морфемы через \2).
type MorphDic struct {
	trie    *patricia.Trie
	entries int
}

// NewMorphDic создает пустой словарь.
func NewMorphDic() *MorphDic {
	return &MorphDic{trie: patricia.NewTrie()}
}

// Add добавляет разбор "лексема/ТЕГ + лексема/ТЕГ" для поверхностной формы.
// Повторный разбор для той же формы игнорируется.
func (d *MorphDic) Add(surface, analysis string) error {
	if surface == "" {
		return analyzer.ErrEmptyKey
	}
	if strings.ContainsRune(analysis, analyzer.AnalysisDelim) || strings.ContainsRune(analysis, analyzer.MorphDelim) {
		return fmt.Errorf("%w: разделитель внутри разбора '%s'", analyzer.ErrFormat, analysis)
	}
	anal, err := analyzer.ParseAnalysisString(analysis)
	if err != nil {
		return err
	}

	packed := packAnalysis(anal)
	key := patricia.Prefix(surface)
	if item := d.trie.Get(key); item != nil {
		set := item.(map[string]struct{})
		if _, ok := set[packed]; !ok {
			set[packed] = struct{}{}
			d.entries++
		}
		return nil
	}
	d.trie.Insert(key, map[string]struct{}{packed: {}})
	d.entries++
	return nil
}

// Load читает строки вида "форма<TAB>разбор[<TAB>разбор...]". Пустые строки пропускаются.
func (d *MorphDic) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			return fmt.Errorf("%w: строка %d: нет разбора", analyzer.ErrFormat, lineNum)
		}
		for _, anal := range cols[1:] {
			if err := d.Add(cols[0], anal); err != nil {
				return fmt.Errorf("строка %d: %w", lineNum, err)
			}
		}
	}
	return scanner.Err()
}

// Len - количество различных пар (форма, разбор).
func (d *MorphDic) Len() int {
	return d.entries
}

// value возвращает упакованное значение формы: отсортированные разборы через \1.
func (d *MorphDic) value(surface string) string {
	set := d.trie.Get(patricia.Prefix(surface)).(map[string]struct{})
	anals := make([]string, 0, len(set))
	for a := range set {
		anals = append(anals, a)
	}
	sort.Strings(anals)
	return strings.Join(anals, string(analyzer.AnalysisDelim))
}

func packAnalysis(anal analyzer.Analysis) string {
	parts := make([]string, len(anal))
	for i, m := range anal {
		parts[i] = m.String()
	}
	return strings.Join(parts, string(analyzer.MorphDelim))
}

// Write записывает словарь в файлы <stem>.trie, <stem>.val и <stem>.val.len.
func (d *MorphDic) Write(stem string) error {
	builder := analyzer.NewTrieBuilder()
	err := d.trie.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		return builder.Insert([]rune(string(prefix)))
	})
	if err != nil {
		return err
	}
	nodes, keys := builder.Flatten()

	var vals []rune
	lens := make([]int16, len(keys))
	for i, key := range keys {
		val := []rune(d.value(string(key)))
		if len(val)+1 > math.MaxInt16 {
			return fmt.Errorf("%w: значение для '%s' длиннее %d символов", analyzer.ErrFormat, string(key), math.MaxInt16-1)
		}
		vals = append(vals, val...)
		vals = append(vals, 0)
		lens[i] = int16(len(val) + 1)
	}

	if err := writeFile(stem+".trie", func(w io.Writer) error { return analyzer.WriteTrieNodes(w, nodes) }); err != nil {
		return err
	}
	if err := writeFile(stem+".val", func(w io.Writer) error { return binary.Write(w, binary.LittleEndian, vals) }); err != nil {
		return err
	}
	if err := writeFile(stem+".val.len", func(w io.Writer) error { return binary.Write(w, binary.LittleEndian, lens) }); err != nil {
		return err
	}
	log.Infof("Словарь морфем записан в %s.*: %d узлов, %d значений, %d разборов", stem, len(nodes), len(keys), d.entries)
	return nil
}

// BuildMorphDic читает текстовый словарь морфем и записывает бинарные файлы с префиксом stem.
func BuildMorphDic(r io.Reader, stem string) error {
	dic := NewMorphDic()
	if err := dic.Load(r); err != nil {
		return err
	}
	if dic.Len() == 0 {
		return fmt.Errorf("%w: словарь морфем пуст", analyzer.ErrFormat)
	}
	return dic.Write(stem)
}

// writeFile пишет файл через буфер.
func writeFile(path string, write func(w io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания файла %s: %w", path, err)
	}
	bw := bufio.NewWriter(file)
	if err := write(bw); err != nil {
		file.Close()
		return fmt.Errorf("ошибка записи в %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("ошибка записи в %s: %w", path, err)
	}
	return file.Close()
}
