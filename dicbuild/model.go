package dicbuild

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/steosofficial/hanal/analyzer"
)

// Заголовки блоков в текстовом дампе модели crfsuite.
const (
	stateFeaturesHeader = "STATE_FEATURES = {"
	transitionsHeader   = "TRANSITIONS = {"
	blockEnd            = "}"
)

// modelLine - строка блока дампа: "(N) LEFT --> RIGHT: weight".
type modelLine struct {
	left, right string
	weight      float32
}

func parseModelLine(line string) (modelLine, error) {
	cols := strings.Fields(line)
	if len(cols) != 5 || cols[2] != "-->" || !strings.HasSuffix(cols[3], ":") {
		return modelLine{}, fmt.Errorf("%w: строка модели '%s'", analyzer.ErrFormat, line)
	}
	weight, err := strconv.ParseFloat(cols[4], 32)
	if err != nil {
		return modelLine{}, fmt.Errorf("%w: вес в строке '%s': %w", analyzer.ErrFormat, line, err)
	}
	return modelLine{left: cols[1], right: strings.TrimSuffix(cols[3], ":"), weight: float32(weight)}, nil
}

// scanBlock вызывает fn для каждой строки блока с заголовком header.
// Отсутствие блока - ошибка.
func scanBlock(r io.Reader, header string, fn func(modelLine) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	inBlock, found := false, false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !inBlock {
			if strings.HasPrefix(line, header) {
				inBlock, found = true, true
			}
			continue
		}
		if line == blockEnd {
			break
		}
		if line == "" {
			continue
		}
		ml, err := parseModelLine(line)
		if err != nil {
			return err
		}
		if err := fn(ml); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: в модели нет блока '%s'", analyzer.ErrFormat, header)
	}
	return nil
}

// BuildStateFeatDic читает блок STATE_FEATURES дампа модели и записывает
// <stem>.trie и <stem>.val.
func BuildStateFeatDic(r io.Reader, stem string) error {
	feats := patricia.NewTrie()
	err := scanBlock(r, stateFeaturesHeader, func(ml modelLine) error {
		tag, err := analyzer.ParseTag(ml.right)
		if err != nil {
			return err
		}
		key := string(analyzer.StateFeatKey(tag, ml.left))
		feats.Set(patricia.Prefix(key), ml.weight)
		return nil
	})
	if err != nil {
		return err
	}

	builder := analyzer.NewTrieBuilder()
	err = feats.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		return builder.Insert([]rune(string(prefix)))
	})
	if err != nil {
		return err
	}
	if builder.Len() == 0 {
		return fmt.Errorf("%w: блок признаков состояний пуст", analyzer.ErrFormat)
	}
	nodes, keys := builder.Flatten()
	weights := make([]float32, len(keys))
	for i, key := range keys {
		weights[i] = feats.Get(patricia.Prefix(string(key))).(float32)
	}

	if err := writeFile(stem+".trie", func(w io.Writer) error { return analyzer.WriteTrieNodes(w, nodes) }); err != nil {
		return err
	}
	if err := writeFile(stem+".val", func(w io.Writer) error { return binary.Write(w, binary.LittleEndian, weights) }); err != nil {
		return err
	}
	log.Infof("Словарь признаков состояний записан в %s.*: %d узлов, %d признаков", stem, len(nodes), len(keys))
	return nil
}

// BuildTransMatrix читает блок TRANSITIONS дампа модели и записывает матрицу
// переходов [to][from]. Отсутствующие переходы получают вес 0.
func BuildTransMatrix(r io.Reader, path string) error {
	matrix := make([]float32, analyzer.TagCount*analyzer.TagCount)
	err := scanBlock(r, transitionsHeader, func(ml modelLine) error {
		from, err := analyzer.ParseTag(ml.left)
		if err != nil {
			return err
		}
		to, err := analyzer.ParseTag(ml.right)
		if err != nil {
			return err
		}
		matrix[int(to)*analyzer.TagCount+int(from)] = ml.weight
		log.Debugf("%s --> %s: %f", from, to, ml.weight)
		return nil
	})
	if err != nil {
		return err
	}
	if err := writeFile(path, func(w io.Writer) error { return binary.Write(w, binary.LittleEndian, matrix) }); err != nil {
		return err
	}
	log.Infof("Матрица переходов записана в %s", path)
	return nil
}
