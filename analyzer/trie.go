package analyzer

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

// TrieNode - запись узла trie в бинарном файле (16 байт).
// Дочерние узлы лежат непрерывным блоком, начиная с индекса (индекс узла + ChildStart),
// и не упорядочены, поэтому ищутся линейным просмотром. Узел 0 - корень.
type TrieNode struct {
	Char       rune  // символ на ребре, ведущем в узел (0 у корня)
	ValIdx     int32 // индекс значения, -1 если ключ здесь не заканчивается
	ChildStart int32 // относительное смещение первого потомка, <= 0 если потомков нет
	ChildNum   int32 // количество потомков
}

func (n TrieNode) String() string {
	ch := string(n.Char)
	if n.Char == 0 {
		ch = "ROOT"
	}
	return fmt.Sprintf("node{'%s', %d, (%d, %d)}", ch, n.ValIdx, n.ChildStart, n.ChildNum)
}

// Match - совпадение префикса текста с ключом trie.
type Match struct {
	Len    int // длина совпавшего префикса в символах
	ValIdx int // индекс значения
}

// Trie - trie только для чтения поверх массива узлов (обычно отображенного в память).
type Trie struct {
	file  *mappedFile[TrieNode]
	nodes []TrieNode
}

// OpenTrie отображает файл узлов trie в память.
func OpenTrie(path string) (*Trie, error) {
	file, err := openMapped[TrieNode](path)
	if err != nil {
		return nil, err
	}
	return &Trie{file: file, nodes: file.data}, nil
}

// NewTrie создает trie поверх уже готового массива узлов.
func NewTrie(nodes []TrieNode) *Trie {
	return &Trie{nodes: nodes}
}

// Close освобождает отображение файла.
func (t *Trie) Close() error {
	t.nodes = nil
	return t.file.Close()
}

// Size - количество узлов.
func (t *Trie) Size() int {
	return len(t.nodes)
}

// findChild ищет среди потомков узла idx узел с символом ch.
// Ссылки проверяются на выход за границы массива: содержимое файла не считается доверенным.
func (t *Trie) findChild(idx int, ch rune) (int, bool) {
	node := t.nodes[idx]
	if node.ChildStart <= 0 || node.ChildNum <= 0 {
		return 0, false
	}
	begin := idx + int(node.ChildStart)
	end := begin + int(node.ChildNum)
	if begin <= idx || end > len(t.nodes) {
		tracer().Errorf("битая ссылка на потомков у узла %d: %s", idx, node)
		return 0, false
	}
	for i := begin; i < end; i++ {
		if t.nodes[i].Char == ch {
			return i, true
		}
	}
	return 0, false
}

// Find ищет индекс значения для ключа. nil вместо ключа - ErrNullInput.
// Пустой ключ, отсутствующий ключ и ключ без значения дают ok == false.
func (t *Trie) Find(key []rune) (int, bool, error) {
	if key == nil {
		return 0, false, fmt.Errorf("%w: ключ", ErrNullInput)
	}
	if len(key) == 0 || len(t.nodes) == 0 {
		return 0, false, nil
	}
	idx := 0
	for _, ch := range key {
		child, ok := t.findChild(idx, ch)
		if !ok {
			return 0, false, nil
		}
		idx = child
	}
	if val := t.nodes[idx].ValIdx; val >= 0 {
		return int(val), true, nil
	}
	return 0, false, nil
}

// SearchCommonPrefixMatches возвращает все ключи, являющиеся префиксами текста,
// в порядке возрастания длины.
func (t *Trie) SearchCommonPrefixMatches(text []rune) ([]Match, error) {
	if text == nil {
		return nil, fmt.Errorf("%w: текст", ErrNullInput)
	}
	if len(t.nodes) == 0 {
		return nil, nil
	}
	var matches []Match
	idx := 0
	for i, ch := range text {
		child, ok := t.findChild(idx, ch)
		if !ok {
			break
		}
		if val := t.nodes[child].ValIdx; val >= 0 {
			matches = append(matches, Match{Len: i + 1, ValIdx: int(val)})
		}
		idx = child
	}
	return matches, nil
}

// --- ПОСТРОЕНИЕ ---

// buildNode - узел trie в памяти во время построения.
type buildNode struct {
	char     rune
	terminal bool
	children map[rune]*buildNode
}

// TrieBuilder строит trie в памяти и сериализует его в массив записей TrieNode.
type TrieBuilder struct {
	root *buildNode
	keys int
}

// NewTrieBuilder создает пустой построитель.
func NewTrieBuilder() *TrieBuilder {
	return &TrieBuilder{root: &buildNode{}}
}

// Insert добавляет ключ. Повторная вставка того же ключа ничего не меняет.
func (b *TrieBuilder) Insert(key []rune) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	node := b.root
	for _, ch := range key {
		if node.children == nil {
			node.children = make(map[rune]*buildNode)
		}
		child, ok := node.children[ch]
		if !ok {
			child = &buildNode{char: ch}
			node.children[ch] = child
		}
		node = child
	}
	if !node.terminal {
		node.terminal = true
		b.keys++
	}
	return nil
}

// Len - количество различных ключей.
func (b *TrieBuilder) Len() int {
	return b.keys
}

// Flatten обходит trie в ширину и возвращает массив узлов. Индексы значений назначаются
// в порядке обхода; keys[i] - ключ, которому назначен индекс значения i.
// Потомки каждого узла упорядочены по символу.
func (b *TrieBuilder) Flatten() (nodes []TrieNode, keys [][]rune) {
	type item struct {
		node *buildNode
		key  []rune
	}
	queue := []item{{node: b.root}}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		rec := TrieNode{Char: cur.node.char, ValIdx: -1, ChildStart: -1}
		if cur.node.terminal {
			rec.ValIdx = int32(len(keys))
			keys = append(keys, cur.key)
		}

		chars := make([]rune, 0, len(cur.node.children))
		for ch := range cur.node.children {
			chars = append(chars, ch)
		}
		sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
		if len(chars) > 0 {
			// Потомки встанут в очередь подряд, сразу за уже запланированными узлами.
			rec.ChildStart = int32(len(queue) - head)
			rec.ChildNum = int32(len(chars))
		}
		for _, ch := range chars {
			key := make([]rune, len(cur.key)+1)
			copy(key, cur.key)
			key[len(cur.key)] = ch
			queue = append(queue, item{node: cur.node.children[ch], key: key})
		}
		nodes = append(nodes, rec)
	}
	return nodes, keys
}

// WriteTrieNodes записывает узлы в бинарном формате (little-endian).
func WriteTrieNodes(w io.Writer, nodes []TrieNode) error {
	return binary.Write(w, binary.LittleEndian, nodes)
}
