package analyzer

import (
	"fmt"
	"strings"
)

// Node - узел решетки: один вариант разбора участка предложения.
// Позиции считаются в непробельных символах предложения.
type Node struct {
	Analysis Analysis
	Start    int   // позиция первого символа
	Len      int   // длина в символах
	Unknown  bool  // разбор получен оценкой неизвестного слова, а не из словаря
	Left     []int // узлы, заканчивающиеся в Start
	Right    []int // узлы, начинающиеся в End()
}

// End - позиция, следующая за последним символом узла.
func (n *Node) End() int {
	return n.Start + n.Len
}

// Lattice - решетка разборов предложения. Узлы хранятся в одном массиве и ссылаются
// друг на друга индексами. Узел всегда добавляется после всех узлов слева от него,
// поэтому порядок индексов топологический.
type Lattice struct {
	Nodes []Node
	ByEnd [][]int // ByEnd[e] - узлы, заканчивающиеся в позиции e; ByEnd[0] всегда пуст

	text     []rune // непробельные символы предложения
	boundary []bool // boundary[i] - между символами i-1 и i проходит граница слов
}

// NewLattice создает пустую решетку для слов предложения.
func NewLattice(words []Word) *Lattice {
	size := 0
	if len(words) > 0 {
		size = words[len(words)-1].End()
	}
	lat := &Lattice{
		ByEnd:    make([][]int, size+1),
		text:     make([]rune, size),
		boundary: make([]bool, size+1),
	}
	lat.boundary[0] = true
	for _, w := range words {
		for i := range w.Chars {
			lat.text[w.CharIdx+i] = w.Chars[i].Rune
		}
		lat.boundary[w.CharIdx] = true
		lat.boundary[w.End()] = true
	}
	return lat
}

// Size - длина предложения в непробельных символах.
func (l *Lattice) Size() int {
	return len(l.text)
}

// Surface - поверхностная форма участка, покрытого узлом.
func (l *Lattice) Surface(idx int) string {
	n := &l.Nodes[idx]
	return string(l.text[n.Start:n.End()])
}

// IsWordBegin сообщает, начинается ли узел с начала слова.
func (l *Lattice) IsWordBegin(idx int) bool {
	return l.boundary[l.Nodes[idx].Start]
}

// IsWordEnd сообщает, заканчивается ли узел на конце слова.
func (l *Lattice) IsWordEnd(idx int) bool {
	return l.boundary[l.Nodes[idx].End()]
}

// AddNode добавляет узел с разбором для участка [charIdx+offset, charIdx+offset+length)
// и связывает его со всеми узлами, заканчивающимися в его начале.
func (l *Lattice) AddNode(anal Analysis, charIdx, offset, length int) (int, error) {
	start := charIdx + offset
	end := start + length
	if length <= 0 || start < 0 || end >= len(l.ByEnd) {
		return 0, fmt.Errorf("%w: узел [%d, %d) вне решетки длины %d", ErrIndex, start, end, l.Size())
	}
	idx := len(l.Nodes)
	node := Node{Analysis: anal, Start: start, Len: length}
	if start > 0 {
		node.Left = append([]int(nil), l.ByEnd[start]...)
		for _, prev := range node.Left {
			l.Nodes[prev].Right = append(l.Nodes[prev].Right, idx)
		}
	}
	l.Nodes = append(l.Nodes, node)
	l.ByEnd[end] = append(l.ByEnd[end], idx)
	tracer().Debugf("узел %d [%d, %d) %s, слева %d", idx, start, end, anal, len(node.Left))
	return idx, nil
}

// Dictionary - источник разборов для построения решетки. Его реализует MorphDic.
type Dictionary interface {
	Lookup(text []rune) ([]Match, error)
	Value(idx int) ([]Analysis, error)
}

// BuildLattice строит решетку для слов предложения.
//
// Внутри каждого слова позиции обрабатываются по возрастанию. Для позиции ищутся
// все словарные префиксы остатка слова; если их нет, добавляются неизвестные слова.
// Концы добавленных узлов становятся новыми позициями для обработки.
func BuildLattice(dic Dictionary, words []Word) (*Lattice, error) {
	lat := NewLattice(words)
	for _, w := range words {
		if err := lat.addWord(dic, w); err != nil {
			return nil, err
		}
	}
	return lat, nil
}

func (l *Lattice) addWord(dic Dictionary, w Word) error {
	runes := w.Runes()
	pending := make([]bool, len(runes)+1)
	pending[0] = true
	for offset := 0; offset < len(runes); offset++ {
		if !pending[offset] {
			continue
		}
		matches, err := dic.Lookup(runes[offset:])
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			if err := l.addUnknown(w, offset, pending); err != nil {
				return err
			}
			continue
		}
		for _, m := range matches {
			anals, err := dic.Value(m.ValIdx)
			if err != nil {
				return err
			}
			for _, anal := range anals {
				if _, err := l.AddNode(anal, w.CharIdx, offset, m.Len); err != nil {
					return err
				}
			}
			pending[offset+m.Len] = true
		}
	}
	return nil
}

func (l *Lattice) addUnknown(w Word, offset int, pending []bool) error {
	for _, span := range UnknownSpans(w.Chars, offset) {
		anal, err := unknownAnalysis(w.Chars[offset : offset+span])
		if err != nil {
			return err
		}
		idx, err := l.AddNode(anal, w.CharIdx, offset, span)
		if err != nil {
			return err
		}
		l.Nodes[idx].Unknown = true
		pending[offset+span] = true
	}
	return nil
}

// String выводит решетку по позициям окончания узлов (для отладки).
func (l *Lattice) String() string {
	var sb strings.Builder
	for end := 1; end < len(l.ByEnd); end++ {
		fmt.Fprintf(&sb, "[%d] '%c'\n", end-1, l.text[end-1])
		for j, idx := range l.ByEnd[end] {
			n := &l.Nodes[idx]
			fmt.Fprintf(&sb, "  [%d] %s\n", j, n.Analysis)
			if len(n.Left) > 0 {
				sb.WriteString("    [LEFT]  ")
				sb.WriteString(l.joinAnalyses(n.Left))
				sb.WriteByte('\n')
			}
			if len(n.Right) > 0 {
				sb.WriteString("    [RIGHT] ")
				sb.WriteString(l.joinAnalyses(n.Right))
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func (l *Lattice) joinAnalyses(nodes []int) string {
	parts := make([]string, len(nodes))
	for i, idx := range nodes {
		parts[i] = l.Nodes[idx].Analysis.String()
	}
	return strings.Join(parts, " || ")
}
