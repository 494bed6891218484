package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// MorphResult - морфема в результате анализа.
type MorphResult struct {
	Lex   string `json:"lex" msgpack:"lex"`     // Лексическая форма
	Tag   string `json:"tag" msgpack:"tag"`     // Тег части речи (Sejong)
	Class string `json:"class" msgpack:"class"` // Группа тегов (체언, 용언, ...)
}

// Token - участок предложения, покрытый одним узлом лучшего пути.
type Token struct {
	Surface string        `json:"surface" msgpack:"surface"`   // Поверхностная форма
	Begin   int           `json:"begin" msgpack:"begin"`       // Начало в байтах исходного предложения
	End     int           `json:"end" msgpack:"end"`           // Конец в байтах (не включительно)
	CharIdx int           `json:"char_idx" msgpack:"char_idx"` // Позиция среди непробельных символов
	Length  int           `json:"length" msgpack:"length"`     // Длина в символах
	Unknown bool          `json:"unknown" msgpack:"unknown"`   // Разбор получен оценкой неизвестного слова
	Morphs  []MorphResult `json:"morphs" msgpack:"morphs"`
}

// Alternative - один из следующих по оценке путей при top_k > 1.
type Alternative struct {
	Score  float64 `json:"score" msgpack:"score"`
	Tokens []Token `json:"tokens" msgpack:"tokens"`
}

// Result - результат анализа предложения.
type Result struct {
	Sentence     string        `json:"sentence" msgpack:"sentence"`
	Tokens       []Token       `json:"tokens" msgpack:"tokens"`
	Score        float64       `json:"score" msgpack:"score"`
	Alternatives []Alternative `json:"alternatives,omitempty" msgpack:"alternatives,omitempty"`
}

// JSON сериализует результат в JSON.
func (r *Result) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// Msgpack сериализует результат в msgpack.
func (r *Result) Msgpack() ([]byte, error) {
	return msgpack.Marshal(r)
}

// String выводит лучший путь построчно: поверхность и разбор через табуляцию.
func (r *Result) String() string {
	var sb strings.Builder
	for _, t := range r.Tokens {
		sb.WriteString(t.Surface)
		sb.WriteByte('\t')
		for i, m := range t.Morphs {
			if i > 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(m.Lex + "/" + m.Tag)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// newTokens собирает токены пути. bytePos[i] - байтовый диапазон i-го непробельного символа.
func newTokens(lat *Lattice, path Path, bytePos [][2]int) []Token {
	tokens := make([]Token, 0, len(path.Nodes))
	for _, idx := range path.Nodes {
		n := &lat.Nodes[idx]
		tok := Token{
			Surface: lat.Surface(idx),
			Begin:   bytePos[n.Start][0],
			End:     bytePos[n.End()-1][1],
			CharIdx: n.Start,
			Length:  n.Len,
			Unknown: n.Unknown,
			Morphs:  make([]MorphResult, len(n.Analysis)),
		}
		for i, m := range n.Analysis {
			tok.Morphs[i] = MorphResult{Lex: m.Lex, Tag: m.Tag.String(), Class: TagClass(m.Tag)}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// newResult собирает результат из k лучших путей.
func newResult(sentence string, words []Word, lat *Lattice, paths []Path) (*Result, error) {
	bytePos := make([][2]int, lat.Size())
	for _, w := range words {
		for i, c := range w.Chars {
			bytePos[w.CharIdx+i] = [2]int{c.Start, c.End}
		}
	}

	res := &Result{Sentence: sentence, Tokens: []Token{}}
	for i, p := range paths {
		if err := checkCoverage(lat, p); err != nil {
			return nil, err
		}
		tokens := newTokens(lat, p, bytePos)
		if i == 0 {
			res.Tokens, res.Score = tokens, p.Score
			continue
		}
		res.Alternatives = append(res.Alternatives, Alternative{Score: p.Score, Tokens: tokens})
	}
	return res, nil
}

// checkCoverage проверяет, что путь покрывает предложение без пропусков.
func checkCoverage(lat *Lattice, p Path) error {
	pos := 0
	for _, idx := range p.Nodes {
		n := &lat.Nodes[idx]
		if n.Start != pos {
			return fmt.Errorf("%w: разрыв пути на позиции %d (узел %d начинается с %d)",
				ErrInvariantViolation, pos, idx, n.Start)
		}
		pos = n.End()
	}
	if pos != lat.Size() {
		return fmt.Errorf("%w: путь заканчивается на %d из %d", ErrInvariantViolation, pos, lat.Size())
	}
	return nil
}
