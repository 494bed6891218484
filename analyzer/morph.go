package analyzer

import (
	"fmt"
	"strings"
)

// Разделители в упакованном значении словаря морфем.
const (
	AnalysisDelim rune = '\x01' // между альтернативными разборами
	MorphDelim    rune = '\x02' // между морфемами одного разбора
	TagDelim      rune = '/'    // между лексемой и тегом (последний '/' в записи)
)

// Morph - морфема: лексическая форма и тег части речи.
type Morph struct {
	Lex string
	Tag Tag
}

func (m Morph) String() string {
	return m.Lex + string(TagDelim) + m.Tag.String()
}

// Analysis - один вариант разбора: последовательность морфем (например, основа + окончание).
type Analysis []Morph

func (a Analysis) String() string {
	parts := make([]string, len(a))
	for i, m := range a {
		parts[i] = m.String()
	}
	return strings.Join(parts, " + ")
}

// FirstTag - тег первой морфемы разбора.
func (a Analysis) FirstTag() Tag {
	return a[0].Tag
}

// LastTag - тег последней морфемы разбора.
func (a Analysis) LastTag() Tag {
	return a[len(a)-1].Tag
}

// parseMorph разбирает запись "лексема/ТЕГ".
func parseMorph(units []rune) (Morph, error) {
	sep := -1
	for i := len(units) - 1; i >= 0; i-- {
		if units[i] == TagDelim {
			sep = i
			break
		}
	}
	if sep < 0 {
		return Morph{}, fmt.Errorf("%w: нет разделителя тега в записи '%s'", ErrFormat, string(units))
	}
	tag, err := ParseTag(string(units[sep+1:]))
	if err != nil {
		return Morph{}, fmt.Errorf("запись '%s': %w", string(units), err)
	}
	return Morph{Lex: string(units[:sep]), Tag: tag}, nil
}

// parseAnalysis разбирает морфемы одного разбора, разделенные MorphDelim.
func parseAnalysis(units []rune) (Analysis, error) {
	var anal Analysis
	for _, part := range splitRunes(units, MorphDelim) {
		m, err := parseMorph(part)
		if err != nil {
			return nil, err
		}
		anal = append(anal, m)
	}
	return anal, nil
}

// ParseAnalyses разбирает упакованное значение словаря: разборы, разделенные AnalysisDelim.
func ParseAnalyses(units []rune) ([]Analysis, error) {
	var anals []Analysis
	for _, part := range splitRunes(units, AnalysisDelim) {
		anal, err := parseAnalysis(part)
		if err != nil {
			return nil, err
		}
		anals = append(anals, anal)
	}
	return anals, nil
}

// ParseAnalysisString разбирает разбор в текстовом виде "лексема/ТЕГ + лексема/ТЕГ".
func ParseAnalysisString(s string) (Analysis, error) {
	var anal Analysis
	for _, part := range strings.Split(s, " + ") {
		m, err := parseMorph([]rune(strings.TrimSpace(part)))
		if err != nil {
			return nil, err
		}
		anal = append(anal, m)
	}
	return anal, nil
}

func splitRunes(units []rune, delim rune) [][]rune {
	var parts [][]rune
	start := 0
	for i, u := range units {
		if u == delim {
			parts = append(parts, units[start:i])
			start = i + 1
		}
	}
	return append(parts, units[start:])
}
