package analyzer

import (
	"fmt"
	"strings"
)

// Word - непрерывная последовательность непробельных символов (어절).
// CharIdx - позиция первого символа в потоке непробельных символов предложения.
type Word struct {
	Chars   []Character
	CharIdx int
}

// Tokenize разбивает текст на слова по пробельным символам.
func Tokenize(text []byte) ([]Word, error) {
	chars, err := Characterize(text)
	if err != nil {
		return nil, err
	}

	var words []Word
	charIdx := 0
	inSpace := true
	for i := range chars {
		if chars[i].IsSpace() {
			inSpace = true
			continue
		}
		if inSpace {
			// Первый символ после пробела (или начала текста) открывает новое слово.
			words = append(words, Word{CharIdx: charIdx})
		}
		last := &words[len(words)-1]
		last.Chars = append(last.Chars, chars[i])
		inSpace = false
		charIdx++
	}
	return words, nil
}

// Len - длина слова в символах.
func (w Word) Len() int {
	return len(w.Chars)
}

// End - позиция, следующая за последним символом слова.
func (w Word) End() int {
	return w.CharIdx + len(w.Chars)
}

// Runes возвращает символы слова.
func (w Word) Runes() []rune {
	return charRunes(w.Chars)
}

// Reversed возвращает символы слова в обратном порядке.
func (w Word) Reversed() []rune {
	runes := w.Runes()
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return runes
}

// Span - байтовый диапазон слова в исходном тексте.
func (w Word) Span() (start, end int) {
	if len(w.Chars) == 0 {
		return 0, 0
	}
	return w.Chars[0].Start, w.Chars[len(w.Chars)-1].End
}

func (w Word) String() string {
	var sb strings.Builder
	for _, c := range w.Chars {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// CharLen - суммарная длина слов в символах.
func CharLen(words []Word) int {
	n := 0
	for _, w := range words {
		n += w.Len()
	}
	return n
}

// Merge объединяет два смежных слова. Слово b должно начинаться ровно там, где заканчивается a.
func Merge(a, b Word) (Word, error) {
	if a.End() != b.CharIdx {
		return Word{}, fmt.Errorf("%w: [%d, %d) и [%d, %d)", ErrAdjacency, a.CharIdx, a.End(), b.CharIdx, b.End())
	}
	// Копируем, чтобы не затереть символы исходных слов через общий массив.
	chars := make([]Character, 0, len(a.Chars)+len(b.Chars))
	chars = append(chars, a.Chars...)
	chars = append(chars, b.Chars...)
	return Word{Chars: chars, CharIdx: a.CharIdx}, nil
}

// MergeWords объединяет каждые n подряд идущих слов в одно. При n <= 1 слова возвращаются как есть.
func MergeWords(words []Word, n int) ([]Word, error) {
	if n <= 1 || len(words) == 0 {
		return words, nil
	}
	merged := make([]Word, 0, (len(words)+n-1)/n)
	for i := 0; i < len(words); i += n {
		group := words[i]
		for j := i + 1; j < i+n && j < len(words); j++ {
			var err error
			if group, err = Merge(group, words[j]); err != nil {
				return nil, err
			}
		}
		merged = append(merged, group)
	}
	return merged, nil
}
