package analyzer

import "fmt"

// UnknownSpans возвращает длины неизвестных слов, начинающихся с символа offset.
//
// Первой идет "естественная" длина, которую дает стратегия объединения символа.
// Для хангыля к ней добавляются более короткие варианты (1, 2 и естественная длина - 1),
// чтобы декодер мог выбрать другое разбиение агглютинативной последовательности.
func UnknownSpans(chars []Character, offset int) []int {
	first := &chars[offset]
	typ := first.Type()
	natural := 1
	switch MergeStrategyOf(typ) {
	case ByChar:
		for i := offset + 1; i < len(chars) && chars[i].Rune == first.Rune; i++ {
			natural++
		}
	case ByType:
		for i := offset + 1; i < len(chars) && chars[i].Type() == typ; i++ {
			natural++
		}
	}

	spans := []int{natural}
	if typ == Hangul {
		if natural > 1 {
			spans = append(spans, 1)
		}
		if natural > 2 {
			spans = append(spans, 2)
		}
		if natural > 3 {
			spans = append(spans, natural-1)
		}
	}
	return spans
}

// unknownAnalysis - разбор неизвестного слова из одной морфемы с тегом, оцененным по типу символа.
func unknownAnalysis(chars []Character) (Analysis, error) {
	tag, err := EstimateTag(chars[0].Type())
	if err != nil {
		return nil, fmt.Errorf("неизвестное слово '%s': %w", string(charRunes(chars)), err)
	}
	return Analysis{{Lex: string(charRunes(chars)), Tag: tag}}, nil
}

func charRunes(chars []Character) []rune {
	runes := make([]rune, len(chars))
	for i := range chars {
		runes[i] = chars[i].Rune
	}
	return runes
}
