package analyzer

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		r        rune
		expected CharType
	}{
		{"Пробел", ' ', Space},
		{"Табуляция", '\t', Space},
		{"Идеографический пробел", '　', Space},
		{"Слог хангыля", '한', Hangul},
		{"Совместимое джамо", 'ㄴ', Hangul},
		{"Джамо", 'ᄀ', Hangul},
		{"Латиница", 'a', Latin},
		{"Полноширинная латиница", 'Ａ', Latin},
		{"Latin-1", 'à', Latin},
		{"Знак умножения не латиница", '×', OMark},
		{"Знак деления", '÷', Symbol},
		{"Цифра", '7', Number},
		{"Полноширинная цифра", '７', Number},
		{"Иероглиф", '漢', CJK},
		{"Многоточие", '…', Ellipsis},
		{"Точка", '.', Period},
		{"Вопросительный знак", '?', Period},
		{"Тильда", '~', OMark},
		{"Запятая", ',', Comma},
		{"Точка в середине", '·', Comma},
		{"Кавычка", '"', Quote},
		{"Скобка", '(', Quote},
		{"Угловая скобка CJK", '「', Quote},
		{"Решетка", '#', Symbol},
		{"Стрелка", '→', Symbol},
		{"Кириллица", 'ж', Foreign},
		{"Хирагана", 'あ', Foreign},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.r); got != tc.expected {
				t.Errorf("Classify(%q) = %s, ожидалось %s", tc.r, got, tc.expected)
			}
		})
	}
}

func TestMergeStrategyOf(t *testing.T) {
	testCases := []struct {
		typ      CharType
		expected MergeStrategy
	}{
		{Hangul, ByType}, {Latin, ByType}, {Number, ByType}, {CJK, ByType}, {Foreign, ByType}, {Space, ByType},
		{Ellipsis, ByChar}, {Period, ByChar}, {OMark, ByChar},
		{Comma, Separately}, {Quote, Separately}, {Symbol, Separately},
	}
	for _, tc := range testCases {
		if got := MergeStrategyOf(tc.typ); got != tc.expected {
			t.Errorf("MergeStrategyOf(%s) = %d, ожидалось %d", tc.typ, got, tc.expected)
		}
	}
}

func TestEstimateTag(t *testing.T) {
	expected := map[CharType]Tag{
		Hangul: NNG, Latin: SL, Foreign: SL, Number: SN, CJK: SH,
		Ellipsis: SE, Period: SF, OMark: SO, Comma: SP, Quote: SS, Symbol: SW,
	}
	for typ, tag := range expected {
		got, err := EstimateTag(typ)
		if err != nil {
			t.Fatalf("EstimateTag(%s): %v", typ, err)
		}
		if got != tag {
			t.Errorf("EstimateTag(%s) = %s, ожидалось %s", typ, got, tag)
		}
	}

	for _, typ := range []CharType{Space, Unknown} {
		if _, err := EstimateTag(typ); !errors.Is(err, ErrInvalidState) {
			t.Errorf("EstimateTag(%s): ожидалась ErrInvalidState, получено %v", typ, err)
		}
	}
}

func TestCharacterize(t *testing.T) {
	t.Run("Диапазоны символов непрерывны и покрывают текст", func(t *testing.T) {
		for _, text := range []string{"", "a", "아버지가 방에 들어가신다.", " a \tàÿ　하하하 \n", "漢字 ＡＢＣ …!!"} {
			chars, err := Characterize([]byte(text))
			if err != nil {
				t.Fatalf("Characterize(%q): %v", text, err)
			}
			pos := 0
			for _, c := range chars {
				if c.Start != pos || c.End <= c.Start {
					t.Fatalf("Characterize(%q): символ %q занимает [%d, %d), ожидалось начало %d", text, c.Rune, c.Start, c.End, pos)
				}
				if string(c.Rune) != text[c.Start:c.End] {
					t.Errorf("Characterize(%q): символ %q не совпадает с байтами %q", text, c.Rune, text[c.Start:c.End])
				}
				pos = c.End
			}
			if pos != len(text) {
				t.Errorf("Characterize(%q): покрыто %d байт из %d", text, pos, len(text))
			}
		}
	})

	t.Run("Некорректный UTF-8", func(t *testing.T) {
		if _, err := Characterize([]byte{'a', 0xff, 'b'}); !errors.Is(err, ErrDecode) {
			t.Errorf("ожидалась ErrDecode, получено %v", err)
		}
	})

	t.Run("nil вместо текста", func(t *testing.T) {
		if _, err := Characterize(nil); !errors.Is(err, ErrNullInput) {
			t.Errorf("ожидалась ErrNullInput, получено %v", err)
		}
	})

	t.Run("Категория вычисляется один раз", func(t *testing.T) {
		c := Character{Rune: '한'}
		if c.Type() != Hangul || c.typ != Hangul {
			t.Fatalf("Type() = %s, typ = %s", c.Type(), c.typ)
		}
	})
}
