// char.go содержит классификацию символов и разбиение UTF-8 текста на символы
// с сохранением их байтовых позиций в исходном тексте.
package analyzer

import (
	"fmt"
	"unicode/utf8"
)

// CharType - категория символа.
type CharType int

const (
	Unknown  CharType = iota // не определена (нулевое значение, Classify его не возвращает)
	Space                    // пробельные символы
	Hangul                   // слоги и джамо хангыля
	Latin                    // латиница, включая полноширинную и Latin-1
	Number                   // цифры
	CJK                      // иероглифы
	Foreign                  // все, что не попало в остальные категории
	Ellipsis                 // многоточие
	Period                   // точка, вопросительный и восклицательный знаки
	OMark                    // тильда и знаки пропуска
	Comma                    // запятая, точка в середине, двоеточие, косая черта
	Quote                    // кавычки, скобки, тире
	Symbol                   // прочие знаки
)

var charTypeNames = [...]string{
	Unknown: "UNKNOWN", Space: "SPACE", Hangul: "HANGUL", Latin: "LATIN", Number: "NUMBER",
	CJK: "CJK", Foreign: "FOREIGN", Ellipsis: "ELLIPSIS", Period: "PERIOD", OMark: "OMARK",
	Comma: "COMMA", Quote: "QUOTE", Symbol: "SYMBOL",
}

func (t CharType) String() string {
	if t < 0 || int(t) >= len(charTypeNames) {
		return fmt.Sprintf("CharType(%d)", int(t))
	}
	return charTypeNames[t]
}

// MergeStrategy определяет, как соседние символы объединяются в одно неизвестное слово.
type MergeStrategy int

const (
	Separately MergeStrategy = iota // каждый символ отдельно
	ByChar                          // только одинаковые символы ("...", "!!!")
	ByType                          // символы одной категории
)

// Пунктуация задается перечислением. Все, что не попало ни в один диапазон и
// ни в одно из множеств ниже, считается Foreign.
var (
	spaceChars = map[rune]struct{}{
		' ': {}, '\t': {}, '\v': {}, '\r': {}, '\n': {}, '　': {},
	}
	ellipsisChars = map[rune]struct{}{
		'…': {}, '‥': {}, '⋯': {},
	}
	periodChars = map[rune]struct{}{
		'.': {}, '?': {}, '!': {}, '。': {}, '．': {}, '？': {}, '！': {},
	}
	oMarkChars = map[rune]struct{}{
		'~': {}, '∼': {}, '～': {}, '-': {}, '○': {}, '×': {},
	}
	commaChars = map[rune]struct{}{
		',': {}, '·': {}, '・': {}, ':': {}, ';': {}, '/': {}, '、': {},
		'，': {}, '：': {}, '；': {}, '／': {},
	}
	quoteChars = map[rune]struct{}{
		'"': {}, '\'': {}, '`': {}, '(': {}, ')': {}, '[': {}, ']': {}, '{': {}, '}': {}, '<': {}, '>': {},
		'‘': {}, '’': {}, '“': {}, '”': {}, '‚': {}, '„': {}, '–': {}, '—': {}, '―': {},
		'〈': {}, '〉': {}, '《': {}, '》': {}, '「': {}, '」': {}, '『': {}, '』': {}, '【': {}, '】': {},
		'〔': {}, '〕': {}, '（': {}, '）': {}, '［': {}, '］': {}, '｛': {}, '｝': {}, '＜': {}, '＞': {},
		'＂': {}, '＇': {},
	}
	symbolChars = map[rune]struct{}{
		'#': {}, '$': {}, '%': {}, '&': {}, '*': {}, '+': {}, '=': {}, '@': {}, '\\': {}, '^': {}, '_': {}, '|': {},
		'÷': {}, '＃': {}, '＄': {}, '％': {}, '＆': {}, '＊': {}, '＋': {}, '＝': {}, '＠': {}, '＼': {}, '＾': {},
		'＿': {}, '｜': {}, '￦': {}, '￥': {}, '￡': {}, '￠': {},
	}
)

// symbolRanges - блоки Unicode, целиком относящиеся к Symbol.
var symbolRanges = [][2]rune{
	{0x00A1, 0x00BF}, // знаки Latin-1
	{0x2010, 0x206F}, // общая пунктуация
	{0x20A0, 0x20CF}, // валюты
	{0x2100, 0x214F}, // буквоподобные символы
	{0x2190, 0x21FF}, // стрелки
	{0x2200, 0x22FF}, // математические операторы
	{0x2300, 0x23FF}, // технические символы
	{0x2460, 0x24FF}, // символы в кружках
	{0x2500, 0x27BF}, // рамки, геометрические фигуры, дингбаты
	{0x3000, 0x303F}, // знаки CJK
	{0x3200, 0x33FF}, // CJK в кружках и единицы измерения
}

// Classify определяет категорию символа. Функция чистая и определена для любого rune.
func Classify(r rune) CharType {
	if _, ok := spaceChars[r]; ok {
		return Space
	}
	switch {
	case r >= 0xAC00 && r <= 0xD7A3, // слоги
		r >= 0x1100 && r <= 0x11FF, // джамо
		r >= 0x3130 && r <= 0x318F, // совместимые джамо
		r >= 0xA960 && r <= 0xA97F,
		r >= 0xD7B0 && r <= 0xD7FF:
		return Hangul
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z',
		r >= 0xFF21 && r <= 0xFF3A, r >= 0xFF41 && r <= 0xFF5A,
		r >= 0x00C0 && r <= 0x00FF && r != 0x00D7 && r != 0x00F7,
		r >= 0x0100 && r <= 0x024F:
		return Latin
	case r >= '0' && r <= '9', r >= 0xFF10 && r <= 0xFF19:
		return Number
	case r >= 0x4E00 && r <= 0x9FFF,
		r >= 0x3400 && r <= 0x4DBF,
		r >= 0xF900 && r <= 0xFAFF,
		r >= 0x2E80 && r <= 0x2EFF,
		r >= 0x2F00 && r <= 0x2FDF:
		return CJK
	}
	// Порядок важен: конкретные множества проверяются раньше диапазонов Symbol,
	// которые их перекрывают (например, '…' лежит в общей пунктуации).
	if _, ok := ellipsisChars[r]; ok {
		return Ellipsis
	}
	if _, ok := periodChars[r]; ok {
		return Period
	}
	if _, ok := oMarkChars[r]; ok {
		return OMark
	}
	if _, ok := commaChars[r]; ok {
		return Comma
	}
	if _, ok := quoteChars[r]; ok {
		return Quote
	}
	if _, ok := symbolChars[r]; ok {
		return Symbol
	}
	for _, rng := range symbolRanges {
		if r >= rng[0] && r <= rng[1] {
			return Symbol
		}
	}
	return Foreign
}

// MergeStrategyOf возвращает стратегию объединения для категории.
func MergeStrategyOf(t CharType) MergeStrategy {
	switch t {
	case Ellipsis, Period, OMark:
		return ByChar
	case Comma, Quote, Symbol:
		return Separately
	default:
		return ByType
	}
}

// EstimateTag возвращает тег, который получает неизвестное слово, начинающееся с символа категории t.
// Для Space и Unknown тег не определен: такой вызов означает ошибку в логике вызывающего кода.
func EstimateTag(t CharType) (Tag, error) {
	switch t {
	case Hangul:
		return NNG, nil
	case Latin, Foreign:
		return SL, nil
	case Number:
		return SN, nil
	case CJK:
		return SH, nil
	case Ellipsis:
		return SE, nil
	case Period:
		return SF, nil
	case OMark:
		return SO, nil
	case Comma:
		return SP, nil
	case Quote:
		return SS, nil
	case Symbol:
		return SW, nil
	default:
		return 0, fmt.Errorf("%w: нет тега для категории %s", ErrInvalidState, t)
	}
}

// Character - декодированный символ и его байтовый диапазон [Start, End) в исходном тексте.
type Character struct {
	Rune  rune
	Start int
	End   int
	typ   CharType // вычисляется при первом обращении к Type
}

// Type возвращает категорию символа. Вычисляется один раз.
func (c *Character) Type() CharType {
	if c.typ == Unknown {
		c.typ = Classify(c.Rune)
	}
	return c.typ
}

// IsSpace сообщает, является ли символ пробельным.
func (c *Character) IsSpace() bool {
	return c.Type() == Space
}

// Characterize разбивает UTF-8 текст на символы. nil вместо текста - ErrNullInput,
// некорректная последовательность байт - ErrDecode с позицией ошибки.
func Characterize(text []byte) ([]Character, error) {
	if text == nil {
		return nil, fmt.Errorf("%w: текст", ErrNullInput)
	}
	chars := make([]Character, 0, utf8.RuneCount(text))
	for pos := 0; pos < len(text); {
		r, size := utf8.DecodeRune(text[pos:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: неверная последовательность байт в позиции %d", ErrDecode, pos)
		}
		chars = append(chars, Character{Rune: r, Start: pos, End: pos + size})
		pos += size
	}
	return chars, nil
}
