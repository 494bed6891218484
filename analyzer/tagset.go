// tagset.go определяет набор тегов частей речи корпуса Sejong (세종 말뭉치).
// Порядковый номер тега совпадает с его позицией в алфавитно отсортированном
// списке мнемоник: именно так теги пронумерованы в матрице переходов и в ключах
// словаря признаков состояний.
package analyzer

import (
	"fmt"
)

// Tag - тег части речи из набора Sejong.
type Tag int

const (
	EC  Tag = iota // окончание: соединительное; 연결어미
	EF             // окончание: конечное; 종결어미
	EP             // окончание: непредконечное; 선어말어미
	ETM            // окончание: атрибутивное; 관형형전성어미
	ETN            // окончание: номинализирующее; 명사형전성어미
	IC             // междометие; 감탄사
	JC             // частица: соединительная; 접속조사
	JKB            // частица: обстоятельственная; 부사격조사
	JKC            // частица: дополнения; 보격조사
	JKG            // частица: родительная; 관형격조사
	JKO            // частица: винительная; 목적격조사
	JKQ            // частица: цитатная; 인용격조사
	JKS            // частица: именительная; 주격조사
	JKV            // частица: звательная; 호격조사
	JX             // частица: вспомогательная; 보조사
	MAG            // наречие: общее; 일반부사
	MAJ            // наречие: союзное; 접속부사
	MM             // определительное слово; 관형사
	NA             // нераспознаваемое; 분석불능범주
	NF             // предположительно существительное; 명사추정범주
	NNB            // существительное: зависимое; 의존명사
	NNG            // существительное: общее; 일반명사
	NNP            // существительное: собственное; 고유명사
	NP             // местоимение; 대명사
	NR             // числительное; 수사
	NV             // предположительно глагол; 동사추정범주
	SE             // символ: многоточие; 줄임표
	SF             // символ: точка, вопросительный и восклицательный знаки; 마침표, 물음표, 느낌표
	SH             // символ: иероглиф; 한자
	SL             // символ: иностранное слово; 외국어
	SN             // символ: число; 숫자
	SO             // символ: тильда, знак пропуска; 붙임표
	SP             // символ: запятая, точка в середине, двоеточие, косая черта; 쉼표, 가운뎃점, 콜론, 빗금
	SS             // символ: кавычки, скобки, тире; 따옴표, 괄호, 줄표
	SW             // символ: прочие; 기타 기호
	VA             // прилагательное; 형용사
	VCN            // связка: отрицательная; 부정지정사
	VCP            // связка: положительная; 긍정지정사
	VV             // глагол; 동사
	VX             // вспомогательный предикат; 보조용언
	XPN            // префикс существительного; 체언접두사
	XR             // корень; 어근
	XSA            // суффикс прилагательного; 형용사파생접미사
	XSN            // суффикс существительного; 명사파생접미사
	XSV            // суффикс глагола; 동사파생접미사

	// TagCount - размер набора тегов. Матрица переходов имеет размер TagCount x TagCount.
	TagCount = int(XSV) + 1
)

// tagMnemonics - строковые мнемоники тегов в порядке их номеров.
var tagMnemonics = [TagCount]string{
	"EC", "EF", "EP", "ETM", "ETN", "IC", "JC", "JKB", "JKC", "JKG",
	"JKO", "JKQ", "JKS", "JKV", "JX", "MAG", "MAJ", "MM", "NA", "NF",
	"NNB", "NNG", "NNP", "NP", "NR", "NV", "SE", "SF", "SH", "SL",
	"SN", "SO", "SP", "SS", "SW", "VA", "VCN", "VCP", "VV", "VX",
	"XPN", "XR", "XSA", "XSN", "XSV",
}

// mnemonicToTag - обратная карта для разбора значений словаря.
var mnemonicToTag = func() map[string]Tag {
	m := make(map[string]Tag, TagCount)
	for i, s := range tagMnemonics {
		m[s] = Tag(i)
	}
	return m
}()

// Valid сообщает, лежит ли номер тега в диапазоне [0, TagCount).
func (t Tag) Valid() bool {
	return t >= 0 && int(t) < TagCount
}

// String возвращает мнемонику тега. Для неверного номера - "Tag(N)".
func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagMnemonics[t]
}

// ParseTag преобразует мнемонику ("NNG", "JKS", ...) в тег.
func ParseTag(s string) (Tag, error) {
	tag, ok := mnemonicToTag[s]
	if !ok {
		return 0, fmt.Errorf("%w: неизвестный тег '%s'", ErrFormat, s)
	}
	return tag, nil
}

// TagSet - это множество тегов.
type TagSet map[Tag]struct{}

// Группы тегов по классам слов (품사 분류). Используются функцией TagClass,
// чтобы в результате анализа у каждой морфемы был указан ее класс.
var (
	// substantiveTags - 체언 (существительные, местоимения, числительные).
	substantiveTags = TagSet{NNG: {}, NNP: {}, NNB: {}, NP: {}, NR: {}}

	// predicateTags - 용언 (глаголы, прилагательные, связки).
	predicateTags = TagSet{VV: {}, VA: {}, VX: {}, VCP: {}, VCN: {}}

	// modifierTags - 수식언 (определительные слова и наречия).
	modifierTags = TagSet{MM: {}, MAG: {}, MAJ: {}}

	// independentTags - 독립언 (междометия).
	independentTags = TagSet{IC: {}}

	// relationalTags - 관계언 (частицы).
	relationalTags = TagSet{JKS: {}, JKC: {}, JKG: {}, JKO: {}, JKB: {}, JKV: {}, JKQ: {}, JX: {}, JC: {}}

	// dependentTags - 의존형태 (окончания, аффиксы, корни).
	dependentTags = TagSet{EP: {}, EF: {}, EC: {}, ETN: {}, ETM: {}, XPN: {}, XSN: {}, XSV: {}, XSA: {}, XR: {}}

	// symbolTags - 기호 (знаки и нераспознанные категории).
	symbolTags = TagSet{SF: {}, SE: {}, SS: {}, SP: {}, SO: {}, SW: {}, SH: {}, SL: {}, SN: {}, NF: {}, NV: {}, NA: {}}
)

// Классы слов.
const (
	ClassSubstantive = "체언"
	ClassPredicate   = "용언"
	ClassModifier    = "수식언"
	ClassIndependent = "독립언"
	ClassRelational  = "관계언"
	ClassDependent   = "의존형태"
	ClassSymbol      = "기호"
)

// TagClass возвращает класс слова, к которому относится тег. Для неверного тега - пустую строку.
func TagClass(t Tag) string {
	switch {
	case inSet(t, substantiveTags):
		return ClassSubstantive
	case inSet(t, predicateTags):
		return ClassPredicate
	case inSet(t, modifierTags):
		return ClassModifier
	case inSet(t, independentTags):
		return ClassIndependent
	case inSet(t, relationalTags):
		return ClassRelational
	case inSet(t, dependentTags):
		return ClassDependent
	case inSet(t, symbolTags):
		return ClassSymbol
	default:
		return ""
	}
}

func inSet(t Tag, set TagSet) bool {
	_, ok := set[t]
	return ok
}
