package analyzer

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Options - параметры анализа.
//
// Строка опций - это список пар TOML через запятую, например
// "word_merge = 2, anal_back = false". Пустая строка означает значения по умолчанию.
type Options struct {
	WordMerge int  `toml:"word_merge"` // сколько подряд идущих слов объединять перед анализом
	AnalBack  bool `toml:"anal_back"`  // обратный проход справа налево (пока не применяется)
	Normalize bool `toml:"normalize"`  // нормализация NFC перед анализом
	TopK      int  `toml:"top_k"`      // сколько лучших путей возвращать
}

// DefaultOptions возвращает параметры по умолчанию.
func DefaultOptions() Options {
	return Options{WordMerge: 1, AnalBack: true, TopK: 1}
}

// ParseOptions разбирает строку опций поверх значений по умолчанию.
func ParseOptions(optStr string) (Options, error) {
	return DefaultOptions().Override(optStr)
}

// Override возвращает копию параметров, в которой заменены значения из строки опций.
func (o Options) Override(optStr string) (Options, error) {
	if strings.TrimSpace(optStr) == "" {
		return o, nil
	}

	doc := struct {
		Opt Options `toml:"opt"`
	}{Opt: o}
	md, err := toml.Decode("opt = {"+optStr+"}", &doc)
	if err != nil {
		return o, fmt.Errorf("%w '%s': %w", ErrOption, optStr, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return o, fmt.Errorf("%w '%s': неизвестный параметр %s", ErrOption, optStr, undecoded[0])
	}
	if err := doc.Opt.validate(); err != nil {
		return o, fmt.Errorf("%w '%s': %w", ErrOption, optStr, err)
	}
	return doc.Opt, nil
}

func (o Options) validate() error {
	if o.WordMerge < 1 {
		return fmt.Errorf("word_merge должен быть >= 1, получено %d", o.WordMerge)
	}
	if o.TopK < 1 {
		return fmt.Errorf("top_k должен быть >= 1, получено %d", o.TopK)
	}
	return nil
}

// String возвращает параметры в виде строки опций.
func (o Options) String() string {
	return fmt.Sprintf("word_merge = %d, anal_back = %t, normalize = %t, top_k = %d",
		o.WordMerge, o.AnalBack, o.Normalize, o.TopK)
}
