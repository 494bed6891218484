package analyzer

import (
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Имена файлов словаря морфем.
const (
	MorphTrieFile   = "morph.trie"
	MorphValFile    = "morph.val"
	MorphValLenFile = "morph.val.len"
)

// MorphDic - словарь морфем: trie по слогам и упакованные разборы для каждого ключа.
//
// Разборы декодируются лениво, при первом обращении к индексу, и кэшируются на все
// время жизни словаря. Каждая ячейка кэша записывается один раз через CAS, так что
// параллельные обращения к разным индексам не блокируют друг друга.
type MorphDic struct {
	trie    *Trie
	value   *mappedFile[rune]
	offsets []int // начало значения i в value (в кодовых единицах)
	lengths []int // длина значения i без завершающего нуля
	cache   []atomic.Pointer[[]Analysis]
}

// OpenMorphDic открывает словарь морфем из директории ресурсов.
func OpenMorphDic(dir string) (*MorphDic, error) {
	trie, err := OpenTrie(filepath.Join(dir, MorphTrieFile))
	if err != nil {
		return nil, err
	}
	value, err := openMapped[rune](filepath.Join(dir, MorphValFile))
	if err != nil {
		trie.Close()
		return nil, err
	}
	lens, err := openMapped[int16](filepath.Join(dir, MorphValLenFile))
	if err != nil {
		trie.Close()
		value.Close()
		return nil, err
	}
	// Таблица длин нужна только для построения индекса смещений.
	defer lens.Close()

	dic := &MorphDic{
		trie:    trie,
		value:   value,
		offsets: make([]int, lens.Len()),
		lengths: make([]int, lens.Len()),
		cache:   make([]atomic.Pointer[[]Analysis], lens.Len()),
	}
	sum := 0
	for i, l := range lens.data {
		if l < 1 {
			dic.Close()
			return nil, fmt.Errorf("%w: длина значения %d равна %d в '%s'", ErrOpen, i, l, dir)
		}
		dic.offsets[i] = sum
		dic.lengths[i] = int(l) - 1 // длина включает завершающий ноль
		sum += int(l)
	}
	if sum != value.Len() {
		dic.Close()
		return nil, fmt.Errorf("%w: несогласованный словарь морфем в '%s': сумма длин %d, размер значений %d",
			ErrOpen, dir, sum, value.Len())
	}

	log.Infof("Словарь морфем загружен: %d узлов, %d значений", trie.Size(), len(dic.offsets))
	return dic, nil
}

// Close освобождает ресурсы словаря.
func (d *MorphDic) Close() error {
	err := d.trie.Close()
	if verr := d.value.Close(); err == nil {
		err = verr
	}
	d.offsets, d.lengths, d.cache = nil, nil, nil
	return err
}

// Size - количество значений в словаре.
func (d *MorphDic) Size() int {
	return len(d.offsets)
}

// Lookup ищет все ключи словаря, являющиеся префиксами текста.
func (d *MorphDic) Lookup(text []rune) ([]Match, error) {
	return d.trie.SearchCommonPrefixMatches(text)
}

// Value возвращает разборы для индекса значения.
func (d *MorphDic) Value(idx int) ([]Analysis, error) {
	if idx < 0 || idx >= len(d.offsets) {
		return nil, fmt.Errorf("%w: индекс значения %d (всего %d)", ErrIndex, idx, len(d.offsets))
	}
	cell := &d.cache[idx]
	if cached := cell.Load(); cached != nil {
		return *cached, nil
	}

	start := d.offsets[idx]
	anals, err := ParseAnalyses(d.value.data[start : start+d.lengths[idx]])
	if err != nil {
		return nil, fmt.Errorf("значение %d: %w", idx, err)
	}
	// Если другая горутина успела раньше, берем ее результат: декодирование детерминировано.
	if !cell.CompareAndSwap(nil, &anals) {
		return *cell.Load(), nil
	}
	return anals, nil
}
