package analyzer

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Имена файлов весовых таблиц.
const (
	StateFeatTrieFile = "state_feat.trie"
	StateFeatValFile  = "state_feat.val"
	TransMatFile      = "trans_mat.bin"
)

// StateFeatDic - веса признаков состояний. Ключ признака в trie - буква тега
// ('A' + порядковый номер тега), за которой следует строка признака.
type StateFeatDic struct {
	trie  *Trie
	value *mappedFile[float32]
}

// OpenStateFeatDic открывает словарь признаков состояний из директории ресурсов.
func OpenStateFeatDic(dir string) (*StateFeatDic, error) {
	trie, err := OpenTrie(filepath.Join(dir, StateFeatTrieFile))
	if err != nil {
		return nil, err
	}
	value, err := openMapped[float32](filepath.Join(dir, StateFeatValFile))
	if err != nil {
		trie.Close()
		return nil, err
	}
	log.Infof("Словарь признаков состояний загружен: %d узлов, %d весов", trie.Size(), value.Len())
	return &StateFeatDic{trie: trie, value: value}, nil
}

// Close освобождает ресурсы словаря.
func (d *StateFeatDic) Close() error {
	err := d.trie.Close()
	if verr := d.value.Close(); err == nil {
		err = verr
	}
	return err
}

// StateFeatKey составляет ключ признака для тега.
func StateFeatKey(tag Tag, feat string) []rune {
	key := make([]rune, 0, len(feat)+1)
	key = append(key, rune('A'+int(tag)))
	return append(key, []rune(feat)...)
}

// StateFeatureWeight возвращает вес признака feat для тега tag.
// Отсутствие признака - не ошибка: его вес по определению 0.
func (d *StateFeatDic) StateFeatureWeight(tag Tag, feat string) float32 {
	if !tag.Valid() {
		return 0
	}
	idx, ok, err := d.trie.Find(StateFeatKey(tag, feat))
	if err != nil || !ok || idx >= d.value.Len() {
		return 0
	}
	return d.value.data[idx]
}

// TransMatrix - матрица весов переходов между тегами, TagCount x TagCount,
// хранится построчно как [to][from].
type TransMatrix struct {
	file *mappedFile[float32]
}

// OpenTransMatrix открывает матрицу переходов.
func OpenTransMatrix(path string) (*TransMatrix, error) {
	file, err := openMapped[float32](path)
	if err != nil {
		return nil, err
	}
	if file.Len() != TagCount*TagCount {
		file.Close()
		return nil, fmt.Errorf("%w: матрица переходов '%s' содержит %d весов, ожидается %d",
			ErrOpen, path, file.Len(), TagCount*TagCount)
	}
	return &TransMatrix{file: file}, nil
}

// Close освобождает отображение матрицы.
func (m *TransMatrix) Close() error {
	return m.file.Close()
}

// TransitionWeight возвращает вес перехода от тега from к тегу to.
func (m *TransMatrix) TransitionWeight(from, to Tag) (float32, error) {
	if !from.Valid() || !to.Valid() {
		return 0, fmt.Errorf("%w: переход %d -> %d (тегов %d)", ErrIndex, int(from), int(to), TagCount)
	}
	return m.file.data[int(to)*TagCount+int(from)], nil
}

// Weights объединяет обе весовые таблицы модели.
type Weights struct {
	States *StateFeatDic
	Trans  *TransMatrix
}

// OpenWeights открывает весовые таблицы из директории ресурсов.
func OpenWeights(dir string) (*Weights, error) {
	states, err := OpenStateFeatDic(dir)
	if err != nil {
		return nil, err
	}
	trans, err := OpenTransMatrix(filepath.Join(dir, TransMatFile))
	if err != nil {
		states.Close()
		return nil, err
	}
	return &Weights{States: states, Trans: trans}, nil
}

// Close освобождает обе таблицы.
func (w *Weights) Close() error {
	err := w.States.Close()
	if terr := w.Trans.Close(); err == nil {
		err = terr
	}
	return err
}
