package analyzer

import (
	"fmt"
	"sync"
)

// Handle - дескриптор анализатора в реестре: поколение в старших 32 битах,
// номер ячейки в младших. 0 никогда не выдается.
type Handle uint64

func newHandle(gen uint32, slot int) Handle {
	return Handle(uint64(gen)<<32 | uint64(uint32(slot)))
}

func (h Handle) gen() uint32 { return uint32(h >> 32) }
func (h Handle) slot() int   { return int(uint32(h)) }

type registrySlot struct {
	gen uint32
	an  *Analyzer
}

// Registry хранит открытые анализаторы и выдает на них дескрипторы.
// Ячейки закрытых анализаторов переиспользуются с новым поколением, поэтому
// дескриптор закрытого анализатора больше никогда не станет действительным.
type Registry struct {
	mu    sync.Mutex
	slots []registrySlot
	free  []int
}

// NewRegistry создает пустой реестр.
func NewRegistry() *Registry {
	return &Registry{}
}

// Open открывает новый анализатор и регистрирует его.
func (r *Registry) Open(rscDir, optStr string) (Handle, error) {
	an := NewAnalyzer()
	if err := an.Open(rscDir, optStr); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var slot int
	if n := len(r.free); n > 0 {
		slot = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		slot = len(r.slots)
		r.slots = append(r.slots, registrySlot{})
	}
	s := &r.slots[slot]
	s.gen++
	s.an = an
	return newHandle(s.gen, slot), nil
}

// lookup возвращает ячейку дескриптора. Вызывается под r.mu.
func (r *Registry) lookup(h Handle) (*registrySlot, error) {
	slot := h.slot()
	if slot >= len(r.slots) || r.slots[slot].an == nil || r.slots[slot].gen != h.gen() {
		return nil, fmt.Errorf("%w: %#x", ErrHandle, uint64(h))
	}
	return &r.slots[slot], nil
}

// Get возвращает анализатор по дескриптору.
func (r *Registry) Get(h Handle) (*Analyzer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, err := r.lookup(h)
	if err != nil {
		return nil, err
	}
	return s.an, nil
}

// Close закрывает анализатор и освобождает дескриптор.
func (r *Registry) Close(h Handle) error {
	r.mu.Lock()
	s, err := r.lookup(h)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	an := s.an
	s.an = nil
	r.free = append(r.free, h.slot())
	r.mu.Unlock()

	return an.Close()
}

// PosTag анализирует предложение анализатором с дескриптором h.
func (r *Registry) PosTag(h Handle, sentence []byte, optStr string) (string, error) {
	an, err := r.Get(h)
	if err != nil {
		return "", err
	}
	return an.PosTag(sentence, optStr)
}

// Len - количество открытых анализаторов.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots) - len(r.free)
}
