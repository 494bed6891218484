package analyzer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"
)

// EnvRscDir - переменная окружения с путем к директории ресурсов.
const EnvRscDir = "HANAL_RSC_DIR"

// resources - все словари, открытые из одной директории ресурсов.
type resources struct {
	dic     *MorphDic
	weights *Weights
}

func openResources(dir string) (*resources, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: директория ресурсов: %w", ErrOpen, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' не является директорией", ErrOpen, dir)
	}

	dic, err := OpenMorphDic(dir)
	if err != nil {
		return nil, err
	}
	weights, err := OpenWeights(dir)
	if err != nil {
		dic.Close()
		return nil, err
	}
	return &resources{dic: dic, weights: weights}, nil
}

func (r *resources) close() error {
	return errors.Join(r.dic.Close(), r.weights.Close())
}

// Analyzer - морфологический анализатор. Безопасен для одновременного использования
// из нескольких горутин: Analyze выполняется параллельно, Open и Close ждут
// завершения текущих вызовов.
type Analyzer struct {
	mu        sync.RWMutex
	rsc       *resources
	rscDir    string
	opts      Options
	newScorer func(w *Weights) Scorer
}

// NewAnalyzer создает анализатор без ресурсов. Перед анализом нужно вызвать Open.
func NewAnalyzer() *Analyzer {
	return &Analyzer{opts: DefaultOptions()}
}

// LoadAnalyzer - конструктор анализатора с ресурсами по умолчанию.
// Директория берется из переменной окружения HANAL_RSC_DIR, иначе это rsc/ рядом с пакетом.
func LoadAnalyzer() (*Analyzer, error) {
	rscDir := os.Getenv(EnvRscDir)
	if rscDir == "" {
		_, currentFilePath, _, ok := runtime.Caller(0)
		if !ok {
			return nil, errors.New("не удалось определить путь к пакету analyzer")
		}
		rscDir = filepath.Join(filepath.Dir(currentFilePath), "rsc")
	}

	a := NewAnalyzer()
	if err := a.Open(rscDir, ""); err != nil {
		return nil, fmt.Errorf("%w (директорию можно задать переменной окружения %s)", err, EnvRscDir)
	}
	return a, nil
}

// Open открывает ресурсы из директории rscDir и задает опции по умолчанию для Analyze.
// Повторный вызов заменяет ресурсы целиком; при ошибке остаются прежние ресурсы и опции.
func (a *Analyzer) Open(rscDir, optStr string) error {
	opts, err := ParseOptions(optStr)
	if err != nil {
		return err
	}
	rsc, err := openResources(rscDir)
	if err != nil {
		return err
	}

	a.mu.Lock()
	old := a.rsc
	a.rsc, a.rscDir, a.opts = rsc, rscDir, opts
	a.mu.Unlock()

	if old != nil {
		if err := old.close(); err != nil {
			log.Warnf("Ошибка при закрытии прежних ресурсов: %v", err)
		}
	}
	if opts.AnalBack {
		log.Debug("Обратный проход (anal_back) не применяется, строится только прямая решетка")
	}
	log.Infof("Анализатор открыт: %s [%s]", rscDir, opts)
	return nil
}

// Close освобождает ресурсы. Закрытый анализатор можно открыть снова.
func (a *Analyzer) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rsc == nil {
		return nil
	}
	err := a.rsc.close()
	a.rsc = nil
	log.Infof("Анализатор закрыт: %s", a.rscDir)
	return err
}

// Options возвращает опции по умолчанию, заданные при открытии.
func (a *Analyzer) Options() Options {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.opts
}

// SetScorer задает оценку переходов для декодера. nil возвращает оценку по умолчанию
// (NewTransitionScorer).
func (a *Analyzer) SetScorer(newScorer func(w *Weights) Scorer) {
	a.mu.Lock()
	a.newScorer = newScorer
	a.mu.Unlock()
}

// Analyze анализирует предложение. optStr переопределяет опции, заданные в Open.
func (a *Analyzer) Analyze(sentence []byte, optStr string) (*Result, error) {
	if sentence == nil {
		return nil, fmt.Errorf("%w: предложение", ErrNullInput)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.rsc == nil {
		return nil, ErrClosed
	}
	opts, err := a.opts.Override(optStr)
	if err != nil {
		return nil, err
	}

	if opts.Normalize {
		sentence = norm.NFC.Bytes(sentence)
	}
	words, err := Tokenize(sentence)
	if err != nil {
		return nil, err
	}
	if words, err = MergeWords(words, opts.WordMerge); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return &Result{Sentence: string(sentence), Tokens: []Token{}}, nil
	}

	lat, err := BuildLattice(a.rsc.dic, words)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("решетка:\n%s", lat)

	paths, err := DecodeN(lat, a.scorer(), opts.TopK)
	if err != nil {
		return nil, err
	}
	return newResult(string(sentence), words, lat, paths)
}

func (a *Analyzer) scorer() Scorer {
	if a.newScorer != nil {
		return a.newScorer(a.rsc.weights)
	}
	return NewTransitionScorer(a.rsc.weights)
}

// PosTag анализирует предложение и возвращает результат в виде JSON.
func (a *Analyzer) PosTag(sentence []byte, optStr string) (string, error) {
	res, err := a.Analyze(sentence, optStr)
	if err != nil {
		return "", err
	}
	data, err := res.JSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// AnalyzeList анализирует срез предложений в конкурентном режиме, используя пул воркеров.
// Результаты идут в порядке входных предложений. При ошибках возвращается первая обнаруженная.
func (a *Analyzer) AnalyzeList(sentences []string, optStr string) ([]*Result, error) {
	const chunkSize = 64
	numWorkers := runtime.NumCPU()

	type chunk struct {
		start int
		items []string
	}
	// Канал для отправки "пакетов" (чанков) в воркеры.
	chunksCh := make(chan chunk, numWorkers)
	results := make([]*Result, len(sentences))

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	// Каждый воркер пишет только в свой диапазон results, поэтому блокировка не нужна.
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for c := range chunksCh {
				for j, sent := range c.items {
					res, err := a.Analyze([]byte(sent), optStr)
					if err != nil {
						errOnce.Do(func() {
							firstErr = fmt.Errorf("предложение %d: %w", c.start+j, err)
						})
						continue
					}
					results[c.start+j] = res
				}
			}
		}()
	}

	// Диспетчер нарезает предложения на чанки.
	for i := 0; i < len(sentences); i += chunkSize {
		end := min(i+chunkSize, len(sentences))
		chunksCh <- chunk{start: i, items: sentences[i:end]}
	}
	close(chunksCh)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
