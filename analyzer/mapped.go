package analyzer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"
)

// mappedFile - файл ресурса, отображенный в память только для чтения.
// data - "виртуальный" срез записей типа T поверх mmap-области, данные не копируются в кучу Go.
type mappedFile[T any] struct {
	mm   mmap.MMap
	data []T
}

// openMapped отображает файл в память и проверяет, что его размер кратен размеру записи.
// Пустой файл тоже считается ошибкой: в любом ресурсе есть хотя бы одна запись.
func openMapped[T any](path string) (*mappedFile[T], error) {
	if err := ensureResource(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' - это директория", ErrOpen, path)
	}

	var rec T
	recSize := int64(unsafe.Sizeof(rec))
	if info.Size() == 0 || info.Size()%recSize != 0 {
		return nil, fmt.Errorf("%w: размер файла '%s' (%d) не кратен размеру записи (%d)", ErrOpen, path, info.Size(), recSize)
	}

	// Файл не копируется в ОЗУ, ОС сама подгружает нужные страницы по мере обращения к ним.
	mm, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка mmap.Map для '%s': %w", ErrOpen, path, err)
	}
	return &mappedFile[T]{mm: mm, data: bytesToSlice[T](mm)}, nil
}

// Len - количество записей.
func (m *mappedFile[T]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.data)
}

// Close освобождает отображение. Повторный вызов безопасен.
func (m *mappedFile[T]) Close() error {
	if m == nil || m.mm == nil {
		return nil
	}
	err := m.mm.Unmap()
	m.mm, m.data = nil, nil
	return err
}

// bytesToSlice создает срез, указывающий на область байт, без копирования самих данных.
func bytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/size)
}

// ensureResource проверяет, что файл ресурса существует. Большие ресурсы могут
// распространяться частями (morph.val_aa, morph.val_ab, ...): если целого файла нет,
// части объединяются в него.
func ensureResource(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}

	log.Debugf("Файл ресурса '%s' не найден. Ищем части для объединения.", path)
	if err := mergeFilesWithPrefix(filepath.Dir(path), filepath.Base(path)+"_", path); err != nil {
		return fmt.Errorf("%w: ресурс '%s' не найден: %w", ErrOpen, path, err)
	}
	return nil
}

// errNoParts - частей ресурса нет.
var errNoParts = errors.New("не найдено файлов с префиксом")

// mergeFilesWithPrefix объединяет файлы с заданным префиксом в один файл.
// Части сортируются по имени: суффиксы `aa`, `ab`, ... дают правильный порядок.
func mergeFilesWithPrefix(sourceDir, prefix, outputPath string) error {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return err
	}

	var partFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) {
			partFiles = append(partFiles, filepath.Join(sourceDir, e.Name()))
		}
	}
	if len(partFiles) == 0 {
		return fmt.Errorf("%w '%s' в директории '%s'", errNoParts, prefix, sourceDir)
	}
	sort.Strings(partFiles)

	// Пишем во временный файл и переименовываем, чтобы параллельный open не увидел половину файла.
	tmpPath := outputPath + ".tmp"
	outFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("ошибка создания выходного файла %s: %w", tmpPath, err)
	}

	for _, partPath := range partFiles {
		if err := appendFile(outFile, partPath); err != nil {
			outFile.Close()
			os.Remove(tmpPath)
			return err
		}
	}
	if err := outFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return err
	}

	log.Infof("Части ресурса (%d шт.) объединены в файл: %s", len(partFiles), outputPath)
	return nil
}

func appendFile(out io.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ошибка открытия части файла %s: %w", path, err)
	}
	defer in.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("ошибка копирования данных из %s: %w", path, err)
	}
	return nil
}
