// Сборка: go build -buildmode=c-shared -o libhanal.so ./binding
package main

// #include <stdlib.h>
import "C"

import (
	"sync"
	"unsafe"

	"github.com/charmbracelet/log"

	"github.com/steosofficial/hanal/analyzer"
)

var (
	registry = analyzer.NewRegistry()

	versionOnce sync.Once
	versionStr  *C.char
)

//export hanal_version
func hanal_version() *C.char {
	// Строка версии живет до конца процесса, освобождать ее не нужно.
	versionOnce.Do(func() { versionStr = C.CString(analyzer.Version) })
	return versionStr
}

// hanal_open открывает анализатор и возвращает дескриптор, либо 0 при ошибке.
//
//export hanal_open
func hanal_open(rscDir, optStr *C.char) C.ulonglong {
	h, err := registry.Open(C.GoString(rscDir), C.GoString(optStr))
	if err != nil {
		log.Errorf("hanal_open: %v", err)
		return 0
	}
	return C.ulonglong(h)
}

// hanal_close закрывает анализатор. Возвращает 0 или -1 для неизвестного дескриптора.
//
//export hanal_close
func hanal_close(handle C.ulonglong) C.int {
	if err := registry.Close(analyzer.Handle(handle)); err != nil {
		log.Errorf("hanal_close: %v", err)
		return -1
	}
	return 0
}

// hanal_pos_tag возвращает результат анализа в JSON, либо NULL при ошибке.
// Строку нужно освободить через hanal_free.
//
//export hanal_pos_tag
func hanal_pos_tag(handle C.ulonglong, sent, optStr *C.char) *C.char {
	if sent == nil {
		log.Errorf("hanal_pos_tag: %v", analyzer.ErrNullInput)
		return nil
	}
	res, err := registry.PosTag(analyzer.Handle(handle), []byte(C.GoString(sent)), C.GoString(optStr))
	if err != nil {
		log.Errorf("hanal_pos_tag: %v", err)
		return nil
	}
	return C.CString(res)
}

//export hanal_free
func hanal_free(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
