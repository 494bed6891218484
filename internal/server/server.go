/*
Package server - IPC-сервер анализатора: запросы и ответы в msgpack, подряд в одном потоке
(обычно stdin/stdout).

Запрос:

	{"id": "req1", "s": "아버지가 방에 들어가신다", "o": "top_k = 2"}

Ответ:

	{"id": "req1", "r": {...результат анализа...}, "t": 145}

Ошибка анализа не прерывает сервер, клиент получает {"id": "req1", "e": "...", "c": 1}.
*/
package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/steosofficial/hanal/analyzer"
)

// Request - запрос на анализ предложения.
type Request struct {
	ID       string `msgpack:"id"`
	Sentence string `msgpack:"s"`
	Options  string `msgpack:"o,omitempty"`
}

// Response - результат анализа и время обработки в микросекундах.
type Response struct {
	ID        string           `msgpack:"id"`
	Result    *analyzer.Result `msgpack:"r"`
	TimeTaken int64            `msgpack:"t"`
}

// ErrorResponse - ответ на запрос, который не удалось обработать.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Коды ошибок в ErrorResponse.
const (
	CodeAnalyze = 1 // ошибка анализа предложения
	CodeOption  = 2 // неверная строка опций
	CodeClosed  = 3 // анализатор не открыт
)

func errorCode(err error) int {
	switch {
	case errors.Is(err, analyzer.ErrOption):
		return CodeOption
	case errors.Is(err, analyzer.ErrClosed):
		return CodeClosed
	default:
		return CodeAnalyze
	}
}

// Server обрабатывает запросы одного клиента.
type Server struct {
	an     *analyzer.Analyzer
	logger *log.Logger
}

// New создает сервер поверх открытого анализатора.
func New(an *analyzer.Analyzer, logger *log.Logger) *Server {
	return &Server{an: an, logger: logger}
}

// Serve читает запросы из r до конца потока и пишет ответы в w.
// Ошибка возвращается только при сбое чтения или записи.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	dec := msgpack.NewDecoder(r)
	enc := msgpack.NewEncoder(w)
	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("ошибка чтения запроса: %w", err)
		}
		if err := enc.Encode(s.handle(req)); err != nil {
			return fmt.Errorf("ошибка записи ответа на %s: %w", req.ID, err)
		}
	}
}

func (s *Server) handle(req Request) any {
	start := time.Now()
	res, err := s.an.Analyze([]byte(req.Sentence), req.Options)
	if err != nil {
		s.logger.Warnf("Запрос %s: %v", req.ID, err)
		return ErrorResponse{ID: req.ID, Error: err.Error(), Code: errorCode(err)}
	}
	elapsed := time.Since(start).Microseconds()
	s.logger.Debugf("Запрос %s: %d токенов за %d мкс", req.ID, len(res.Tokens), elapsed)
	return Response{ID: req.ID, Result: res, TimeTaken: elapsed}
}
