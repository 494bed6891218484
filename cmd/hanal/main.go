/*
Команда hanal - морфологический анализ корейского текста.

По умолчанию читает предложения из stdin (по одному в строке) и печатает результат
в stdout. С флагом -serve работает как IPC-сервер: запросы и ответы в msgpack
(см. пакет internal/server).

	hanal -rsc ./rsc < input.txt
	hanal -rsc ./rsc -format json -opt "top_k = 3"
	hanal -config hanal.toml -serve

Флаги:

	-rsc string      директория ресурсов (по умолчанию из конфигурации или HANAL_RSC_DIR)
	-config string   файл конфигурации TOML
	-opt string      строка опций анализа, дополняет опции из конфигурации
	-format string   формат вывода: text, json, msgpack (по умолчанию text)
	-serve           режим IPC-сервера
	-d               отладочное логирование
	-version         показать версию
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/steosofficial/hanal/analyzer"
	"github.com/steosofficial/hanal/config"
	"github.com/steosofficial/hanal/internal/logger"
	"github.com/steosofficial/hanal/internal/server"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintln(os.Stderr, "\nВыход...")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Показать версию")
	rscDir := flag.String("rsc", "", "Директория ресурсов")
	configPath := flag.String("config", "", "Файл конфигурации TOML")
	optStr := flag.String("opt", "", "Строка опций анализа")
	format := flag.String("format", "text", "Формат вывода: text, json, msgpack")
	serveMode := flag.Bool("serve", false, "Режим IPC-сервера (msgpack через stdin/stdout)")
	debugMode := flag.Bool("d", false, "Отладочное логирование")
	flag.Parse()

	if *showVersion {
		fmt.Println("hanal", analyzer.Version)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}
	level, timestamp := cfg.Log.Level, cfg.Log.Timestamp
	if *debugMode {
		level, timestamp = "debug", true
	}
	if err := logger.Setup(level, timestamp); err != nil {
		log.Fatalf("Ошибка настройки логирования: %v", err)
	}
	lg := logger.New("hanal")

	if *rscDir == "" {
		*rscDir = cfg.Resource.Dir
	}
	if *rscDir == "" {
		lg.Fatalf("Не задана директория ресурсов: используйте -rsc, [resource] dir или %s", analyzer.EnvRscDir)
	}

	an := analyzer.NewAnalyzer()
	if err := an.Open(*rscDir, cfg.Options()); err != nil {
		lg.Fatalf("Ошибка открытия ресурсов: %v", err)
	}
	defer an.Close()

	if *serveMode {
		lg.Debug("Запуск IPC-сервера")
		if err := server.New(an, lg).Serve(os.Stdin, os.Stdout); err != nil {
			lg.Fatalf("Ошибка сервера: %v", err)
		}
		return
	}

	if err := analyzeLines(an, *optStr, *format, lg); err != nil {
		lg.Fatalf("%v", err)
	}
}

// analyzeLines анализирует stdin построчно. Ошибка в одном предложении не прерывает обработку.
func analyzeLines(an *analyzer.Analyzer, optStr, format string, lg *log.Logger) error {
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		res, err := an.Analyze(scanner.Bytes(), optStr)
		if err != nil {
			lg.Errorf("Строка %d: %v", lineNum, err)
			continue
		}
		if err := writeResult(out, res, format); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func writeResult(out *bufio.Writer, res *analyzer.Result, format string) error {
	switch format {
	case "text":
		_, err := fmt.Fprintf(out, "%s\n", res)
		return err
	case "json":
		data, err := res.JSON()
		if err != nil {
			return err
		}
		out.Write(data)
		return out.WriteByte('\n')
	case "msgpack":
		data, err := res.Msgpack()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("неизвестный формат вывода '%s'", format)
	}
}
