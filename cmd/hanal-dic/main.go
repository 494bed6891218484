// Команда hanal-dic собирает бинарные ресурсы анализатора.
//
//	hanal-dic -dic morph.txt -model model.dump -out ./rsc
//
// morph.txt - строки "форма<TAB>разбор[<TAB>разбор...]", разбор в виде "лексема/ТЕГ + лексема/ТЕГ".
// model.dump - текстовый дамп модели crfsuite (crfsuite dump model.crfsuite).
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"github.com/steosofficial/hanal/dicbuild"
	"github.com/steosofficial/hanal/internal/logger"
)

func main() {
	dicPath := flag.String("dic", "", "Текстовый словарь морфем")
	modelPath := flag.String("model", "", "Текстовый дамп модели crfsuite")
	outDir := flag.String("out", "rsc", "Директория для ресурсов")
	debugMode := flag.Bool("d", false, "Отладочное логирование")
	flag.Parse()

	level := "info"
	if *debugMode {
		level = "debug"
	}
	if err := logger.Setup(level, *debugMode); err != nil {
		log.Fatalf("Ошибка настройки логирования: %v", err)
	}
	lg := logger.New("hanal-dic")

	if *dicPath == "" || *modelPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := dicbuild.BuildResources(*dicPath, *modelPath, *outDir); err != nil {
		lg.Fatalf("Ошибка сборки ресурсов: %v", err)
	}
	lg.Infof("Ресурсы собраны в %s", *outDir)
}
