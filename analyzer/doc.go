/*
Package analyzer - морфологический анализатор корейского языка.

Предложение разбивается на слова (어절), для каждого слова по словарю морфем
ищутся все возможные разборы, из них строится решетка (lattice), а лучший путь
по решетке выбирается алгоритмом Витерби с весами признаков состояний и
весами переходов между тегами.

Все словари - это бинарные файлы фиксированного формата, которые отображаются в
память через mmap и читаются без копирования:

	morph.trie       узлы trie словаря морфем
	morph.val        значения (разборы) в виде кодовых точек UTF-32
	morph.val.len    длины значений (int16, с завершающим нулем)
	state_feat.trie  узлы trie признаков состояний
	state_feat.val   веса признаков (float32)
	trans_mat.bin    матрица переходов TagCount x TagCount (float32)

Подробная трассировка обхода trie, построения решетки и декодирования пишется в
трейсер с ключом 'hanal'.
*/
package analyzer

import (
	"github.com/npillmayer/schuko/tracing"
)

// Version - версия анализатора и формата ресурсов.
const Version = "0.1"

// tracer пишет в трейс с ключом 'hanal'.
func tracer() tracing.Trace {
	return tracing.Select("hanal")
}
