package analyzer

import (
	"fmt"
	"sort"
)

// BOS - предшественник узлов, с которых начинается предложение.
const BOS = -1

// Scorer оценивает переход от узла prev (или BOS) к узлу next.
type Scorer interface {
	Score(lat *Lattice, prev, next int) (float64, error)
}

// ScorerFunc позволяет использовать обычную функцию как Scorer.
type ScorerFunc func(lat *Lattice, prev, next int) (float64, error)

func (f ScorerFunc) Score(lat *Lattice, prev, next int) (float64, error) {
	return f(lat, prev, next)
}

// FeatureFunc возвращает признаки состояния для морфемы morph узла node,
// если слева от узла стоит prev (или BOS).
type FeatureFunc func(lat *Lattice, prev, node, morph int) []string

// TransitionScorer - оценка по весам модели: переходы между тегами соседних морфем
// (внутри разбора и на стыке узлов) плюс веса признаков состояний каждой морфемы.
// Переход из BOS весит 0. При Features == nil признаки состояний не учитываются.
type TransitionScorer struct {
	Weights  *Weights
	Features FeatureFunc
}

// NewTransitionScorer создает оценку с шаблоном признаков SejongFeatures.
func NewTransitionScorer(w *Weights) *TransitionScorer {
	return &TransitionScorer{Weights: w, Features: SejongFeatures}
}

func (s *TransitionScorer) Score(lat *Lattice, prev, next int) (float64, error) {
	anal := lat.Nodes[next].Analysis
	score := 0.0
	for i, m := range anal {
		var from Tag
		switch {
		case i > 0:
			from = anal[i-1].Tag
		case prev != BOS:
			from = lat.Nodes[prev].Analysis.LastTag()
		default:
			from = -1
		}
		if from >= 0 {
			w, err := s.Weights.Trans.TransitionWeight(from, m.Tag)
			if err != nil {
				return 0, err
			}
			score += float64(w)
		}
		if s.Features == nil {
			continue
		}
		for _, feat := range s.Features(lat, prev, next, i) {
			score += float64(s.Weights.States.StateFeatureWeight(m.Tag, feat))
		}
	}
	return score, nil
}

// SejongFeatures - шаблон признаков, на котором обучается модель:
// лексема и поверхность морфемы, лексемы соседних морфем, поверхность соседнего
// слева узла и признаки границ слова (LSP, RSP).
// Правые соседи известны только внутри разбора, EOS - только в конце предложения.
func SejongFeatures(lat *Lattice, prev, node, morph int) []string {
	anal := lat.Nodes[node].Analysis
	surface := lat.Surface(node)
	feats := []string{"L_0=" + anal[morph].Lex, "S_0=" + surface}

	switch {
	case morph > 0:
		feats = append(feats, "L-1="+anal[morph-1].Lex)
	case prev != BOS:
		prevAnal := lat.Nodes[prev].Analysis
		feats = append(feats, "L-1="+prevAnal[len(prevAnal)-1].Lex)
	default:
		feats = append(feats, "BOS")
	}

	last := morph == len(anal)-1
	switch {
	case !last:
		feats = append(feats, "L+1="+anal[morph+1].Lex)
	case lat.Nodes[node].End() == lat.Size():
		feats = append(feats, "EOS")
	}

	if prev != BOS {
		feats = append(feats, "S-1="+lat.Surface(prev))
	}
	if morph == 0 && lat.IsWordBegin(node) {
		feats = append(feats, "LSP")
	}
	if last && lat.IsWordEnd(node) {
		feats = append(feats, "RSP")
	}
	return feats
}

// Path - путь по решетке: индексы узлов слева направо и суммарная оценка.
type Path struct {
	Nodes []int
	Score float64
}

// candidate - вход в список лучших путей, заканчивающихся в узле.
type candidate struct {
	score float64
	prev  int // узел-предшественник или BOS
	rank  int // номер пути в списке предшественника
}

// Decode находит лучший путь по решетке алгоритмом Витерби.
func Decode(lat *Lattice, scorer Scorer) (Path, error) {
	paths, err := DecodeN(lat, scorer, 1)
	if err != nil {
		return Path{}, err
	}
	return paths[0], nil
}

// DecodeN находит до k лучших путей по убыванию оценки.
// При равных оценках выигрывает предшественник, добавленный в решетку раньше.
func DecodeN(lat *Lattice, scorer Scorer, k int) ([]Path, error) {
	if k < 1 {
		k = 1
	}
	// Индексы узлов топологически упорядочены, поэтому достаточно одного прохода.
	best := make([][]candidate, len(lat.Nodes))
	for idx := range lat.Nodes {
		node := &lat.Nodes[idx]
		var cands []candidate
		if node.Start == 0 {
			s, err := scorer.Score(lat, BOS, idx)
			if err != nil {
				return nil, err
			}
			cands = append(cands, candidate{score: s, prev: BOS})
		}
		for _, prev := range node.Left {
			if len(best[prev]) == 0 {
				continue
			}
			s, err := scorer.Score(lat, prev, idx)
			if err != nil {
				return nil, err
			}
			for rank, pc := range best[prev] {
				cands = append(cands, candidate{score: pc.score + s, prev: prev, rank: rank})
			}
		}
		best[idx] = topK(cands, k)
	}

	var finals []candidate
	if len(lat.ByEnd) > 1 {
		for _, idx := range lat.ByEnd[len(lat.ByEnd)-1] {
			for rank, c := range best[idx] {
				finals = append(finals, candidate{score: c.score, prev: idx, rank: rank})
			}
		}
	}
	if len(finals) == 0 {
		return nil, fmt.Errorf("%w: нет узлов на последней позиции %d", ErrInvariantViolation, lat.Size()-1)
	}
	finals = topK(finals, k)

	paths := make([]Path, 0, len(finals))
	for _, f := range finals {
		paths = append(paths, backtrace(best, f))
	}
	tracer().Debugf("декодирование: %d узлов, лучшая оценка %.4f", len(lat.Nodes), paths[0].Score)
	return paths, nil
}

// topK оставляет k лучших кандидатов. Сортировка устойчивая, поэтому при равенстве
// сохраняется порядок добавления.
func topK(cands []candidate, k int) []candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})
	if len(cands) > k {
		cands = cands[:k]
	}
	return cands
}

func backtrace(best [][]candidate, final candidate) Path {
	var nodes []int
	node, rank := final.prev, final.rank
	for node != BOS {
		nodes = append(nodes, node)
		c := best[node][rank]
		node, rank = c.prev, c.rank
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return Path{Nodes: nodes, Score: final.score}
}
