package analyzer

import (
	"github.com/mcncl/jsoncore/internal/document"
	"github.com/mcncl/jsoncore/internal/models"
)

// Analyzer walks a document and collects shape statistics
type Analyzer struct {
	stats models.Stats
	// seen is reused between objects when counting repeated keys
	seen map[string]int
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{seen: make(map[string]int)}
}

// Analyze returns the statistics of the tree rooted at root. Depth counts
// containers: a scalar root has depth 0, an empty object or array depth 1.
func (a *Analyzer) Analyze(root document.Value) models.Stats {
	a.stats = models.Stats{}
	a.analyzeNode(root, 0)
	return a.stats
}

func (a *Analyzer) analyzeNode(v document.Value, depth int) {
	switch v.Kind() {
	case document.KindNull:
		a.stats.Nulls++
	case document.KindBool:
		a.stats.Bools++
	case document.KindNumber:
		a.stats.Numbers++
	case document.KindString:
		a.stats.Strings++
	case document.KindArray:
		a.analyzeArray(v, depth+1)
	case document.KindObject:
		a.analyzeObject(v, depth+1)
	}
}

func (a *Analyzer) analyzeArray(v document.Value, depth int) {
	elems, err := v.Elements()
	if err != nil {
		return
	}
	a.stats.Arrays++
	a.stats.Elements += elems.Len()
	a.stats.Spare += elems.Cap() - elems.Len()
	a.stats.MaxDepth = max(a.stats.MaxDepth, depth)

	for _, e := range elems.All() {
		a.analyzeNode(e, depth)
	}
}

func (a *Analyzer) analyzeObject(v document.Value, depth int) {
	members, err := v.Members()
	if err != nil {
		return
	}
	a.stats.Objects++
	a.stats.Members += members.Len()
	a.stats.Spare += members.Cap() - members.Len()
	a.stats.MaxDepth = max(a.stats.MaxDepth, depth)

	// Only insertion-order objects filled by bulk insert can repeat a key.
	clear(a.seen)
	for key := range members.All() {
		a.seen[key]++
		if a.seen[key] == 2 {
			a.stats.Duplicates++
		}
	}

	for _, val := range members.All() {
		a.analyzeNode(val, depth)
	}
}
