// Package transform rewrites the member keys of a document in place,
// following the key settings of a Config.
package transform

import (
	"github.com/mcncl/jsoncore/internal/config"
	"github.com/mcncl/jsoncore/internal/document"
	"github.com/mcncl/jsoncore/internal/table"
)

// Result counts the members a rewrite touched
type Result struct {
	Renamed int
	Dropped int
}

// Rewriter renames and drops object members
type Rewriter struct {
	config *config.Config
}

// NewRewriter creates a Rewriter with the default config, which changes nothing
func NewRewriter() *Rewriter {
	return &Rewriter{config: config.NewConfig()}
}

// NewRewriterWithConfig creates a Rewriter with custom configuration
func NewRewriterWithConfig(cfg *config.Config) *Rewriter {
	return &Rewriter{config: cfg}
}

// Rewrite applies the key rules to every object reachable from root.
//
// A renamed member stays where it was in an insertion-order object. When two
// members end up with the same name, the later one in storage order wins and
// takes the position of the first; repeated keys collapse the same way.
func (r *Rewriter) Rewrite(root document.Value) Result {
	var res Result
	if r.config.RewritesKeys() {
		r.rewriteNode(root, &res)
	}
	return res
}

func (r *Rewriter) rewriteNode(v document.Value, res *Result) {
	switch v.Kind() {
	case document.KindArray:
		elems, _ := v.Elements()
		for _, e := range elems.All() {
			r.rewriteNode(e, res)
		}
	case document.KindObject:
		members, _ := v.Members()
		for _, val := range members.All() {
			r.rewriteNode(val, res)
		}
		r.rewriteMembers(members, res)
	}
}

func (r *Rewriter) rewriteMembers(members table.Table[document.Value], res *Result) {
	changed := false
	for key := range members.All() {
		if r.config.ShouldDropKey(key) || r.config.GetKeyName(key) != key {
			changed = true
			break
		}
	}
	if !changed {
		return
	}

	// Rebuild through a scratch table of the same strategy, so sorted objects
	// stay sorted and insertion-order objects keep member positions.
	scratch := table.WithCapacity[document.Value](members.Strategy(), members.Len())
	hint := scratch.End()
	for it := members.CBegin(); !it.Equal(members.CEnd()); it.Inc() {
		e := it.Get()
		key := e.Key()
		if r.config.ShouldDropKey(key) {
			res.Dropped++
			continue
		}
		name := r.config.GetKeyName(key)
		if name != key {
			res.Renamed++
		}
		if scratch.Strategy() == table.StrategySorted {
			hint = scratch.SetHint(hint, name, e.Value())
		} else {
			scratch.Set(name, e.Value())
		}
	}

	entries := make([]table.Entry[document.Value], 0, scratch.Len())
	for it := scratch.CBegin(); !it.Equal(scratch.CEnd()); it.Inc() {
		entries = append(entries, it.Get())
	}
	members.Clear()
	members.Insert(entries...)
}
