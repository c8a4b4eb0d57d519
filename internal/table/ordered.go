package table

import (
	"fmt"
	"iter"
	"slices"

	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/iterator"
	"github.com/mcncl/jsoncore/internal/keys"
	"github.com/mcncl/jsoncore/internal/models"
)

// Ordered stores members in the order they were first set. Set overwrites
// the first member with a matching key, so duplicates only appear through
// Insert or an explicit hint. Lookups are linear scans.
type Ordered[V models.Value[V]] struct {
	entries []Entry[V]
}

// NewOrdered returns an empty insertion-order table.
func NewOrdered[V models.Value[V]]() *Ordered[V] {
	return &Ordered[V]{}
}

// NewOrderedWithCapacity returns an empty insertion-order table with room
// for n members.
func NewOrderedWithCapacity[V models.Value[V]](n int) *Ordered[V] {
	return &Ordered[V]{entries: make([]Entry[V], 0, n)}
}

func (t *Ordered[V]) Strategy() Strategy { return StrategyInsertionOrder }

func (t *Ordered[V]) Len() int { return len(t.entries) }

func (t *Ordered[V]) Cap() int { return cap(t.entries) }

func (t *Ordered[V]) Reserve(n int) { t.entries = reserve(t.entries, n) }

func (t *Ordered[V]) Clear() {
	clear(t.entries)
	t.entries = t.entries[:0]
}

func (t *Ordered[V]) ShrinkToFit() { t.entries = shrinkEntries(t.entries) }

func (t *Ordered[V]) Begin() Iterator[V] { return iterator.New(&t.entries, 0) }

func (t *Ordered[V]) End() Iterator[V] { return iterator.New(&t.entries, len(t.entries)) }

func (t *Ordered[V]) CBegin() ConstIterator[V] { return t.Begin().Const() }

func (t *Ordered[V]) CEnd() ConstIterator[V] { return t.End().Const() }

func (t *Ordered[V]) All() iter.Seq2[string, V] { return allOf(t.entries) }

func (t *Ordered[V]) Keys() []string { return keysOf(t.entries) }

func (t *Ordered[V]) index(key string) int {
	return slices.IndexFunc(t.entries, func(e Entry[V]) bool { return keys.Equal(e.Key(), key) })
}

func (t *Ordered[V]) indexBytes(key []byte) int {
	return slices.IndexFunc(t.entries, func(e Entry[V]) bool { return keys.EqualBytes(e.Key(), key) })
}

func (t *Ordered[V]) Find(key string) Iterator[V] {
	if i := t.index(key); i >= 0 {
		return iterator.New(&t.entries, i)
	}
	return t.End()
}

func (t *Ordered[V]) FindBytes(key []byte) Iterator[V] {
	if i := t.indexBytes(key); i >= 0 {
		return iterator.New(&t.entries, i)
	}
	return t.End()
}

func (t *Ordered[V]) CFind(key string) ConstIterator[V] { return t.Find(key).Const() }

func (t *Ordered[V]) Get(key string) (V, bool) {
	if i := t.index(key); i >= 0 {
		return t.entries[i].Value(), true
	}
	var zero V
	return zero, false
}

func (t *Ordered[V]) Set(key string, v V) {
	if i := t.index(key); i >= 0 {
		t.entries[i].SetValue(v)
		return
	}
	t.entries = append(t.entries, NewEntry(key, v))
}

func (t *Ordered[V]) SetBytes(key []byte, v V) {
	if i := t.indexBytes(key); i >= 0 {
		t.entries[i].SetValue(v)
		return
	}
	t.entries = append(t.entries, NewEntry(string(key), v))
}

// SetHint trusts the hint without searching: at End (or a cursor from
// another table) the member is appended, on a member with the same key the
// value is overwritten, and otherwise the member is inserted before the hint.
func (t *Ordered[V]) SetHint(hint Iterator[V], key string, v V) Iterator[V] {
	if !hint.Over(&t.entries) || !hint.Valid() {
		t.entries = append(t.entries, NewEntry(key, v))
		return iterator.New(&t.entries, len(t.entries)-1)
	}
	i := hint.Index()
	if keys.Equal(t.entries[i].Key(), key) {
		t.entries[i].SetValue(v)
	} else {
		t.entries = slices.Insert(t.entries, i, NewEntry(key, v))
	}
	return iterator.New(&t.entries, i)
}

func (t *Ordered[V]) Erase(key string) bool {
	if i := t.index(key); i >= 0 {
		t.entries = slices.Delete(t.entries, i, i+1)
		return true
	}
	return false
}

func (t *Ordered[V]) EraseRange(first, last Iterator[V]) error {
	from, to, err := checkRange(&t.entries, first, last)
	if err != nil {
		return err
	}
	t.entries = slices.Delete(t.entries, from, to)
	return nil
}

// Insert appends entries in the order given, without checking for keys that
// are already present.
func (t *Ordered[V]) Insert(entries ...Entry[V]) {
	t.entries = append(t.entries, entries...)
}

// At returns the value stored at position i.
func (t *Ordered[V]) At(i int) (V, error) {
	if i < 0 || i >= len(t.entries) {
		var zero V
		return zero, errors.NewOutOfRangeError(fmt.Sprintf("invalid member index %d for size %d", i, len(t.entries)))
	}
	return t.entries[i].Value(), nil
}

func (t *Ordered[V]) Clone() Table[V] { return &Ordered[V]{entries: cloneEntries(t.entries)} }

func (t *Ordered[V]) Take() Table[V] {
	moved := &Ordered[V]{entries: t.entries}
	t.entries = nil
	return moved
}

// Swap exchanges contents with o.
func (t *Ordered[V]) Swap(o *Ordered[V]) { t.entries, o.entries = o.entries, t.entries }

// Equal compares by lookup, so storage order does not matter.
func (t *Ordered[V]) Equal(other Table[V]) bool { return equalByLookup[V](t, other) }
