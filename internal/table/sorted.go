package table

import (
	"iter"
	"slices"

	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/iterator"
	"github.com/mcncl/jsoncore/internal/keys"
	"github.com/mcncl/jsoncore/internal/models"
)

// Sorted stores members in strictly ascending key order (see package keys)
// with no two members sharing a key. Lookups are O(log n); inserting a new
// key shifts the entries after it.
type Sorted[V models.Value[V]] struct {
	entries []Entry[V]
}

// NewSorted returns an empty sorted table.
func NewSorted[V models.Value[V]]() *Sorted[V] {
	return &Sorted[V]{}
}

// NewSortedWithCapacity returns an empty sorted table with room for n members.
func NewSortedWithCapacity[V models.Value[V]](n int) *Sorted[V] {
	return &Sorted[V]{entries: make([]Entry[V], 0, n)}
}

func (t *Sorted[V]) Strategy() Strategy { return StrategySorted }

func (t *Sorted[V]) Len() int { return len(t.entries) }

func (t *Sorted[V]) Cap() int { return cap(t.entries) }

func (t *Sorted[V]) Reserve(n int) { t.entries = reserve(t.entries, n) }

func (t *Sorted[V]) Clear() {
	clear(t.entries)
	t.entries = t.entries[:0]
}

func (t *Sorted[V]) ShrinkToFit() { t.entries = shrinkEntries(t.entries) }

func (t *Sorted[V]) Begin() Iterator[V] { return iterator.New(&t.entries, 0) }

func (t *Sorted[V]) End() Iterator[V] { return iterator.New(&t.entries, len(t.entries)) }

func (t *Sorted[V]) CBegin() ConstIterator[V] { return t.Begin().Const() }

func (t *Sorted[V]) CEnd() ConstIterator[V] { return t.End().Const() }

func (t *Sorted[V]) All() iter.Seq2[string, V] { return allOf(t.entries) }

func (t *Sorted[V]) Keys() []string { return keysOf(t.entries) }

func byKey[V models.Value[V]](e Entry[V], key string) int { return keys.Compare(e.Key(), key) }

func byKeyBytes[V models.Value[V]](e Entry[V], key []byte) int {
	return keys.CompareBytes(e.Key(), key)
}

// lowerBound returns the first position at or after lo whose key is not
// less than key.
func (t *Sorted[V]) lowerBound(lo int, key string) int {
	i, _ := slices.BinarySearchFunc(t.entries[lo:], key, byKey[V])
	return lo + i
}

func (t *Sorted[V]) lowerBoundBytes(lo int, key []byte) int {
	i, _ := slices.BinarySearchFunc(t.entries[lo:], key, byKeyBytes[V])
	return lo + i
}

func (t *Sorted[V]) Find(key string) Iterator[V] {
	i := t.lowerBound(0, key)
	if i < len(t.entries) && keys.Equal(t.entries[i].Key(), key) {
		return iterator.New(&t.entries, i)
	}
	return t.End()
}

func (t *Sorted[V]) FindBytes(key []byte) Iterator[V] {
	i := t.lowerBoundBytes(0, key)
	if i < len(t.entries) && keys.EqualBytes(t.entries[i].Key(), key) {
		return iterator.New(&t.entries, i)
	}
	return t.End()
}

func (t *Sorted[V]) CFind(key string) ConstIterator[V] { return t.Find(key).Const() }

func (t *Sorted[V]) Get(key string) (V, bool) {
	it := t.Find(key)
	if it.IsEnd() {
		var zero V
		return zero, false
	}
	return it.Get().Value(), true
}

func (t *Sorted[V]) Set(key string, v V) {
	t.place(t.lowerBound(0, key), key, v)
}

func (t *Sorted[V]) SetBytes(key []byte, v V) {
	i := t.lowerBoundBytes(0, key)
	if i < len(t.entries) && keys.EqualBytes(t.entries[i].Key(), key) {
		t.entries[i].SetValue(v)
		return
	}
	t.entries = slices.Insert(t.entries, i, NewEntry(string(key), v))
}

// SetHint narrows the search to [hint, end) when the hint's key is not
// greater than key, and searches the whole table otherwise. Feeding keys in
// non-decreasing order with the previously returned cursor as hint makes
// each search start at the right place.
func (t *Sorted[V]) SetHint(hint Iterator[V], key string, v V) Iterator[V] {
	lo := 0
	if hint.Over(&t.entries) && hint.Valid() && keys.LessOrEqual(hint.Get().Key(), key) {
		lo = hint.Index()
	}
	i := t.lowerBound(lo, key)
	t.place(i, key, v)
	return iterator.New(&t.entries, i)
}

func (t *Sorted[V]) place(i int, key string, v V) {
	switch {
	case i == len(t.entries):
		t.entries = append(t.entries, NewEntry(key, v))
	case keys.Equal(t.entries[i].Key(), key):
		t.entries[i].SetValue(v)
	default:
		t.entries = slices.Insert(t.entries, i, NewEntry(key, v))
	}
}

func (t *Sorted[V]) Erase(key string) bool {
	i := t.lowerBound(0, key)
	if i < len(t.entries) && keys.Equal(t.entries[i].Key(), key) {
		t.entries = slices.Delete(t.entries, i, i+1)
		return true
	}
	return false
}

func (t *Sorted[V]) EraseRange(first, last Iterator[V]) error {
	from, to, err := checkRange(&t.entries, first, last)
	if err != nil {
		return err
	}
	t.entries = slices.Delete(t.entries, from, to)
	return nil
}

// Insert appends entries without keeping order, then restores it with one
// stable sort. Where several entries share a key the last one inserted wins,
// the same outcome as calling Set for each in turn.
func (t *Sorted[V]) Insert(entries ...Entry[V]) {
	if len(entries) == 0 {
		return
	}
	t.entries = append(t.entries, entries...)
	slices.SortStableFunc(t.entries, func(a, b Entry[V]) int {
		return keys.Compare(a.Key(), b.Key())
	})

	out := t.entries[:0]
	for i, e := range t.entries {
		if i+1 < len(t.entries) && keys.Equal(t.entries[i+1].Key(), e.Key()) {
			continue
		}
		out = append(out, e)
	}
	clear(t.entries[len(out):])
	t.entries = out
}

// At always fails: sorted objects are not addressable by position.
func (t *Sorted[V]) At(int) (V, error) {
	var zero V
	return zero, errors.NewUnsupportedError("index on a sorted object is not supported")
}

func (t *Sorted[V]) Clone() Table[V] { return &Sorted[V]{entries: cloneEntries(t.entries)} }

func (t *Sorted[V]) Take() Table[V] {
	moved := &Sorted[V]{entries: t.entries}
	t.entries = nil
	return moved
}

// Swap exchanges contents with o.
func (t *Sorted[V]) Swap(o *Sorted[V]) { t.entries, o.entries = o.entries, t.entries }

// Equal walks both sides in step when other is also sorted; both hold unique
// keys in the same order, so pairwise comparison decides equality in one
// pass. Any other table is compared by lookup.
func (t *Sorted[V]) Equal(other Table[V]) bool {
	o, ok := other.(*Sorted[V])
	if !ok {
		return equalByLookup[V](t, other)
	}
	if len(t.entries) != len(o.entries) {
		return false
	}
	for i := range t.entries {
		if !t.entries[i].Equal(o.entries[i]) {
			return false
		}
	}
	return true
}
