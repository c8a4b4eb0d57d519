// Package table implements the two storage strategies for JSON object
// members: Sorted keeps entries in ascending key order and finds them by
// binary search, Ordered keeps first-insertion order and finds them by linear
// scan. Both satisfy Table, and an object picks one strategy when it is
// created.
package table

import (
	"fmt"
	"iter"
	"strings"

	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/iterator"
	"github.com/mcncl/jsoncore/internal/member"
	"github.com/mcncl/jsoncore/internal/models"
)

// Entry is the element type of every table.
type Entry[V models.Value[V]] = member.Entry[V]

// Iterator is the mutable cursor over table entries. Change a member's value
// through Ptr().SetValue; Set and Entry.Swap replace keys as well and can
// break a sorted table's key order.
type Iterator[V models.Value[V]] = iterator.Iterator[member.Entry[V]]

// ConstIterator is the read-only cursor over table entries.
type ConstIterator[V models.Value[V]] = iterator.ConstIterator[member.Entry[V]]

// Strategy selects how an object stores its members.
type Strategy int

const (
	// StrategySorted keeps members in ascending key order.
	StrategySorted Strategy = iota
	// StrategyInsertionOrder keeps members in the order they were first set.
	StrategyInsertionOrder
)

func (s Strategy) String() string {
	switch s {
	case StrategySorted:
		return "sorted"
	case StrategyInsertionOrder:
		return "insertion_order"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy accepts the names used in configuration files and flags.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sorted":
		return StrategySorted, nil
	case "insertion_order", "insertion-order", "ordered", "preserve":
		return StrategyInsertionOrder, nil
	}
	return 0, errors.NewConfigError(fmt.Sprintf("unknown object strategy %q", name), nil)
}

// Table is the member storage capability shared by both strategies.
type Table[V models.Value[V]] interface {
	Strategy() Strategy

	Len() int
	Cap() int
	Reserve(n int)
	Clear()
	// ShrinkToFit trims every key and value, then the table's own storage.
	ShrinkToFit()

	Begin() Iterator[V]
	End() Iterator[V]
	CBegin() ConstIterator[V]
	CEnd() ConstIterator[V]
	// All yields members in storage order.
	All() iter.Seq2[string, V]
	Keys() []string

	// Find returns a cursor to the member named key, or End.
	Find(key string) Iterator[V]
	FindBytes(key []byte) Iterator[V]
	CFind(key string) ConstIterator[V]
	Get(key string) (V, bool)

	// Set overwrites the value of an existing member or adds a new one.
	Set(key string, v V)
	SetBytes(key []byte, v V)
	// SetHint is Set with a caller-supplied guess of where key belongs. It
	// returns a cursor to the affected member.
	SetHint(hint Iterator[V], key string, v V) Iterator[V]

	// Erase removes the member named key and reports whether it existed.
	Erase(key string) bool
	EraseRange(first, last Iterator[V]) error
	// Insert adds entries in bulk.
	Insert(entries ...Entry[V])

	// At returns the value at a storage position, where the strategy
	// supports positional access.
	At(i int) (V, error)

	Clone() Table[V]
	// Take moves the members into a new table and leaves the receiver empty.
	Take() Table[V]
	// Equal reports whether both tables hold the same key/value pairs,
	// regardless of storage order or strategy.
	Equal(other Table[V]) bool
}

// New returns an empty table of the given strategy.
func New[V models.Value[V]](s Strategy) Table[V] {
	return WithCapacity[V](s, 0)
}

// WithCapacity returns an empty table with room for n members.
func WithCapacity[V models.Value[V]](s Strategy, n int) Table[V] {
	if s == StrategyInsertionOrder {
		return NewOrderedWithCapacity[V](n)
	}
	return NewSortedWithCapacity[V](n)
}

// NewEntry returns a member entry for use with Insert.
func NewEntry[V models.Value[V]](key string, v V) Entry[V] {
	return member.NewEntry(key, v)
}

// InsertFunc bulk-inserts fn(x) for every x in src.
func InsertFunc[S any, V models.Value[V]](t Table[V], src []S, fn func(S) Entry[V]) {
	entries := make([]Entry[V], 0, len(src))
	for _, x := range src {
		entries = append(entries, fn(x))
	}
	t.Insert(entries...)
}

// FromPairs builds a table from [key, value] pairs. Every pair must have
// exactly two elements and a string first element; a malformed pair fails
// the whole construction before anything is inserted.
func FromPairs[V models.Keyed[V]](s Strategy, pairs [][]V) (Table[V], error) {
	names := make([]string, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, errors.NewInvalidConstructionError(fmt.Sprintf("pair %d has %d elements, want 2", i, len(pair)))
		}
		if !pair[0].IsString() {
			return nil, errors.NewInvalidConstructionError(fmt.Sprintf("pair %d does not start with a string key", i))
		}
		name, err := pair[0].AsString()
		if err != nil {
			return nil, errors.NewInvalidConstructionError(fmt.Sprintf("pair %d key: %v", i, err))
		}
		names[i] = name
	}

	t := WithCapacity[V](s, len(pairs))
	for i, pair := range pairs {
		t.Set(names[i], pair[1])
	}
	return t, nil
}

func equalByLookup[V models.Value[V]](a, b Table[V]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		other, ok := b.Get(k)
		if !ok || !v.Equal(other) {
			return false
		}
	}
	return true
}

func checkRange[V models.Value[V]](entries *[]Entry[V], first, last Iterator[V]) (int, int, error) {
	if !first.Over(entries) || !last.Over(entries) {
		return 0, 0, errors.NewOutOfRangeError("erase range is not within this table")
	}
	from, to := first.Index(), last.Index()
	if from < 0 || from > to || to > len(*entries) {
		return 0, 0, errors.NewOutOfRangeError(fmt.Sprintf("invalid range [%d, %d) for size %d", from, to, len(*entries)))
	}
	return from, to, nil
}

func allOf[V models.Value[V]](entries []Entry[V]) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, e := range entries {
			if !yield(e.Key(), e.Value()) {
				return
			}
		}
	}
}

func keysOf[V models.Value[V]](entries []Entry[V]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key()
	}
	return out
}

func cloneEntries[V models.Value[V]](entries []Entry[V]) []Entry[V] {
	if entries == nil {
		return nil
	}
	out := make([]Entry[V], len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

func shrinkEntries[V models.Value[V]](entries []Entry[V]) []Entry[V] {
	for i := range entries {
		entries[i].ShrinkToFit()
	}
	if cap(entries) == len(entries) {
		return entries
	}
	trimmed := make([]Entry[V], len(entries))
	copy(trimmed, entries)
	return trimmed
}

func reserve[V models.Value[V]](entries []Entry[V], n int) []Entry[V] {
	if n <= cap(entries) {
		return entries
	}
	grown := make([]Entry[V], len(entries), n)
	copy(grown, entries)
	return grown
}
