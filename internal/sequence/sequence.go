// Package sequence implements the growable, index-addressable list that
// backs JSON arrays.
package sequence

import (
	"fmt"
	"iter"
	"slices"

	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/iterator"
	"github.com/mcncl/jsoncore/internal/models"
)

// Sequence owns an ordered list of values addressable by index 0..Len()-1.
// It is not safe for concurrent mutation.
type Sequence[V models.Value[V]] struct {
	elements []V
}

// New returns an empty sequence.
func New[V models.Value[V]]() *Sequence[V] {
	return &Sequence[V]{}
}

// WithCapacity returns an empty sequence with room for n values.
func WithCapacity[V models.Value[V]](n int) *Sequence[V] {
	return &Sequence[V]{elements: make([]V, 0, n)}
}

// Filled returns a sequence of n zero values.
func Filled[V models.Value[V]](n int) *Sequence[V] {
	return &Sequence[V]{elements: make([]V, n)}
}

// FilledWith returns a sequence of n copies of v.
func FilledWith[V models.Value[V]](n int, v V) *Sequence[V] {
	s := WithCapacity[V](n)
	for i := 0; i < n; i++ {
		s.elements = append(s.elements, v.Clone())
	}
	return s
}

// Of returns a sequence that takes ownership of vs.
func Of[V models.Value[V]](vs ...V) *Sequence[V] {
	return &Sequence[V]{elements: slices.Clone(vs)}
}

// FromSlice returns a sequence holding deep copies of vs.
func FromSlice[V models.Value[V]](vs []V) *Sequence[V] {
	s := WithCapacity[V](len(vs))
	for _, v := range vs {
		s.elements = append(s.elements, v.Clone())
	}
	return s
}

func (s *Sequence[V]) Len() int { return len(s.elements) }

func (s *Sequence[V]) Cap() int { return cap(s.elements) }

// Reserve makes room for at least n values without further reallocation.
func (s *Sequence[V]) Reserve(n int) {
	if n > cap(s.elements) {
		s.elements = slices.Grow(s.elements, n-len(s.elements))
	}
}

// Resize truncates to n values or pads with zero values up to n.
func (s *Sequence[V]) Resize(n int) {
	var zero V
	s.resize(n, func() V { return zero })
}

// ResizeWith truncates to n values or pads with copies of fill up to n.
func (s *Sequence[V]) ResizeWith(n int, fill V) {
	s.resize(n, fill.Clone)
}

func (s *Sequence[V]) resize(n int, pad func() V) {
	if n <= len(s.elements) {
		clear(s.elements[n:])
		s.elements = s.elements[:n]
		return
	}
	s.Reserve(n)
	for len(s.elements) < n {
		s.elements = append(s.elements, pad())
	}
}

// Clear removes every value and keeps the capacity.
func (s *Sequence[V]) Clear() {
	clear(s.elements)
	s.elements = s.elements[:0]
}

// ShrinkToFit trims every contained value and then releases the sequence's
// own spare capacity.
func (s *Sequence[V]) ShrinkToFit() {
	for i := range s.elements {
		s.elements[i].ShrinkToFit()
	}
	if cap(s.elements) > len(s.elements) {
		trimmed := make([]V, len(s.elements))
		copy(trimmed, s.elements)
		s.elements = trimmed
	}
}

// At returns the value at i. Callers validate i; out of range panics.
func (s *Sequence[V]) At(i int) V { return s.elements[i] }

// Ptr returns a pointer to the value at i for in-place mutation.
func (s *Sequence[V]) Ptr(i int) *V { return &s.elements[i] }

// Set replaces the value at i.
func (s *Sequence[V]) Set(i int, v V) { s.elements[i] = v }

// PushBack appends v.
func (s *Sequence[V]) PushBack(v V) { s.elements = append(s.elements, v) }

// Add inserts v before index. An index at or past the end appends.
func (s *Sequence[V]) Add(index int, v V) {
	if index >= len(s.elements) {
		s.elements = append(s.elements, v)
		return
	}
	s.elements = slices.Insert(s.elements, index, v)
}

// Insert places v before pos and returns a cursor to it.
func (s *Sequence[V]) Insert(pos iterator.ConstIterator[V], v V) (iterator.Iterator[V], error) {
	if !pos.Over(&s.elements) || pos.Index() < 0 || pos.Index() > len(s.elements) {
		return s.End(), errors.NewOutOfRangeError("insert position is not within this sequence")
	}
	idx := pos.Index()
	s.Add(idx, v)
	return iterator.New(&s.elements, idx), nil
}

// RemoveRange erases the values in [from, to).
func (s *Sequence[V]) RemoveRange(from, to int) error {
	if from < 0 || from > to || to > len(s.elements) {
		return errors.NewOutOfRangeError(fmt.Sprintf("invalid range [%d, %d) for size %d", from, to, len(s.elements)))
	}
	s.elements = slices.Delete(s.elements, from, to)
	return nil
}

// Erase removes the values in [first, last).
func (s *Sequence[V]) Erase(first, last iterator.ConstIterator[V]) error {
	if !first.Over(&s.elements) || !last.Over(&s.elements) {
		return errors.NewOutOfRangeError("erase range is not within this sequence")
	}
	return s.RemoveRange(first.Index(), last.Index())
}

func (s *Sequence[V]) Begin() iterator.Iterator[V] { return iterator.New(&s.elements, 0) }

func (s *Sequence[V]) End() iterator.Iterator[V] {
	return iterator.New(&s.elements, len(s.elements))
}

func (s *Sequence[V]) CBegin() iterator.ConstIterator[V] { return s.Begin().Const() }

func (s *Sequence[V]) CEnd() iterator.ConstIterator[V] { return s.End().Const() }

// All yields index/value pairs in order.
func (s *Sequence[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i, v := range s.elements {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns a shallow copy of the contents.
func (s *Sequence[V]) Values() []V { return slices.Clone(s.elements) }

// Equal reports whether both sequences have the same length and pairwise
// equal values.
func (s *Sequence[V]) Equal(o *Sequence[V]) bool {
	if len(s.elements) != len(o.elements) {
		return false
	}
	for i := range s.elements {
		if !s.elements[i].Equal(o.elements[i]) {
			return false
		}
	}
	return true
}

// Clone deep copies the sequence.
func (s *Sequence[V]) Clone() *Sequence[V] { return FromSlice(s.elements) }

// Take moves the contents into a new sequence and leaves s empty.
func (s *Sequence[V]) Take() *Sequence[V] {
	moved := &Sequence[V]{elements: s.elements}
	s.elements = nil
	return moved
}

// Swap exchanges contents with o.
func (s *Sequence[V]) Swap(o *Sequence[V]) { s.elements, o.elements = o.elements, s.elements }
