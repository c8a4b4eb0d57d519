// Package iterator provides a bidirectional cursor over slice-backed
// containers in two views: Iterator can modify the element it points at,
// ConstIterator can only read it. An Iterator converts to a ConstIterator;
// there is no conversion the other way.
//
// A cursor holds a pointer to the container's backing slice and an index,
// never the elements themselves. Insertion or erasure in the container
// shifts the elements at and after the mutation point, so cursors obtained
// before a structural change no longer refer to the same element.
package iterator

type position[E any] struct {
	elems *[]E
	idx   int
}

// Index returns the offset of the cursor in its container.
func (p position[E]) Index() int { return p.idx }

// IsEnd reports whether the cursor is at (or past) the end of its container.
func (p position[E]) IsEnd() bool { return p.elems == nil || p.idx >= len(*p.elems) }

// Valid reports whether the cursor can be dereferenced.
func (p position[E]) Valid() bool {
	return p.elems != nil && p.idx >= 0 && p.idx < len(*p.elems)
}

// Get returns a copy of the element under the cursor. It panics if the
// cursor is not Valid.
func (p position[E]) Get() E { return (*p.elems)[p.idx] }

// Over reports whether the cursor walks the given backing slice.
func (p position[E]) Over(elems *[]E) bool { return p.elems == elems }

func (p position[E]) same(o position[E]) bool { return p.elems == o.elems && p.idx == o.idx }

// Iterator is the mutable view.
type Iterator[E any] struct {
	position[E]
}

// New returns a mutable cursor at index idx of *elems.
func New[E any](elems *[]E, idx int) Iterator[E] {
	return Iterator[E]{position[E]{elems: elems, idx: idx}}
}

// Ptr returns a pointer to the element under the cursor. It panics if the
// cursor is not Valid.
func (it Iterator[E]) Ptr() *E { return &(*it.elems)[it.idx] }

// Set replaces the element under the cursor. For table cursors that
// includes the key; use Ptr().SetValue to change only the value.
func (it Iterator[E]) Set(v E) { (*it.elems)[it.idx] = v }

// Inc moves forward and returns the new position.
func (it *Iterator[E]) Inc() Iterator[E] {
	it.idx++
	return *it
}

// PostInc moves forward and returns the position before the move.
func (it *Iterator[E]) PostInc() Iterator[E] {
	prev := *it
	it.idx++
	return prev
}

// Dec moves backward and returns the new position.
func (it *Iterator[E]) Dec() Iterator[E] {
	it.idx--
	return *it
}

// PostDec moves backward and returns the position before the move.
func (it *Iterator[E]) PostDec() Iterator[E] {
	prev := *it
	it.idx--
	return prev
}

// Equal reports whether both cursors point at the same slot of the same
// container.
func (it Iterator[E]) Equal(o Iterator[E]) bool { return it.same(o.position) }

// Const returns the read-only view of the same position.
func (it Iterator[E]) Const() ConstIterator[E] { return ConstIterator[E]{it.position} }

// ConstIterator is the read-only view.
type ConstIterator[E any] struct {
	position[E]
}

// NewConst returns a read-only cursor at index idx of *elems.
func NewConst[E any](elems *[]E, idx int) ConstIterator[E] {
	return ConstIterator[E]{position[E]{elems: elems, idx: idx}}
}

// Inc moves forward and returns the new position.
func (it *ConstIterator[E]) Inc() ConstIterator[E] {
	it.idx++
	return *it
}

// PostInc moves forward and returns the position before the move.
func (it *ConstIterator[E]) PostInc() ConstIterator[E] {
	prev := *it
	it.idx++
	return prev
}

// Dec moves backward and returns the new position.
func (it *ConstIterator[E]) Dec() ConstIterator[E] {
	it.idx--
	return *it
}

// PostDec moves backward and returns the position before the move.
func (it *ConstIterator[E]) PostDec() ConstIterator[E] {
	prev := *it
	it.idx--
	return prev
}

// Equal reports whether both cursors point at the same slot of the same
// container.
func (it ConstIterator[E]) Equal(o ConstIterator[E]) bool { return it.same(o.position) }
