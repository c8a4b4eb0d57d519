// Package member holds the key/value pair stored by object tables.
package member

import "github.com/mcncl/jsoncore/internal/models"

// Entry is one object member. The key is fixed at construction: tables
// place and look up entries by key, so a key changes only by removing the
// entry and inserting a new one.
type Entry[V models.Value[V]] struct {
	key   string
	value V
}

// NewEntry returns an entry owning key and value.
func NewEntry[V models.Value[V]](key string, value V) Entry[V] {
	return Entry[V]{key: key, value: value}
}

// Key returns the member name.
func (e Entry[V]) Key() string { return e.key }

// Value returns the member value.
func (e Entry[V]) Value() V { return e.value }

// ValuePtr returns a pointer to the value for in-place mutation.
func (e *Entry[V]) ValuePtr() *V { return &e.value }

// SetValue replaces the value, leaving the key untouched.
func (e *Entry[V]) SetValue(v V) { e.value = v }

// Swap exchanges both key and value with other. Swapping entries inside a
// sorted table can break its key order.
func (e *Entry[V]) Swap(other *Entry[V]) { *e, *other = *other, *e }

// Clone deep copies the entry.
func (e Entry[V]) Clone() Entry[V] { return Entry[V]{key: e.key, value: e.value.Clone()} }

// Equal compares key and value.
func (e Entry[V]) Equal(other Entry[V]) bool {
	return e.key == other.key && e.value.Equal(other.value)
}

// ShrinkToFit trims the key and the value. Go strings carry no spare
// capacity, so trimming the key means dropping any larger buffer it was
// sliced from.
func (e *Entry[V]) ShrinkToFit() {
	e.key = detach(e.key)
	e.value.ShrinkToFit()
}

func detach(s string) string {
	if s == "" {
		return ""
	}
	return string([]byte(s))
}
