package models

// Value is the contract a container element must satisfy. Containers deep
// copy through Clone, compare through Equal and reclaim spare capacity
// through ShrinkToFit; nothing else about the element is assumed.
type Value[V any] interface {
	Equal(other V) bool
	Clone() V
	ShrinkToFit()
}

// Keyed is a Value that can also report whether it holds a string, which is
// what building an object from a list of [key, value] pairs requires.
type Keyed[V any] interface {
	Value[V]
	IsString() bool
	AsString() (string, error)
}

// Stats summarises the shape of a document tree.
type Stats struct {
	Objects  int `json:"objects"`
	Arrays   int `json:"arrays"`
	Members  int `json:"members"`
	Elements int `json:"elements"`
	Strings  int `json:"strings"`
	Numbers  int `json:"numbers"`
	Bools    int `json:"bools"`
	Nulls    int `json:"nulls"`
	MaxDepth int `json:"max_depth"`
	// Spare is the total unused capacity (in slots) across every container.
	Spare int `json:"spare"`
	// Duplicates counts keys that appear more than once in the same object.
	Duplicates int `json:"duplicates"`
}
