// Package document defines Value, the JSON value that the containers in
// this module are built to hold. Arrays are backed by a sequence and objects
// by a member table whose strategy is fixed when the object is created.
package document

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/sequence"
	"github.com/mcncl/jsoncore/internal/table"
)

// Kind identifies which of the six JSON types a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a JSON value. The zero Value is null.
//
// Arrays and objects hold their storage by reference: copying a Value
// shares the container, Clone does not.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents, or the literal text of a number
	arr  *sequence.Sequence[Value]
	obj  table.Table[Value]
}

// Null returns the null value.
func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a number holding n's literal text.
func Number(n json.Number) Value { return Value{kind: KindNumber, s: n.String()} }

func Int(n int64) Value { return Value{kind: KindNumber, s: strconv.FormatInt(n, 10)} }

// Float returns a number for f. NaN and infinities have no JSON form and
// become null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

func String(s string) Value { return Value{kind: KindString, s: s} }

// Array returns an array that takes ownership of vs.
func Array(vs ...Value) Value {
	return Value{kind: KindArray, arr: sequence.Of(vs...)}
}

// ArrayWithCapacity returns an empty array with room for n elements.
func ArrayWithCapacity(n int) Value {
	return Value{kind: KindArray, arr: sequence.WithCapacity[Value](n)}
}

// FromSequence wraps an existing sequence without copying it.
func FromSequence(s *sequence.Sequence[Value]) Value {
	if s == nil {
		s = sequence.New[Value]()
	}
	return Value{kind: KindArray, arr: s}
}

// Object returns an empty object using the given member strategy.
func Object(s table.Strategy) Value {
	return Value{kind: KindObject, obj: table.New[Value](s)}
}

// ObjectWithCapacity returns an empty object with room for n members.
func ObjectWithCapacity(s table.Strategy, n int) Value {
	return Value{kind: KindObject, obj: table.WithCapacity[Value](s, n)}
}

// FromTable wraps an existing member table without copying it.
func FromTable(t table.Table[Value]) Value {
	if t == nil {
		t = table.New[Value](table.StrategySorted)
	}
	return Value{kind: KindObject, obj: t}
}

// ObjectFromPairs builds an object from values of the form [key, value].
// Every pair is checked before any member is stored.
func ObjectFromPairs(s table.Strategy, pairs ...Value) (Value, error) {
	rows := make([][]Value, len(pairs))
	for i, p := range pairs {
		if p.kind != KindArray {
			return Value{}, errors.NewInvalidConstructionError(fmt.Sprintf("pair %d is a %s, want an array", i, p.kind))
		}
		rows[i] = p.arr.Values()
	}
	t, err := table.FromPairs(s, rows)
	if err != nil {
		return Value{}, err
	}
	return FromTable(t), nil
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) IsString() bool { return v.kind == KindString }

func (v Value) IsArray() bool { return v.kind == KindArray }

func (v Value) IsObject() bool { return v.kind == KindObject }

func (v Value) unsupported(op string) error {
	return errors.NewUnsupportedError(fmt.Sprintf("%s on a %s value", op, v.kind))
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.unsupported("as_string")
	}
	return v.s, nil
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.unsupported("as_bool")
	}
	return v.b, nil
}

func (v Value) AsNumber() (json.Number, error) {
	if v.kind != KindNumber {
		return "", v.unsupported("as_number")
	}
	return json.Number(v.s), nil
}

func (v Value) AsInt64() (int64, error) {
	n, err := v.AsNumber()
	if err != nil {
		return 0, err
	}
	return n.Int64()
}

func (v Value) AsFloat64() (float64, error) {
	n, err := v.AsNumber()
	if err != nil {
		return 0, err
	}
	return n.Float64()
}

// Len returns the number of elements or members. Scalars have length 0.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return v.arr.Len()
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Strategy reports the member strategy of an object.
func (v Value) Strategy() (table.Strategy, bool) {
	if v.kind != KindObject {
		return 0, false
	}
	return v.obj.Strategy(), true
}

// Index returns the i-th element of an array, or the i-th member value of an
// object whose strategy supports positional access.
func (v Value) Index(i int) (Value, error) {
	switch v.kind {
	case KindArray:
		if i < 0 || i >= v.arr.Len() {
			return Value{}, errors.NewOutOfRangeError(fmt.Sprintf("invalid array index %d for size %d", i, v.arr.Len()))
		}
		return v.arr.At(i), nil
	case KindObject:
		return v.obj.At(i)
	}
	return Value{}, v.unsupported("index")
}

// Get returns the member named key. It reports false for missing keys and
// for values that are not objects.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.obj.Get(key)
}

func (v Value) Set(key string, val Value) error {
	if v.kind != KindObject {
		return v.unsupported("set")
	}
	v.obj.Set(key, val)
	return nil
}

func (v Value) Erase(key string) (bool, error) {
	if v.kind != KindObject {
		return false, v.unsupported("erase")
	}
	return v.obj.Erase(key), nil
}

func (v Value) Push(val Value) error {
	if v.kind != KindArray {
		return v.unsupported("push")
	}
	v.arr.PushBack(val)
	return nil
}

// Insert places val before index i of an array; i at or past the end
// appends.
func (v Value) Insert(i int, val Value) error {
	if v.kind != KindArray {
		return v.unsupported("insert")
	}
	if i < 0 {
		return errors.NewOutOfRangeError(fmt.Sprintf("invalid array index %d", i))
	}
	v.arr.Add(i, val)
	return nil
}

// RemoveRange erases array elements [from, to).
func (v Value) RemoveRange(from, to int) error {
	if v.kind != KindArray {
		return v.unsupported("remove_range")
	}
	return v.arr.RemoveRange(from, to)
}

// Members returns the member table of an object. The table is shared with v.
func (v Value) Members() (table.Table[Value], error) {
	if v.kind != KindObject {
		return nil, v.unsupported("members")
	}
	return v.obj, nil
}

// Elements returns the sequence backing an array. The sequence is shared
// with v.
func (v Value) Elements() (*sequence.Sequence[Value], error) {
	if v.kind != KindArray {
		return nil, v.unsupported("elements")
	}
	return v.arr, nil
}

// Equal compares structurally. Objects compare as key/value sets, so two
// objects with different strategies can be equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return numbersEqual(v.s, o.s)
	case KindString:
		return v.s == o.s
	case KindArray:
		return v.arr.Equal(o.arr)
	case KindObject:
		return v.obj.Equal(o.obj)
	}
	return false
}

// numbersEqual compares number text by exact value, so "1", "1.0" and "1e0"
// are equal while integers beyond float64 precision stay distinct. Exact
// comparison keeps equality transitive.
func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		return ai == bi
	}
	ar, aok := exactNumber(a)
	br, bok := exactNumber(b)
	if aok && bok {
		return ar.Cmp(br) == 0
	}
	// Exponents too large to expand exactly compare as float64.
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	return aerr == nil && berr == nil && af == bf
}

// maxExactExponent bounds the decimal exponent expanded by exactNumber.
const maxExactExponent = 1000

func exactNumber(s string) (*big.Rat, bool) {
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		exp, err := strconv.Atoi(strings.TrimPrefix(s[i+1:], "+"))
		if err != nil || exp > maxExactExponent || exp < -maxExactExponent {
			return nil, false
		}
	}
	return new(big.Rat).SetString(s)
}

// Clone deep copies v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		return Value{kind: KindArray, arr: v.arr.Clone()}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	}
	return v
}

// ShrinkToFit releases spare capacity in every container reachable from v.
func (v Value) ShrinkToFit() {
	switch v.kind {
	case KindArray:
		v.arr.ShrinkToFit()
	case KindObject:
		v.obj.ShrinkToFit()
	}
}
