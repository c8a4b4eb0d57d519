package table

import (
	"math/rand"
	"testing"

	"github.com/mcncl/jsoncore/internal/errors"
	"github.com/mcncl/jsoncore/internal/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKeys(r *rand.Rand, n int) []string {
	const alphabet = "abc"
	out := make([]string, n)
	for i := range out {
		b := make([]byte, 1+r.Intn(3))
		for j := range b {
			b[j] = alphabet[r.Intn(len(alphabet))]
		}
		out[i] = string(b)
	}
	return out
}

func assertStrictlyAscending(t *testing.T, tbl Table[val]) {
	t.Helper()
	ks := tbl.Keys()
	for i := 1; i < len(ks); i++ {
		assert.True(t, keys.Less(ks[i-1], ks[i]), "keys %q and %q out of order", ks[i-1], ks[i])
	}
}

func TestSorted_SetOrdersByKey(t *testing.T) {
	tbl := NewSorted[val]()
	tbl.Set("b", num(1))
	tbl.Set("a", num(2))
	tbl.Set("c", num(3))

	assert.Equal(t, "a:2,b:1,c:3", dump(tbl))
}

func TestSorted_PrefixOrdersFirst(t *testing.T) {
	tbl := NewSorted[val]()
	tbl.Set("abc", num(1))
	tbl.Set("ac", num(2))
	tbl.Set("ab", num(3))

	assert.Equal(t, []string{"ab", "abc", "ac"}, tbl.Keys())
}

func TestSorted_InvariantUnderRandomSets(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		tbl := NewSorted[val]()
		seen := map[string]int{}
		for i, k := range randomKeys(r, 50) {
			tbl.Set(k, num(i))
			seen[k] = i
		}
		assertStrictlyAscending(t, tbl)
		require.Equal(t, len(seen), tbl.Len())
		for k, want := range seen {
			got, ok := tbl.Get(k)
			require.True(t, ok)
			assert.Equal(t, want, got.n)
		}
	}
}

func TestSorted_SetOverwriteIsIdempotent(t *testing.T) {
	tbl := NewSorted[val]()
	tbl.Set("k", num(1))
	tbl.Set("j", num(0))
	before := dump(tbl)

	tbl.Set("k", num(1))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, before, dump(tbl))

	tbl.Set("k", num(9))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "j:0,k:9", dump(tbl))
}

func TestSorted_HintMatchesPlainSet(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		ks := randomKeys(r, 30)

		plain := NewSorted[val]()
		chained := NewSorted[val]()
		scattered := NewSorted[val]()

		hint := chained.End()
		for i, k := range ks {
			plain.Set(k, num(i))
			hint = chained.SetHint(hint, k, num(i))
			assert.Equal(t, k, hint.Get().Key())

			// Any position is an acceptable hint, including a stale or
			// foreign one.
			var h Iterator[val]
			switch r.Intn(4) {
			case 0:
				h = scattered.Begin()
			case 1:
				h = scattered.End()
			case 2:
				h = scattered.Begin()
				for n := r.Intn(scattered.Len() + 1); n > 0; n-- {
					h.Inc()
				}
			default:
				h = plain.Begin()
			}
			scattered.SetHint(h, k, num(i))
		}

		assert.Equal(t, dump(plain), dump(chained))
		assert.Equal(t, dump(plain), dump(scattered))
		assertStrictlyAscending(t, chained)
	}
}

func TestSorted_HintNonDecreasingStream(t *testing.T) {
	tbl := NewSorted[val]()
	hint := tbl.End()
	for i, k := range []string{"a", "b", "b", "c", "d"} {
		hint = tbl.SetHint(hint, k, num(i))
	}
	assert.Equal(t, "a:0,b:2,c:3,d:4", dump(tbl))
	assert.Equal(t, "d", hint.Get().Key())
}

func TestSorted_FindAndErase(t *testing.T) {
	tbl := NewSorted[val]()
	for i, k := range []string{"delta", "alpha", "charlie", "bravo"} {
		tbl.Set(k, num(i))
	}

	it := tbl.Find("charlie")
	require.False(t, it.IsEnd())
	assert.Equal(t, 2, it.Get().Value().n)
	assert.True(t, tbl.Find("echo").Equal(tbl.End()))
	assert.True(t, tbl.Find("charli").IsEnd())

	assert.Equal(t, "bravo", tbl.FindBytes([]byte("bravo")).Get().Key())
	assert.True(t, tbl.FindBytes([]byte("bravoo")).IsEnd())

	it.Ptr().SetValue(num(20))
	got, ok := tbl.Get("charlie")
	require.True(t, ok)
	assert.Equal(t, 20, got.n)

	assert.True(t, tbl.Erase("alpha"))
	assert.False(t, tbl.Erase("alpha"))
	assert.Equal(t, "bravo:3,charlie:20,delta:0", dump(tbl))

	first := tbl.Begin()
	last := first
	last.Inc()
	last.Inc()
	require.NoError(t, tbl.EraseRange(first, last))
	assert.Equal(t, "delta:0", dump(tbl))

	other := NewSorted[val]()
	err := tbl.EraseRange(other.Begin(), other.End())
	assert.ErrorIs(t, err, errors.ErrOutOfRange)
	assert.Equal(t, 1, tbl.Len())
}

func TestSorted_SetBytes(t *testing.T) {
	tbl := NewSorted[val]()
	buf := []byte("name")
	tbl.SetBytes(buf, num(1))
	buf[0] = 'g'
	assert.Equal(t, []string{"name"}, tbl.Keys(), "key is copied out of the buffer")

	tbl.SetBytes([]byte("name"), num(2))
	tbl.SetBytes([]byte("age"), num(3))
	assert.Equal(t, "age:3,name:2", dump(tbl))
}

func TestSorted_BulkInsert(t *testing.T) {
	tbl := NewSorted[val]()
	tbl.Set("m", num(0))
	tbl.Insert(
		NewEntry("z", num(1)),
		NewEntry("a", num(2)),
		NewEntry("m", num(3)),
		NewEntry("a", num(4)),
	)

	assert.Equal(t, "a:4,m:3,z:1", dump(tbl), "last inserted value wins for a repeated key")
	assertStrictlyAscending(t, tbl)

	tbl.Insert()
	assert.Equal(t, 3, tbl.Len())
}

func TestSorted_InsertFunc(t *testing.T) {
	type row struct {
		name string
		age  int
	}
	rows := []row{{"carol", 40}, {"alice", 30}, {"bob", 35}}

	tbl := NewSorted[val]()
	InsertFunc[row, val](tbl, rows, func(r row) Entry[val] { return NewEntry(r.name, num(r.age)) })
	assert.Equal(t, "alice:30,bob:35,carol:40", dump(tbl))
}

func TestSorted_AtUnsupported(t *testing.T) {
	tbl := NewSorted[val]()
	tbl.Set("a", num(1))

	_, err := tbl.At(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnsupportedOperation)
	assert.NotErrorIs(t, err, errors.ErrOutOfRange)
}

func TestSorted_CopyMoveSwap(t *testing.T) {
	tbl := NewSorted[val]()
	tbl.Set("a", num(1))

	c := tbl.Clone()
	c.Set("b", num(2))
	assert.Equal(t, "a:1", dump(tbl))
	assert.Equal(t, "a:1,b:2", dump(c))

	moved := tbl.Take()
	assert.Equal(t, "a:1", dump(moved))
	assert.Equal(t, 0, tbl.Len())
	tbl.Set("z", num(26))
	assert.Equal(t, "z:26", dump(tbl))

	other := NewSorted[val]()
	other.Set("q", num(0))
	tbl.Swap(other)
	assert.Equal(t, "q:0", dump(tbl))
	assert.Equal(t, "z:26", dump(other))
}

func TestSorted_CapacityAndShrink(t *testing.T) {
	trims := 0
	tbl := NewSortedWithCapacity[val](4)
	assert.GreaterOrEqual(t, tbl.Cap(), 4)

	tbl.Reserve(32)
	assert.GreaterOrEqual(t, tbl.Cap(), 32)
	for _, k := range []string{"x", "y"} {
		tbl.Set(k, val{n: 1, trims: &trims})
	}

	tbl.ShrinkToFit()
	assert.Equal(t, 2, trims)
	assert.Equal(t, 2, tbl.Cap())

	tbl.Clear()
	assert.Equal(t, 0, tbl.Len())
	assert.True(t, tbl.Begin().Equal(tbl.End()))
}

func TestSorted_Equal(t *testing.T) {
	a := NewSorted[val]()
	b := NewSorted[val]()
	for i, k := range []string{"x", "y", "z"} {
		a.Set(k, num(i))
	}
	for i, k := range []string{"z", "y", "x"} {
		b.Set(k, num(2-i))
	}

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	b.Set("y", num(100))
	assert.False(t, a.Equal(b))

	b.Set("y", num(1))
	b.Set("w", num(0))
	assert.False(t, a.Equal(b))
}

func TestSorted_IteratorViews(t *testing.T) {
	tbl := NewSorted[val]()
	for i, k := range []string{"b", "a", "c"} {
		tbl.Set(k, num(i))
	}

	for it := tbl.Begin(); !it.Equal(tbl.End()); it.Inc() {
		e := it.Ptr()
		e.SetValue(num(e.Value().n * 10))
	}

	var back []string
	for it := tbl.CEnd(); !it.Equal(tbl.CBegin()); {
		it.Dec()
		back = append(back, it.Get().Key())
	}
	assert.Equal(t, []string{"c", "b", "a"}, back)
	assert.Equal(t, "a:10,b:0,c:20", dump(tbl))

	c := tbl.Find("b").Const()
	assert.Equal(t, 0, c.Get().Value().n)
}

func TestSorted_CursorValueUpdateKeepsOrder(t *testing.T) {
	tbl := NewSorted[val]()
	for _, k := range []string{"c", "a", "b"} {
		tbl.Set(k, num(0))
	}

	for it := tbl.Begin(); !it.IsEnd(); it.Inc() {
		it.Ptr().SetValue(num(len(it.Ptr().Key())))
	}
	it := tbl.Find("b")
	require.False(t, it.IsEnd())
	it.Ptr().SetValue(num(9))

	assert.Equal(t, "a:1,b:9,c:1", dump(tbl))
	assertStrictlyAscending(t, tbl)
	v, ok := tbl.Get("b")
	require.True(t, ok)
	assert.Equal(t, num(9), v)
}
