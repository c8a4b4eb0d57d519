package table

import (
	"fmt"
	"strings"

	stderrors "errors"
)

// val is a minimal element: a number or a string, with an optional counter
// bumped by ShrinkToFit.
type val struct {
	n     int
	s     string
	str   bool
	trims *int
}

func num(n int) val { return val{n: n} }
func text(s string) val { return val{s: s, str: true} }

func (v val) Equal(o val) bool { return v.n == o.n && v.s == o.s && v.str == o.str }
func (v val) Clone() val { return v }
func (v val) ShrinkToFit() {
	if v.trims != nil {
		*v.trims++
	}
}
func (v val) IsString() bool { return v.str }
func (v val) AsString() (string, error) {
	if !v.str {
		return "", stderrors.New("not a string")
	}
	return v.s, nil
}

func (v val) String() string {
	if v.str {
		return v.s
	}
	return fmt.Sprint(v.n)
}

// dump renders a table as "k:v,k:v" in storage order.
func dump(t Table[val]) string {
	var parts []string
	for k, v := range t.All() {
		parts = append(parts, k+":"+v.String())
	}
	return strings.Join(parts, ",")
}
