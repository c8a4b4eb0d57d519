package formatter

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/mcncl/jsoncore/internal/document"
	"github.com/mcncl/jsoncore/internal/errors"
)

// Options controls the layout of the written JSON
type Options struct {
	// Pretty puts every element and member on its own line
	Pretty bool
	// Indent is the per-level indentation used when Pretty is set
	Indent string
	// TrailingNewline ends the output with a newline
	TrailingNewline bool
}

// DefaultIndent is used when Pretty is set and Indent is empty
const DefaultIndent = "  "

// Formatter writes document values as JSON text. Members are written in the
// storage order of their object, so sorted objects come out sorted and
// insertion-order objects keep their original order.
type Formatter struct {
	opts Options

	scratch bytes.Buffer
	quoter  *json.Encoder
}

// NewFormatter creates a new Formatter instance
func NewFormatter(opts Options) *Formatter {
	if opts.Pretty && opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	f := &Formatter{opts: opts}
	f.quoter = json.NewEncoder(&f.scratch)
	f.quoter.SetEscapeHTML(false)
	return f
}

// Format returns v as JSON text
func (f *Formatter) Format(v document.Value) (string, error) {
	var sb strings.Builder
	if err := f.Write(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write writes v as JSON text to w
func (f *Formatter) Write(w io.Writer, v document.Value) error {
	var buf bytes.Buffer
	if err := f.writeValue(&buf, v, 0); err != nil {
		return err
	}
	if f.opts.TrailingNewline {
		buf.WriteByte('\n')
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.NewOutputError("failed to write JSON output", err)
	}
	return nil
}

func (f *Formatter) writeValue(buf *bytes.Buffer, v document.Value, depth int) error {
	switch v.Kind() {
	case document.KindNull:
		buf.WriteString("null")
	case document.KindBool:
		b, _ := v.AsBool()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case document.KindNumber:
		n, _ := v.AsNumber()
		buf.WriteString(n.String())
	case document.KindString:
		s, _ := v.AsString()
		return f.writeString(buf, s)
	case document.KindArray:
		return f.writeArray(buf, v, depth)
	case document.KindObject:
		return f.writeObject(buf, v, depth)
	default:
		return errors.NewOutputError("cannot write value of kind "+v.Kind().String(), nil)
	}
	return nil
}

func (f *Formatter) writeArray(buf *bytes.Buffer, v document.Value, depth int) error {
	elems, err := v.Elements()
	if err != nil {
		return err
	}
	if elems.Len() == 0 {
		buf.WriteString("[]")
		return nil
	}

	buf.WriteByte('[')
	for i, e := range elems.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		f.newline(buf, depth+1)
		if err := f.writeValue(buf, e, depth+1); err != nil {
			return err
		}
	}
	f.newline(buf, depth)
	buf.WriteByte(']')
	return nil
}

func (f *Formatter) writeObject(buf *bytes.Buffer, v document.Value, depth int) error {
	members, err := v.Members()
	if err != nil {
		return err
	}
	if members.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}

	buf.WriteByte('{')
	first := true
	for key, val := range members.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		f.newline(buf, depth+1)
		if err := f.writeString(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if f.opts.Pretty {
			buf.WriteByte(' ')
		}
		if err := f.writeValue(buf, val, depth+1); err != nil {
			return err
		}
	}
	f.newline(buf, depth)
	buf.WriteByte('}')
	return nil
}

func (f *Formatter) newline(buf *bytes.Buffer, depth int) {
	if !f.opts.Pretty {
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString(f.opts.Indent)
	}
}

// writeString quotes s with JSON escaping, leaving HTML characters alone.
func (f *Formatter) writeString(buf *bytes.Buffer, s string) error {
	f.scratch.Reset()
	if err := f.quoter.Encode(s); err != nil {
		return errors.NewOutputError("failed to quote string", err)
	}
	buf.Write(bytes.TrimSuffix(f.scratch.Bytes(), []byte{'\n'}))
	return nil
}
