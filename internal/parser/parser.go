package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/jsoncore/internal/document"
	"github.com/mcncl/jsoncore/internal/errors" // Custom errors package
	"github.com/mcncl/jsoncore/internal/sequence"
	"github.com/mcncl/jsoncore/internal/table"
)

// Options controls how parsed objects are stored
type Options struct {
	// Strategy is the member strategy of every object in the document
	Strategy table.Strategy
	// BulkInsert collects the members of each object and stores them with a
	// single bulk insert instead of one Set per member
	BulkInsert bool
	// ShrinkToFit releases spare capacity once the whole document is built
	ShrinkToFit bool
}

// Parser builds document values from a JSON token stream
type Parser struct {
	opts Options
}

// New creates a parser with the given options
func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse reads a single JSON value from reader using sorted objects
func Parse(reader io.Reader) (document.Value, error) {
	return New(Options{}).Parse(reader)
}

// ParseString parses JSON from a string using sorted objects
func ParseString(jsonString string) (document.Value, error) {
	return New(Options{}).ParseString(jsonString)
}

// ParseFile parses JSON from a file path using sorted objects
func ParseFile(filePath string) (document.Value, error) {
	return New(Options{}).ParseFile(filePath)
}

// Parse reads exactly one JSON value from reader. Whitespace may follow the
// value; anything else is an error.
func (p *Parser) Parse(reader io.Reader) (document.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Keep the literal text of numbers

	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) { // io.EOF before the first token means nothing to parse
			return document.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return document.Value{}, decodeError(err)
	}

	root, err := p.parseValue(decoder, tok)
	if err != nil {
		return document.Value{}, err
	}

	// Only whitespace may follow the root value. A stray closing delimiter
	// makes More report false, so the next token is always read.
	if _, err := decoder.Token(); err == nil {
		return document.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return document.Value{}, errors.NewParsingError(
			fmt.Sprintf("invalid trailing data after first JSON value: %v", err),
			errors.ErrInvalidJSON,
		)
	}

	if p.opts.ShrinkToFit {
		root.ShrinkToFit()
	}
	return root, nil
}

func (p *Parser) next(decoder *json.Decoder) (json.Token, error) {
	tok, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError(
				fmt.Sprintf("unexpected end of input at offset %d", decoder.InputOffset()),
				errors.ErrInvalidJSON,
			)
		}
		return nil, decodeError(err)
	}
	return tok, nil
}

func (p *Parser) parseValue(decoder *json.Decoder, tok json.Token) (document.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return p.parseObject(decoder)
		case '[':
			return p.parseArray(decoder)
		}
		return document.Value{}, errors.NewParsingError(
			fmt.Sprintf("unexpected %q at offset %d", rune(t), decoder.InputOffset()),
			errors.ErrInvalidJSON,
		)
	case json.Number:
		return document.Number(t), nil
	case string:
		return document.String(t), nil
	case bool:
		return document.Bool(t), nil
	case nil:
		return document.Null(), nil
	}
	return document.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected token %v", tok), errors.ErrInvalidJSON)
}

// pendingMember is a parsed member waiting for the bulk insert
type pendingMember struct {
	key   string
	value document.Value
}

func (p *Parser) parseObject(decoder *json.Decoder) (document.Value, error) {
	obj := table.New[document.Value](p.opts.Strategy)
	var pending []pendingMember
	hint := obj.End()

	for decoder.More() {
		tok, err := p.next(decoder)
		if err != nil {
			return document.Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return document.Value{}, errors.NewParsingError(
				fmt.Sprintf("object key at offset %d is not a string", decoder.InputOffset()),
				errors.ErrInvalidJSON,
			)
		}

		tok, err = p.next(decoder)
		if err != nil {
			return document.Value{}, err
		}
		v, err := p.parseValue(decoder, tok)
		if err != nil {
			return document.Value{}, err
		}

		switch {
		case p.opts.BulkInsert:
			pending = append(pending, pendingMember{key: key, value: v})
		case obj.Strategy() == table.StrategySorted:
			// Members often arrive already sorted; the previous position
			// keeps each search short.
			hint = obj.SetHint(hint, key, v)
		default:
			obj.Set(key, v)
		}
	}

	if _, err := p.next(decoder); err != nil { // closing '}'
		return document.Value{}, err
	}

	if len(pending) > 0 {
		table.InsertFunc[pendingMember, document.Value](obj, pending, func(m pendingMember) table.Entry[document.Value] {
			return table.NewEntry(m.key, m.value)
		})
	}
	return document.FromTable(obj), nil
}

func (p *Parser) parseArray(decoder *json.Decoder) (document.Value, error) {
	arr := sequence.New[document.Value]()
	for decoder.More() {
		tok, err := p.next(decoder)
		if err != nil {
			return document.Value{}, err
		}
		v, err := p.parseValue(decoder, tok)
		if err != nil {
			return document.Value{}, err
		}
		arr.PushBack(v)
	}

	if _, err := p.next(decoder); err != nil { // closing ']'
		return document.Value{}, err
	}
	return document.FromSequence(arr), nil
}

func decodeError(err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString parses JSON from a string
func (p *Parser) ParseString(jsonString string) (document.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return document.Value{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	return p.Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func (p *Parser) ParseFile(filePath string) (document.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return document.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return document.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return document.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("closing input file", "path", filePath, "err", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return document.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return document.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return p.Parse(file)
}
