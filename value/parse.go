package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// DefaultMaxDepth bounds array/object nesting accepted by Parse.
const DefaultMaxDepth = 10000

// dedupIndexThreshold is the member count above which duplicate-key detection
// switches from a linear scan to a map.
const dedupIndexThreshold = 16

var (
	// ErrEmpty is returned when the input holds no JSON value.
	ErrEmpty = errors.New("no JSON value")
	// ErrTrailingData is returned when data follows the first JSON value.
	ErrTrailingData = errors.New("unexpected data after top-level value")
	// ErrTooDeep is returned when nesting exceeds the configured depth.
	ErrTooDeep = errors.New("exceeded max nesting depth")
	// ErrInvalidUTF8 is returned when the input is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
)

// Parse decodes exactly one JSON document from data.
//
// Object key order is preserved. When an object repeats a key, the member
// stays at the position of its first occurrence and takes the last value.
// Numbers keep their literal text. Input that is not valid UTF-8 is rejected
// rather than repaired.
func Parse(data []byte) (Value, error) {
	return ParseDepth(data, DefaultMaxDepth)
}

// ParseDepth is Parse with an explicit nesting limit.
func ParseDepth(data []byte, maxDepth int) (Value, error) {
	if !utf8.Valid(data) {
		return Value{}, ErrInvalidUTF8
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	p := parser{dec: dec, maxDepth: maxDepth}

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return Value{}, ErrEmpty
	}
	if err != nil {
		return Value{}, err
	}

	v, err := p.value(tok, 0)
	if err != nil {
		return Value{}, err
	}

	tok, err = dec.Token()
	switch {
	case errors.Is(err, io.EOF):
		return v, nil
	case err != nil:
		return Value{}, err
	default:
		return Value{}, fmt.Errorf("%w: %v", ErrTrailingData, tok)
	}
}

type parser struct {
	dec      *json.Decoder
	maxDepth int
}

// next reads one token. EOF inside a value is always premature.
func (p *parser) next() (json.Token, error) {
	tok, err := p.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}

	return tok, err
}

func (p *parser) value(tok json.Token, depth int) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(string(t)), nil
	case string:
		return Str(t), nil
	case json.Delim:
		if depth >= p.maxDepth {
			return Value{}, ErrTooDeep
		}
		switch t {
		case '{':
			return p.object(depth + 1)
		case '[':
			return p.array(depth + 1)
		}

		return Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
	default:
		return Value{}, fmt.Errorf("unexpected token type %T", tok)
	}
}

func (p *parser) array(depth int) (Value, error) {
	elems := []Value{}
	for p.dec.More() {
		tok, err := p.next()
		if err != nil {
			return Value{}, err
		}
		v, err := p.value(tok, depth)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}

	// closing ']'
	if _, err := p.next(); err != nil {
		return Value{}, err
	}

	return Value{kind: KindArray, elems: elems}, nil
}

func (p *parser) object(depth int) (Value, error) {
	members := []Member{}
	var index map[string]int

	for p.dec.More() {
		tok, err := p.next()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("expected object key, got %v", tok)
		}

		tok, err = p.next()
		if err != nil {
			return Value{}, err
		}
		v, err := p.value(tok, depth)
		if err != nil {
			return Value{}, err
		}

		if index == nil && len(members) >= dedupIndexThreshold {
			index = make(map[string]int, len(members)*2)
			for i := range members {
				index[members[i].Key] = i
			}
		}

		if i, dup := lookup(members, index, key); dup {
			members[i].Value = v
			continue
		}
		if index != nil {
			index[key] = len(members)
		}
		members = append(members, Member{Key: key, Value: v})
	}

	// closing '}'
	if _, err := p.next(); err != nil {
		return Value{}, err
	}

	return Value{kind: KindObject, members: members}, nil
}

func lookup(members []Member, index map[string]int, key string) (int, bool) {
	if index != nil {
		i, ok := index[key]
		return i, ok
	}
	for i := range members {
		if members[i].Key == key {
			return i, true
		}
	}

	return 0, false
}
