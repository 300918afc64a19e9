package value

import (
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

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
		return "unknown"
	}
}

// Value is one JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	s       string // number literal or string content
	elems   []Value
	members []Member
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// Bool returns a JSON boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a JSON number carrying lit verbatim.
//
// lit must already be a valid JSON number literal; it is not validated.
func Number(lit string) Value { return Value{kind: KindNumber, s: lit} }

// Float returns a JSON number for f formatted with FormatFloat.
// f must be finite: NaN and infinities have no JSON representation.
func Float(f float64) Value { return Value{kind: KindNumber, s: FormatFloat(f)} }

// Str returns a JSON string.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Array returns a JSON array holding elems.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}

	return Value{kind: KindArray, elems: elems}
}

// Object returns a JSON object holding members in the given order.
// Duplicate keys are kept as given.
func Object(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}

	return Value{kind: KindObject, members: members}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean held by v, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Literal returns the number literal held by v, or "" for other kinds.
func (v Value) Literal() string {
	if v.kind != KindNumber {
		return ""
	}

	return v.s
}

// Text returns the string held by v, or "" for other kinds.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}

	return v.s
}

// Float64 parses the number literal held by v.
//
// Literals beyond the float64 range parse to ±Inf together with a
// strconv.ErrRange error.
func (v Value) Float64() (float64, error) {
	if v.kind != KindNumber {
		return 0, &KindError{Want: KindNumber, Got: v.kind}
	}

	return strconv.ParseFloat(v.s, 64)
}

// Elems returns the backing slice of an array, or nil for other kinds.
func (v Value) Elems() []Value { return v.elems }

// Members returns the backing slice of an object, or nil for other kinds.
func (v Value) Members() []Member { return v.members }

// Get returns the value of the first member named key.
func (v Value) Get(key string) (Value, bool) {
	for i := range v.members {
		if v.members[i].Key == key {
			return v.members[i].Value, true
		}
	}

	return Value{}, false
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	return string(AppendCompact(nil, v))
}

// KindError is returned when an accessor is used on the wrong variant.
type KindError struct {
	Want Kind
	Got  Kind
}

func (e *KindError) Error() string {
	return "value: expected " + e.Want.String() + ", got " + e.Got.String()
}
