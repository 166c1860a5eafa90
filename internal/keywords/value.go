package keywords

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the Value variant.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindBlock:
		return "block"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a keyword value.
type Value struct {
	kind  Kind
	str   string
	num   int64
	flt   float64
	flag  bool
	block Map
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Block returns a value holding a nested keyword map.
func Block(m Map) Value { return Value{kind: KindBlock, block: m.Clone()} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsBlock reports whether v holds a nested keyword map.
func (v Value) IsBlock() bool { return v.kind == KindBlock }

// AsBlock returns the nested map of a block value.
func (v Value) AsBlock() (Map, bool) {
	if v.kind != KindBlock {
		return Map{}, false
	}
	return v.block, true
}

// AsString returns the string of a string value.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsInt returns the integer of an integer value.
func (v Value) AsInt() (int64, bool) { return v.num, v.kind == KindInt }

// AsFloat returns the float of a float value.
func (v Value) AsFloat() (float64, bool) { return v.flt, v.kind == KindFloat }

// AsBool returns the flag of a boolean value.
func (v Value) AsBool() (bool, bool) { return v.flag, v.kind == KindBool }

// Truthy follows the usual truth rules: false, zero, the empty string and
// the empty block are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindInt:
		return v.num != 0
	case KindFloat:
		return v.flt != 0
	case KindBool:
		return v.flag
	case KindBlock:
		return v.block.Len() > 0
	}
	return false
}

// Render returns the text form of a scalar. Booleans render as lowercase
// literals. Blocks have no scalar form and render as the empty string.
func (v Value) Render() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.flag)
	}
	return ""
}

// Quoted is Render with strings wrapped in double quotes, except for the
// literal tokens "true" and "false" in any casing.
func (v Value) Quoted() string {
	if v.kind == KindString && !strings.EqualFold(v.str, "true") && !strings.EqualFold(v.str, "false") {
		return `"` + v.str + `"`
	}
	return v.Render()
}

// Equal reports whether two values hold the same variant and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.num == o.num
	case KindFloat:
		return v.flt == o.flt
	case KindBool:
		return v.flag == o.flag
	case KindBlock:
		return v.block.Equal(o.block)
	}
	return false
}

func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindBlock:
		return "{" + strings.Join(v.block.Keys(), ", ") + "}"
	}
	return v.Render()
}
