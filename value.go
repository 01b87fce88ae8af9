// value.go — the typed runtime value model.
package mar

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold. The tag determines
// which Go type lives in Value.Data.
type ValueTag int

const (
	VTInt   ValueTag = iota // int32
	VTFloat                 // float64
	VTBool                  // bool
	VTStr                   // string
	VTList                  // []Value
	VTNone                  // no payload
)

func (t ValueTag) String() string {
	switch t {
	case VTInt:
		return "Int"
	case VTFloat:
		return "Float"
	case VTBool:
		return "Bool"
	case VTStr:
		return "Str"
	case VTList:
		return "List"
	case VTNone:
		return "None"
	default:
		return "Unknown"
	}
}

// Value is the universal runtime carrier. Exactly one payload is live per
// instance: the Go value in Data matches Tag, and Data is nil only for
// VTNone. There is no observable "undefined" value.
type Value struct {
	Tag  ValueTag
	Data any
}

// None is the singleton None value.
var None = Value{Tag: VTNone}

func IntV(n int32) Value     { return Value{Tag: VTInt, Data: n} }
func FloatV(f float64) Value { return Value{Tag: VTFloat, Data: f} }
func BoolV(b bool) Value     { return Value{Tag: VTBool, Data: b} }
func StrV(s string) Value    { return Value{Tag: VTStr, Data: s} }
func ListV(xs []Value) Value { return Value{Tag: VTList, Data: xs} }

// String renders the canonical textual form used by print/println. Scalars
// print their literal value, None prints as the text "None", and a list
// prints as its bracketed debug dump — lists deliberately do not route their
// elements through the scalar stringifier.
func (v Value) String() string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(int64(v.Data.(int32)), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTStr:
		return v.Data.(string)
	case VTNone:
		return "None"
	case VTList:
		return v.Debug()
	default:
		return "<unknown>"
	}
}

// Debug renders a tagged dump of the value: Int(5), Str("ab"), and lists as
// a bracketed, comma-separated dump of their elements' debug forms.
func (v Value) Debug() string {
	switch v.Tag {
	case VTInt:
		return fmt.Sprintf("Int(%d)", v.Data.(int32))
	case VTFloat:
		return fmt.Sprintf("Float(%s)", strconv.FormatFloat(v.Data.(float64), 'g', -1, 64))
	case VTBool:
		return fmt.Sprintf("Bool(%t)", v.Data.(bool))
	case VTStr:
		return fmt.Sprintf("Str(%q)", v.Data.(string))
	case VTNone:
		return "None"
	case VTList:
		elems := v.Data.([]Value)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.Debug()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<unknown>"
	}
}
