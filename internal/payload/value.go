// Package payload implements the RSC payload sent from the server renderer to
// the browser: a tagged value model for client component props, the payload
// codec, mount id allocation and the hydration bootstrap script.
package payload

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Kind is the variant tag of a Value. The names are part of the wire format.
type Kind int

const (
	KindNull Kind = iota
	KindUndefined
	KindBoolean
	KindNumber
	KindString
	KindDate
	KindArray
	KindObject
	KindReactElement
	KindSymbol
	KindFunction
)

var kindNames = [...]string{
	KindNull:         "Null",
	KindUndefined:    "Undefined",
	KindBoolean:      "Boolean",
	KindNumber:       "Number",
	KindString:       "String",
	KindDate:         "Date",
	KindArray:        "Array",
	KindObject:       "Object",
	KindReactElement: "ReactElement",
	KindSymbol:       "Symbol",
	KindFunction:     "Function",
}

// String returns the wire tag of k.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func parseKind(tag string) (Kind, bool) {
	for k, name := range kindNames {
		if name == tag {
			return Kind(k), true
		}
	}
	return 0, false
}

// Value is a serialized prop value. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string // String, Date, Symbol, element id or function name
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Undefined returns the undefined value.
func Undefined() Value { return Value{kind: KindUndefined} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Date returns a date value holding its textual representation.
func Date(s string) Value { return Value{kind: KindDate, str: s} }

// Array returns an array value.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Object returns an object value.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, obj: fields}
}

// Element returns a reference to a server rendered element.
func Element(id string) Value { return Value{kind: KindReactElement, str: id} }

// Symbol returns a symbol value.
func Symbol(s string) Value { return Value{kind: KindSymbol, str: s} }

// Function returns a marker for a function value. Only the name survives.
func Function(name string) Value { return Value{kind: KindFunction, str: name} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBoolean }

// AsNumber returns the numeric payload.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsString returns the payload of a String, Date or Symbol value.
func (v Value) AsString() (string, bool) {
	switch v.kind {
	case KindString, KindDate, KindSymbol:
		return v.str, true
	}
	return "", false
}

// ElementID returns the id of a ReactElement value.
func (v Value) ElementID() (string, bool) { return v.str, v.kind == KindReactElement }

// FunctionName returns the name of a Function marker.
func (v Value) FunctionName() (string, bool) { return v.str, v.kind == KindFunction }

// Items returns the elements of an Array value.
func (v Value) Items() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Fields returns the fields of an Object value.
func (v Value) Fields() (map[string]Value, bool) { return v.obj, v.kind == KindObject }

// Equal reports deep equality of two values.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull, KindUndefined:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return maps.EqualFunc(a.obj, b.obj, Equal)
	default:
		return a.str == b.str
	}
}

// Equal reports whether v and o are deeply equal. It lets go-cmp compare
// values without reaching into unexported fields.
func (v Value) Equal(o Value) bool { return Equal(v, o) }

type wireValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

type wireID struct {
	ID string `json:"id"`
}

type wireName struct {
	Name string `json:"name"`
}

// MarshalJSON encodes v as {"type": <tag>, "value": <content>}. Null and
// Undefined carry no value.
func (v Value) MarshalJSON() ([]byte, error) {
	var content any
	switch v.kind {
	case KindNull, KindUndefined:
		return json.Marshal(wireValue{Type: v.kind.String()})
	case KindBoolean:
		content = v.b
	case KindNumber:
		content = v.num
	case KindString, KindDate, KindSymbol:
		content = v.str
	case KindArray:
		content = v.arr
		if v.arr == nil {
			content = []Value{}
		}
	case KindObject:
		content = v.obj
		if v.obj == nil {
			content = map[string]Value{}
		}
	case KindReactElement:
		content = wireID{ID: v.str}
	case KindFunction:
		content = wireName{Name: v.str}
	default:
		return nil, fmt.Errorf("unknown value kind %d", int(v.kind))
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireValue{Type: v.kind.String(), Value: raw})
}

// UnmarshalJSON decodes the tagged form written by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := parseKind(w.Type)
	if !ok {
		return fmt.Errorf("unknown value type %q", w.Type)
	}

	out := Value{kind: kind}
	var err error
	switch kind {
	case KindNull, KindUndefined:
	case KindBoolean:
		err = json.Unmarshal(w.Value, &out.b)
	case KindNumber:
		err = json.Unmarshal(w.Value, &out.num)
	case KindString, KindDate, KindSymbol:
		err = json.Unmarshal(w.Value, &out.str)
	case KindArray:
		out.arr = []Value{}
		err = json.Unmarshal(w.Value, &out.arr)
	case KindObject:
		out.obj = map[string]Value{}
		err = json.Unmarshal(w.Value, &out.obj)
	case KindReactElement:
		var id wireID
		err = json.Unmarshal(w.Value, &id)
		out.str = id.ID
	case KindFunction:
		var name wireName
		err = json.Unmarshal(w.Value, &name)
		out.str = name.Name
	}
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", w.Type, err)
	}
	*v = out
	return nil
}
