package payload

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Reserved markers of the dynamic value shape produced by the renderer.
const (
	DatePrefix   = "__DATE__:"
	SymbolPrefix = "__SYMBOL__:"
	TypeField    = "__type"
)

// FromDynamic converts a decoded JSON-like value into a Value.
//
// Strings carrying DatePrefix or SymbolPrefix become Date or Symbol. Objects
// whose TypeField names undefined, Date, ReactElement or Function are
// reinterpreted when the expected field is a string; otherwise they are
// plain objects. Shapes outside the JSON model degrade to a Function marker
// named after the Go type.
func FromDynamic(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return String(x.String())
		}
		return Number(f)
	case string:
		return fromString(x)
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = FromDynamic(item)
		}
		return Array(items...)
	case map[string]any:
		return fromObject(x)
	}
	return fromReflect(v)
}

func fromString(s string) Value {
	if rest, ok := strings.CutPrefix(s, DatePrefix); ok {
		return Date(rest)
	}
	if rest, ok := strings.CutPrefix(s, SymbolPrefix); ok {
		return Symbol(rest)
	}
	return String(s)
}

func fromObject(obj map[string]any) Value {
	if tag, ok := obj[TypeField].(string); ok {
		switch tag {
		case "undefined":
			return Undefined()
		case "Date":
			if s, ok := obj["value"].(string); ok {
				return Date(s)
			}
		case "ReactElement":
			if s, ok := obj["id"].(string); ok {
				return Element(s)
			}
		case "Function":
			if s, ok := obj["name"].(string); ok {
				return Function(s)
			}
		}
	}

	fields := make(map[string]Value, len(obj))
	for k, item := range obj {
		fields[k] = FromDynamic(item)
	}
	return Object(fields)
}

// fromReflect handles named scalar types, typed slices and string-keyed
// maps, and degrades everything else.
func fromReflect(v any) Value {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.String:
		return fromString(rv.String())
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = FromDynamic(rv.Index(i).Interface())
		}
		return Array(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		obj := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			obj[iter.Key().String()] = iter.Value().Interface()
		}
		return fromObject(obj)
	case reflect.Pointer:
		if rv.IsNil() {
			return Null()
		}
		return FromDynamic(rv.Elem().Interface())
	}
	return Function(fmt.Sprintf("%T", v))
}

// ToDynamic converts v back into the dynamic shape FromDynamic accepts.
func ToDynamic(v Value) any {
	switch v.kind {
	case KindUndefined:
		return map[string]any{TypeField: "undefined"}
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindDate:
		return DatePrefix + v.str
	case KindSymbol:
		return SymbolPrefix + v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = ToDynamic(item)
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, item := range v.obj {
			out[k] = ToDynamic(item)
		}
		return out
	case KindReactElement:
		return map[string]any{TypeField: "ReactElement", "id": v.str}
	case KindFunction:
		return map[string]any{TypeField: "Function", "name": v.str}
	default:
		return nil
	}
}
