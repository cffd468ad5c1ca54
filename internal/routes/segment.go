// Package routes maps the app directory tree onto URL routes.
//
// ClassifySegment is the single source of truth for segment syntax and is
// shared by the flat pattern compiler and the nested tree builder.
package routes

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind classifies a route segment or a compiled route.
type Kind int

const (
	Static Kind = iota
	Dynamic
	CatchAll
	Group
)

var kindNames = map[Kind]string{
	Static:   "static",
	Dynamic:  "dynamic",
	CatchAll: "catch-all",
	Group:    "group",
}

// String returns the kind name used in manifests and route trees.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalJSON encodes the kind as its name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown %s kind %q", "route", name)
}

// rank orders kinds for sorting: static, dynamic, then everything else.
func (k Kind) rank() int {
	switch k {
	case Static:
		return 0
	case Dynamic:
		return 1
	default:
		return 2
	}
}

// ClassifySegment returns the display label and kind of one directory name:
//
//	(name)     -> "", Group
//	[...name]  -> "name", CatchAll
//	[name]     -> "name", Dynamic
//	otherwise  -> name, Static
func ClassifySegment(name string) (string, Kind) {
	switch {
	case len(name) >= 2 && strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")"):
		return "", Group
	case len(name) >= 2 && strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]"):
		inner := name[1 : len(name)-1]
		if rest, ok := strings.CutPrefix(inner, "..."); ok {
			return rest, CatchAll
		}
		return inner, Dynamic
	default:
		return name, Static
	}
}
