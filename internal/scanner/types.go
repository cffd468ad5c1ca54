package scanner

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind classifies a source file by its base name.
type Kind int

const (
	KindComponent Kind = iota
	KindPage
	KindLayout
	KindLoading
	KindError
	KindNotFound
	KindRoute
)

var kindNames = map[Kind]string{
	KindComponent: "component",
	KindPage:      "page",
	KindLayout:    "layout",
	KindLoading:   "loading",
	KindError:     "error",
	KindNotFound:  "notfound",
	KindRoute:     "route",
}

// String returns the lower-case kind name used in manifests.
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
	return fmt.Errorf("unknown %s kind %q", "component", name)
}

// KindFromName maps a file base name (without extension) to its Kind.
// The match is exact and case sensitive.
func KindFromName(stem string) Kind {
	switch stem {
	case "page", "index":
		return KindPage
	case "layout", "root":
		return KindLayout
	case "loading":
		return KindLoading
	case "error":
		return KindError
	case "not-found":
		return KindNotFound
	case "route":
		return KindRoute
	default:
		return KindComponent
	}
}

// Component is the analysis of one source file. It is never mutated after
// the scan that produced it.
type Component struct {
	AbsolutePath        string   `json:"absolutePath"`
	RelativePath        string   `json:"relativePath"`
	IsClient            bool     `json:"isClient"`
	DirectiveLine       int      `json:"directiveLine"`
	Kind                Kind     `json:"componentType"`
	Exports             []string `json:"exports"`
	ClientHooksUsed     []string `json:"clientHooksUsed"`
	HasMetadata         bool     `json:"hasMetadata"`
	HasGenerateMetadata bool     `json:"hasGenerateMetadata"`
}

// ServerComponentError reports client-only APIs used by a file without the
// client directive.
type ServerComponentError struct {
	File    string   `json:"file"`
	Message string   `json:"message"`
	Hooks   []string `json:"hooks"`
}

// Result aggregates one scan. The classification slices are filtered views
// sharing the component pointers held in Components.
type Result struct {
	// Components lists every scanned file in walk order.
	Components []*Component `json:"-"`

	ClientComponents []*Component          `json:"clientComponents"`
	ServerComponents []*Component          `json:"serverComponents"`
	Pages            []*Component          `json:"pages"`
	Layouts          []*Component          `json:"layouts"`
	APIRoutes        []*Component          `json:"apiRoutes"`
	Errors           []ServerComponentError `json:"errors"`

	TotalFiles int           `json:"totalFiles"`
	Elapsed    time.Duration `json:"-"`
	ScanTimeMS int64         `json:"scanTimeMs"`
}

// OfKind returns the scanned components of kind k in walk order.
func (r *Result) OfKind(k Kind) []*Component {
	var out []*Component
	for _, c := range r.Components {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// newResult builds the classification views over components.
func newResult(components []*Component, errs []ServerComponentError) *Result {
	r := &Result{
		Components:       components,
		ClientComponents: []*Component{},
		ServerComponents: []*Component{},
		Pages:            []*Component{},
		Layouts:          []*Component{},
		APIRoutes:        []*Component{},
		Errors:           errs,
		TotalFiles:       len(components),
	}
	if r.Errors == nil {
		r.Errors = []ServerComponentError{}
	}

	for _, c := range components {
		switch {
		case c.IsClient:
			r.ClientComponents = append(r.ClientComponents, c)
		case c.Kind != KindRoute:
			r.ServerComponents = append(r.ServerComponents, c)
		}
		switch c.Kind {
		case KindPage:
			r.Pages = append(r.Pages, c)
		case KindLayout:
			r.Layouts = append(r.Layouts, c)
		case KindRoute:
			// A client route file is a client component, not an API route
			if !c.IsClient {
				r.APIRoutes = append(r.APIRoutes, c)
			}
		}
	}
	return r
}
