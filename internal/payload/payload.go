package payload

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
)

// MountIDPrefix prefixes every DOM mount id.
const MountIDPrefix = "__vista_cc_"

// ClientReference is a client component hole in the server rendered HTML.
type ClientReference struct {
	ID         string           `json:"id"`
	MountID    string           `json:"mount_id"`
	Props      map[string]Value `json:"props"`
	ChunkURL   string           `json:"chunk_url"`
	ExportName string           `json:"export_name"`
}

// RouteData describes the matched route.
type RouteData struct {
	Route        string            `json:"route"`
	Params       map[string]string `json:"params"`
	SearchParams map[string]string `json:"search_params"`
}

// RSCPayload is everything the browser needs to hydrate one response.
type RSCPayload struct {
	HTML             string            `json:"html"`
	ClientReferences []ClientReference `json:"client_references"`
	Data             RouteData         `json:"data"`
	BuildID          string            `json:"build_id"`
}

// Encode serializes p.
func Encode(p *RSCPayload) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}

// Decode parses bytes produced by Encode. Malformed input, including an
// object missing any payload, route or reference field, yields false.
func Decode(data []byte) (*RSCPayload, bool) {
	if !complete(data) {
		return nil, false
	}
	var p RSCPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	return &p, true
}

var (
	payloadFields   = []string{"html", "client_references", "data", "build_id"}
	routeFields     = []string{"route", "params", "search_params"}
	referenceFields = []string{"id", "mount_id", "props", "chunk_url", "export_name"}
)

// complete reports whether data carries every field Encode writes.
func complete(data []byte) bool {
	top, ok := object(data, payloadFields)
	if !ok {
		return false
	}
	if _, ok := object(top["data"], routeFields); !ok {
		return false
	}
	var refs []json.RawMessage
	if err := json.Unmarshal(top["client_references"], &refs); err != nil {
		return false
	}
	for _, ref := range refs {
		if _, ok := object(ref, referenceFields); !ok {
			return false
		}
	}
	return true
}

// object decodes raw as a JSON object holding at least the named keys.
func object(raw json.RawMessage, keys []string) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return nil, false
		}
	}
	return obj, true
}

// MountSequence allocates mount ids. Ids are unique until the next Reset.
// A host typically owns one sequence per request.
type MountSequence struct {
	n atomic.Uint64
}

// Next returns the next mount id, starting at MountIDPrefix + "0".
func (s *MountSequence) Next() string {
	return MountIDPrefix + strconv.FormatUint(s.n.Add(1)-1, 10)
}

// Reset restarts the sequence at zero.
func (s *MountSequence) Reset() {
	s.n.Store(0)
}

// NewClientReference creates a reference to the default export of moduleID
// with a fresh mount id from seq.
func NewClientReference(seq *MountSequence, moduleID, chunkURL string, props map[string]Value) ClientReference {
	if props == nil {
		props = map[string]Value{}
	}
	return ClientReference{
		ID:         moduleID,
		MountID:    seq.Next(),
		Props:      props,
		ChunkURL:   chunkURL,
		ExportName: "default",
	}
}
