package payload

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func samplePayload() *RSCPayload {
	var seq MountSequence
	props := map[string]Value{
		"null":      Null(),
		"undef":     Undefined(),
		"flag":      Bool(true),
		"off":       Bool(false),
		"count":     Number(42.5),
		"zero":      Number(0),
		"title":     String("Hello <world>"),
		"created":   Date("2024-01-01T00:00:00.000Z"),
		"items":     Array(Number(1), String("two"), Array()),
		"nested":    Object(map[string]Value{"deep": Object(nil), "sym": Symbol("iterator")}),
		"child":     Element("el_1"),
		"onClick":   Function("handleClick"),
		"emptyList": Array(),
	}
	return &RSCPayload{
		HTML: "<div id=\"__vista_cc_0\"></div>",
		ClientReferences: []ClientReference{
			NewClientReference(&seq, "client:components/Counter", "/_vista/static/chunks/components_counter.js", props),
			NewClientReference(&seq, "client:components/Nav", "/_vista/static/chunks/components_nav.js", nil),
		},
		Data: RouteData{
			Route:        "/blog/:slug",
			Params:       map[string]string{"slug": "hello"},
			SearchParams: map[string]string{},
		},
		BuildID: "abc-123",
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := samplePayload()
	data, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, ok := Decode(data)
	if !ok {
		t.Fatalf("Decode failed for %s", data)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

const route = `{"route":"/","params":{},"search_params":{}}`

func refWith(props string) string {
	return `{"id":"client:x","mount_id":"__vista_cc_0","chunk_url":"/x.js","export_name":"default","props":` + props + `}`
}

func TestDecode_MinimalPayload(t *testing.T) {
	data := `{"html":"<div></div>","client_references":[` + refWith(`{}`) + `],"data":` + route + `,"build_id":"b1"}`
	p, ok := Decode([]byte(data))
	if !ok {
		t.Fatalf("Decode(%s) failed", data)
	}
	if p.BuildID != "b1" || len(p.ClientReferences) != 1 || p.ClientReferences[0].MountID != "__vista_cc_0" {
		t.Errorf("Decode() = %+v", p)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"garbage", "not json"},
		{"truncated", `{"html":"x","client_references":[`},
		{"unknown tag", `{"html":"","build_id":"b","data":` + route + `,"client_references":[` + refWith(`{"a":{"type":"Bigint","value":1}}`) + `]}`},
		{"wrong content", `{"html":"","build_id":"b","data":` + route + `,"client_references":[` + refWith(`{"a":{"type":"Number","value":"x"}}`) + `]}`},
		{"null", "null"},
		{"empty object", "{}"},
		{"array", "[]"},
		{"missing data", `{"html":"","client_references":[],"build_id":"b"}`},
		{"null data", `{"html":"","client_references":[],"data":null,"build_id":"b"}`},
		{"missing route field", `{"html":"","client_references":[],"data":{"route":"/","params":{}},"build_id":"b"}`},
		{"missing reference field", `{"html":"","client_references":[{"id":"client:x"}],"data":` + route + `,"build_id":"b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p, ok := Decode([]byte(tt.data)); ok || p != nil {
				t.Errorf("Decode(%q) = (%v, %v), want (nil, false)", tt.data, p, ok)
			}
		})
	}
}

func TestEncodeNaN(t *testing.T) {
	p := &RSCPayload{ClientReferences: []ClientReference{{Props: map[string]Value{"n": Number(math.NaN())}}}}
	if _, err := Encode(p); err == nil {
		t.Error("expected an error encoding NaN")
	}
}

func TestValueWireFormat(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Null(), `{"type":"Null"}`},
		{Undefined(), `{"type":"Undefined"}`},
		{Bool(false), `{"type":"Boolean","value":false}`},
		{Number(3), `{"type":"Number","value":3}`},
		{String("x"), `{"type":"String","value":"x"}`},
		{Date("2024"), `{"type":"Date","value":"2024"}`},
		{Symbol("s"), `{"type":"Symbol","value":"s"}`},
		{Array(Null()), `{"type":"Array","value":[{"type":"Null"}]}`},
		{Object(map[string]Value{"a": Bool(true)}), `{"type":"Object","value":{"a":{"type":"Boolean","value":true}}}`},
		{Element("e1"), `{"type":"ReactElement","value":{"id":"e1"}}`},
		{Function("f"), `{"type":"Function","value":{"name":"f"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.value.Kind().String(), func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestMountSequence(t *testing.T) {
	var seq MountSequence
	seq.Next()
	seq.Next()
	seq.Reset()

	for i := 0; i < 3; i++ {
		want := fmt.Sprintf("__vista_cc_%d", i)
		if got := seq.Next(); got != want {
			t.Errorf("Next() = %q, want %q", got, want)
		}
	}
}

func TestMountSequence_Independent(t *testing.T) {
	var a, b MountSequence
	a.Next()
	if got := b.Next(); got != "__vista_cc_0" {
		t.Errorf("second sequence shares state: %q", got)
	}
}

func TestMountSequence_Concurrent(t *testing.T) {
	var seq MountSequence
	const n = 100

	var mu sync.Mutex
	seen := make(map[string]bool)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := seq.Next()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("expected %d unique ids, got %d", n, len(seen))
	}
}

func TestNewClientReference(t *testing.T) {
	var seq MountSequence
	ref := NewClientReference(&seq, "client:components/Button", "/_vista/static/chunks/button.js",
		map[string]Value{"title": String("Hello")})

	if ref.ID != "client:components/Button" || ref.MountID != "__vista_cc_0" || ref.ExportName != "default" {
		t.Errorf("NewClientReference() = %+v", ref)
	}
}

func TestHydrationScript(t *testing.T) {
	p := samplePayload()
	p.Data.Params["slug"] = "</script><script>alert(1)"

	script, err := HydrationScript(p)
	if err != nil {
		t.Fatalf("HydrationScript failed: %v", err)
	}

	for _, want := range []string{
		"window.__VISTA_RSC_DATA__ = ",
		"window.__VISTA_CLIENT_REFERENCES__ = [",
		`window.__VISTA_BUILD_ID__ = "abc-123";`,
		`"chunk_url":"/_vista/static/chunks/components_counter.js"`,
		"await import(ref.chunk_url)",
		"console.error('[Vista RSC] Hydration error:'",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}

	if strings.Count(script, "</script>") != 2 {
		t.Errorf("embedded data must not close the script element:\n%s", script)
	}
}

func TestHydrationScript_NoReferences(t *testing.T) {
	script, err := HydrationScript(&RSCPayload{BuildID: "b"})
	if err != nil {
		t.Fatalf("HydrationScript failed: %v", err)
	}
	if !strings.Contains(script, "window.__VISTA_CLIENT_REFERENCES__ = [];") {
		t.Errorf("expected an empty reference list:\n%s", script)
	}
}
