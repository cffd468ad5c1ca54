package prerender

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/vista/internal/fsops"
)

const counter = `'client load';
import { useState } from 'react';

export default function Counter() {
  const [count, setCount] = useState(0);
  return (
    <div style={{ padding: '24px', backgroundColor: "#000", borderRadius: '8px', fontWeight: 700, unknown: 'x' }}>
      <h2>Counter</h2>
      <p className="value">{count}</p>
      <div>
        <button onClick={() => setCount(count - 1)}>-</button>
        <button onClick={() => setCount(count + 1)}>+</button>
      </div>
    </div>
  );
}
`

func TestParseStyleObject(t *testing.T) {
	body := `
            padding: '20px',
            backgroundColor: '#1a1a2e',
            borderRadius: "12px",
            'textAlign': 'left',
            margin: 0,
            nope
        `
	want := Styles{
		Padding:         "20px",
		BackgroundColor: "#1a1a2e",
		BorderRadius:    "12px",
		TextAlign:       "left",
		Margin:          "0",
	}
	if diff := cmp.Diff(want, ParseStyleObject(body)); diff != "" {
		t.Errorf("ParseStyleObject() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractStyles(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Styles
	}{
		{"first object wins", `<div style={{ color: 'red' }}><p style={{ color: 'blue' }} /></div>`, Styles{Color: "red"}},
		{"nested braces", `<div style={{ gap: '4px', ...{ x: 1 }, display: 'flex' }}>`, Styles{Gap: "4px", Display: "flex"}},
		{"unbalanced", `<div style={{ color: 'red'`, Styles{}},
		{"none", `<div className="x">`, Styles{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ExtractStyles(tt.source)); diff != "" {
				t.Errorf("ExtractStyles() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEstimateHeight(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		want   int
	}{
		{"empty", Counts{}, 40},
		{"root only", Counts{Divs: 1}, 40},
		{"odd buttons", Counts{Buttons: 3}, 40 + 75},
		{"mixed", Counts{Headings: 1, Paragraphs: 2, Buttons: 2, Divs: 3}, 40 + 40 + 120 + 50 + 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateHeight(tt.counts); got != tt.want {
				t.Errorf("EstimateHeight(%+v) = %d, want %d", tt.counts, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	c, ok := Render("/app/components/Counter.tsx", counter)
	if !ok {
		t.Fatal("expected Counter to prerender")
	}

	if c.ID != "client:Counter" || c.RootTag != "div" || c.EstimatedWidth != nil {
		t.Errorf("Render() = %+v", c)
	}
	wantCounts := Counts{Headings: 1, Paragraphs: 1, Buttons: 2, Divs: 2}
	if c.Counts != wantCounts {
		t.Errorf("Counts = %+v, want %+v", c.Counts, wantCounts)
	}
	if c.EstimatedHeight != 40+40+60+50+20 {
		t.Errorf("EstimatedHeight = %d", c.EstimatedHeight)
	}
	if c.RootStyles.FontWeight != "700" || c.RootStyles.Padding != "24px" {
		t.Errorf("RootStyles = %+v", c.RootStyles)
	}

	html := c.PlaceholderHTML
	for _, want := range []string{
		`<div style="padding:24px;background-color:#000;border-radius:8px;text-align:center;margin:20px 0;">`,
		`<div style="display:flex;gap:10px;justify-content:center;">`,
		"linear-gradient(90deg,rgba(255,71,87,0.3) 25%,rgba(255,255,255,0.1) 50%,rgba(255,71,87,0.3) 75%)",
		"linear-gradient(90deg,rgba(46,213,115,0.3) 25%,rgba(255,255,255,0.1) 50%,rgba(46,213,115,0.3) 75%)",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("placeholder missing %q:\n%s", want, html)
		}
	}
	if strings.Count(html, "height:24px") != 1 || strings.Count(html, "height:48px;width:60px") != 1 {
		t.Errorf("expected one heading and one paragraph shimmer:\n%s", html)
	}
	if !strings.HasSuffix(html, shimmerKeyframes) {
		t.Errorf("placeholder should end with the keyframes")
	}
}

func TestPlaceholderHTML_Defaults(t *testing.T) {
	got := PlaceholderHTML(Styles{}, Counts{})
	want := `<div style="padding:20px;background-color:#1a1a2e;border-radius:12px;text-align:center;margin:20px 0;"></div>` + shimmerKeyframes
	if got != want {
		t.Errorf("PlaceholderHTML() = %s, want %s", got, want)
	}
}

func TestRender_RequiresLeadingDirective(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"single quoted", "'client load';\n<div/>", true},
		{"double quoted", "\"client load\"\n<div/>", true},
		{"leading comment", "// note\n'client load';\n<div/>", false},
		{"leading blank line", "\n'client load';", false},
		{"leading space", " 'client load';", false},
		{"server", "export default function A() {}", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Render("A.tsx", tt.source); ok != tt.want {
				t.Errorf("Render() ok = %v, want %v", ok, tt.want)
			}
		})
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestComponent(t *testing.T) {
	root := writeFiles(t, map[string]string{"Counter.tsx": counter})
	p := New(fsops.NewRealFS(), nil)

	if _, ok := p.Component(filepath.Join(root, "Counter.tsx")); !ok {
		t.Error("expected Counter.tsx to prerender")
	}
	if _, ok := p.Component(filepath.Join(root, "Missing.tsx")); ok {
		t.Error("missing file should yield false")
	}
}

func TestAll(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"components/Counter.tsx": counter,
		"components/Nav.jsx":     "'client load';\n<nav />",
		"components/Server.tsx":  "export default function Server() {}",
		"lib/hook.ts":            "'client load';\nexport const x = 1;",
		"a/Dup.tsx":              "'client load';\n<h2>a</h2>",
		"b/Dup.tsx":              "'client load';\n<h2>b</h2><h2>b</h2>",
		"node_modules/x/Lib.tsx": "'client load';",
		".storybook/Preview.tsx": "'client load';",
	})

	got, err := New(fsops.NewRealFS(), nil).All(context.Background(), root)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}

	var ids []string
	for id := range got {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	want := []string{"client:Counter", "client:Dup", "client:Nav"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("All() ids mismatch (-want +got):\n%s", diff)
	}
	if got["client:Dup"].Counts.Headings != 2 {
		t.Errorf("later file should win for duplicate stems, got %+v", got["client:Dup"])
	}
}

func TestAll_Cancelled(t *testing.T) {
	root := writeFiles(t, map[string]string{"A.tsx": "'client load';"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(fsops.NewRealFS(), nil).All(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAll_SymlinkedDirectory(t *testing.T) {
	root := writeFiles(t, map[string]string{"page.tsx": "export default function Page() {}"})
	outside := writeFiles(t, map[string]string{"Widget.tsx": "'client load';\n<div><p >w</p></div>"})
	if err := os.Symlink(outside, filepath.Join(root, "shared")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := New(fsops.NewRealFS(), nil).All(context.Background(), root)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	w, ok := got["client:Widget"]
	if !ok || len(got) != 1 {
		t.Fatalf("All() = %v, want only client:Widget", got)
	}
	if w.Path != filepath.Join(root, "shared", "Widget.tsx") {
		t.Errorf("Path = %s, want the path under the app dir", w.Path)
	}
}
