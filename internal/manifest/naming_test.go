package manifest

import "testing"

func TestChunkName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"components/Button.tsx", "components_button"},
		{"app/blog/[slug]/page.tsx", "app_blog__slug__page"},
		{"lib/util.js", "lib_util"},
		{"Nav-Bar.jsx", "nav_bar"},
		{`win\Path.ts`, "win_path"},
		{"components/Bütton.tsx", "components_bütton"},
		{"日本/page.tsx", "日本_page"},
		{"中国/page.tsx", "中国_page"},
		{"Ärger/Page.tsx", "Ärger_page"},
		{"v²/page.tsx", "v²_page"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ChunkName(tt.path); got != tt.want {
				t.Errorf("ChunkName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestModuleID(t *testing.T) {
	tests := []struct {
		path     string
		isClient bool
		want     string
	}{
		{"components/Counter.tsx", true, "client:components/Counter"},
		{"page.tsx", false, "server:page"},
		{"blog/[slug]/page.jsx", false, "server:blog/[slug]/page"},
		{`nested\Thing.ts`, true, "client:nested/Thing"},
		{"styles.module.css", false, "server:styles.module.css"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ModuleID(tt.path, tt.isClient); got != tt.want {
				t.Errorf("ModuleID(%q, %v) = %q, want %q", tt.path, tt.isClient, got, tt.want)
			}
		})
	}
}

func TestChunkURL(t *testing.T) {
	if got := ChunkURL("components_button"); got != "/_vista/static/chunks/components_button.js" {
		t.Errorf("ChunkURL() = %q", got)
	}
}
