package payload

import (
	"encoding/json"
	"fmt"
	"strings"
)

// hydrationRuntime imports every referenced chunk and mounts it. A failure
// in one reference is logged and does not stop the others.
const hydrationRuntime = `<script type="module">
    const refs = window.__VISTA_CLIENT_REFERENCES__;

    async function hydrateAll() {
        for (const ref of refs) {
            try {
                const mod = await import(ref.chunk_url);
                const Comp = mod[ref.export_name] || mod.default;
                const el = document.getElementById(ref.mount_id);
                if (el && Comp) {
                    const { hydrateRoot } = await import('react-dom/client');
                    const React = await import('react');
                    hydrateRoot(el, React.createElement(Comp, deserializeProps(ref.props)));
                }
            } catch (e) {
                console.error('[Vista RSC] Hydration error:', ref.id, e);
            }
        }
    }

    function deserializeProps(props) {
        const result = {};
        for (const [k, v] of Object.entries(props || {})) {
            result[k] = deserializeValue(v);
        }
        return result;
    }

    function deserializeValue(v) {
        if (!v || typeof v !== 'object') return v;
        switch (v.type) {
            case 'Null': return null;
            case 'Undefined': return undefined;
            case 'Boolean':
            case 'Number':
            case 'String': return v.value;
            case 'Date': return new Date(v.value);
            case 'Symbol': return Symbol.for(v.value);
            case 'Array': return v.value.map(deserializeValue);
            case 'Object': return deserializeProps(v.value);
            case 'ReactElement': return null;
            case 'Function': return undefined;
            default: return v.value;
        }
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', hydrateAll);
    } else {
        hydrateAll();
    }
</script>
`

// HydrationScript renders the inline data script for p followed by the
// hydration runtime. The embedded JSON escapes <, > and & so it cannot close
// the script element early.
func HydrationScript(p *RSCPayload) (string, error) {
	data, err := json.Marshal(p.Data)
	if err != nil {
		return "", fmt.Errorf("failed to encode route data: %w", err)
	}
	refs := p.ClientReferences
	if refs == nil {
		refs = []ClientReference{}
	}
	refsJSON, err := json.Marshal(refs)
	if err != nil {
		return "", fmt.Errorf("failed to encode client references: %w", err)
	}
	buildID, err := json.Marshal(p.BuildID)
	if err != nil {
		return "", fmt.Errorf("failed to encode build id: %w", err)
	}

	var b strings.Builder
	b.WriteString("<script>\n")
	fmt.Fprintf(&b, "    window.__VISTA_RSC_DATA__ = %s;\n", data)
	fmt.Fprintf(&b, "    window.__VISTA_CLIENT_REFERENCES__ = %s;\n", refsJSON)
	fmt.Fprintf(&b, "    window.__VISTA_BUILD_ID__ = %s;\n", buildID)
	b.WriteString("</script>\n")
	b.WriteString(hydrationRuntime)
	return b.String(), nil
}
