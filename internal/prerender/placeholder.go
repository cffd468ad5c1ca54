package prerender

import (
	"fmt"
	"strings"
)

// Counts are the opening tag occurrences used for size estimates.
type Counts struct {
	Headings   int `json:"headings"`
	Paragraphs int `json:"paragraphs"`
	Buttons    int `json:"buttons"`
	Divs       int `json:"divs"`
}

// CountElements counts raw opening tag prefixes. Nesting and conditional
// rendering are not considered.
func CountElements(source string) Counts {
	return Counts{
		Headings:   strings.Count(source, "<h2"),
		Paragraphs: strings.Count(source, "<p "),
		Buttons:    strings.Count(source, "<button"),
		Divs:       strings.Count(source, "<div"),
	}
}

// EstimateHeight returns the placeholder height in pixels.
func EstimateHeight(c Counts) int {
	inner := c.Divs - 1 // root
	if inner < 0 {
		inner = 0
	}
	return 40 + c.Headings*40 + c.Paragraphs*60 + (c.Buttons*50)/2 + inner*20
}

const (
	defaultPadding      = "20px"
	defaultBackground   = "#1a1a2e"
	defaultBorderRadius = "12px"
	defaultTextAlign    = "center"
	defaultMargin       = "20px 0"
)

const (
	headingShimmer   = `<div style="height:24px;background:linear-gradient(90deg,#333 25%,#444 50%,#333 75%);background-size:200% 100%;animation:shimmer 1.5s infinite;border-radius:4px;margin-bottom:16px;width:80%;margin-left:auto;margin-right:auto;"></div>`
	paragraphShimmer = `<div style="height:48px;width:60px;background:linear-gradient(90deg,rgba(0,217,255,0.2) 25%,rgba(0,217,255,0.3) 50%,rgba(0,217,255,0.2) 75%);background-size:200% 100%;animation:shimmer 1.5s infinite;border-radius:8px;margin:20px auto;"></div>`
	buttonShimmer    = `<div style="width:72px;height:44px;background:linear-gradient(90deg,%[1]s 25%%,rgba(255,255,255,0.1) 50%%,%[1]s 75%%);background-size:200%% 100%%;animation:shimmer 1.5s infinite;border-radius:8px;"></div>`
	shimmerKeyframes = `<style>@keyframes shimmer{0%{background-position:200% 0}100%{background-position:-200% 0}}</style>`
)

var buttonColors = [2]string{"rgba(255,71,87,0.3)", "rgba(46,213,115,0.3)"}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// PlaceholderHTML renders shimmer markup shaped like the component.
func PlaceholderHTML(s Styles, c Counts) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div style="padding:%s;background-color:%s;border-radius:%s;text-align:%s;margin:%s;">`,
		or(s.Padding, defaultPadding),
		or(s.BackgroundColor, defaultBackground),
		or(s.BorderRadius, defaultBorderRadius),
		or(s.TextAlign, defaultTextAlign),
		or(s.Margin, defaultMargin))

	for i := 0; i < c.Headings; i++ {
		b.WriteString(headingShimmer)
	}
	for i := 0; i < c.Paragraphs; i++ {
		b.WriteString(paragraphShimmer)
	}
	if c.Buttons > 0 {
		b.WriteString(`<div style="display:flex;gap:10px;justify-content:center;">`)
		for i := 0; i < c.Buttons; i++ {
			fmt.Fprintf(&b, buttonShimmer, buttonColors[i%2])
		}
		b.WriteString("</div>")
	}
	b.WriteString("</div>")
	b.WriteString(shimmerKeyframes)
	return b.String()
}
