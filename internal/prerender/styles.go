package prerender

import "strings"

// Styles holds the recognized properties of a component's root style
// object. Values are raw strings; an empty field was not set.
type Styles struct {
	Padding         string `json:"padding,omitempty"`
	Margin          string `json:"margin,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	BorderRadius    string `json:"borderRadius,omitempty"`
	TextAlign       string `json:"textAlign,omitempty"`
	Display         string `json:"display,omitempty"`
	FlexDirection   string `json:"flexDirection,omitempty"`
	Gap             string `json:"gap,omitempty"`
	JustifyContent  string `json:"justifyContent,omitempty"`
	AlignItems      string `json:"alignItems,omitempty"`
	Width           string `json:"width,omitempty"`
	Height          string `json:"height,omitempty"`
	MinHeight       string `json:"minHeight,omitempty"`
	MinWidth        string `json:"minWidth,omitempty"`
	Color           string `json:"color,omitempty"`
	FontSize        string `json:"fontSize,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty"`
}

// field returns the destination for a camelCase style key.
func (s *Styles) field(key string) *string {
	switch key {
	case "padding":
		return &s.Padding
	case "margin":
		return &s.Margin
	case "backgroundColor":
		return &s.BackgroundColor
	case "borderRadius":
		return &s.BorderRadius
	case "textAlign":
		return &s.TextAlign
	case "display":
		return &s.Display
	case "flexDirection":
		return &s.FlexDirection
	case "gap":
		return &s.Gap
	case "justifyContent":
		return &s.JustifyContent
	case "alignItems":
		return &s.AlignItems
	case "width":
		return &s.Width
	case "height":
		return &s.Height
	case "minHeight":
		return &s.MinHeight
	case "minWidth":
		return &s.MinWidth
	case "color":
		return &s.Color
	case "fontSize":
		return &s.FontSize
	case "fontWeight":
		return &s.FontWeight
	}
	return nil
}

const styleOpen = "style={{"

// ExtractStyles parses the first inline style object in source.
func ExtractStyles(source string) Styles {
	start := strings.Index(source, styleOpen)
	if start < 0 {
		return Styles{}
	}
	body := source[start+len(styleOpen):]
	end := matchingBrace(body)
	if end < 0 {
		return Styles{}
	}
	return ParseStyleObject(body[:end])
}

// matchingBrace returns the index of the '}' closing an already opened
// brace, or -1.
func matchingBrace(s string) int {
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseStyleObject reads a flat comma separated list of key: value pairs.
// Unknown keys are ignored. Values are trimmed and unquoted but otherwise
// kept verbatim.
func ParseStyleObject(body string) Styles {
	var s Styles
	for _, pair := range strings.Split(body, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			continue
		}
		if dst := s.field(unquote(key)); dst != nil {
			*dst = unquote(value)
		}
	}
	return s
}

func unquote(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "'")
	return strings.Trim(s, `"`)
}
