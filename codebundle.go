package snapcode

// CodeBundle holds the three artifacts split out of a generated code blob.
// Every field is always set; a missing block yields "" rather than being omitted.
type CodeBundle struct {
	Markup  string `json:"markup"`  // full document span, style and script blocks included
	Styling string `json:"styling"` // inner text of every <style> block, newline joined
	Script  string `json:"script"`  // inner text of every <script> block, newline joined
}

// Part names one field of a CodeBundle.
type Part string

const (
	PartMarkup  Part = "markup"
	PartStyling Part = "styling"
	PartScript  Part = "script"
)

// Parts lists the bundle parts in display order.
var Parts = []Part{PartMarkup, PartStyling, PartScript}

// Get returns the field named by p, or "" for an unknown part.
func (b CodeBundle) Get(p Part) string {
	switch p {
	case PartMarkup:
		return b.Markup
	case PartStyling:
		return b.Styling
	case PartScript:
		return b.Script
	default:
		return ""
	}
}

// Filename is the name a part is saved under when downloaded.
func (p Part) Filename() string {
	switch p {
	case PartMarkup:
		return "index.html"
	case PartStyling:
		return "styles.css"
	case PartScript:
		return "script.js"
	default:
		return ""
	}
}

// Language is the fence tag used when the part is rendered as code.
func (p Part) Language() string {
	switch p {
	case PartMarkup:
		return "html"
	case PartStyling:
		return "css"
	case PartScript:
		return "javascript"
	default:
		return "text"
	}
}

// ParsePart resolves a user supplied part name. Common aliases are accepted.
func ParsePart(s string) (Part, bool) {
	switch s {
	case "markup", "html":
		return PartMarkup, true
	case "styling", "style", "css":
		return PartStyling, true
	case "script", "js", "javascript":
		return PartScript, true
	default:
		return "", false
	}
}
