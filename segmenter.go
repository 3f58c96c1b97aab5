package snapcode

import (
	"regexp"
	"strings"
)

// Segmenter splits a raw generated blob into a CodeBundle.
type Segmenter interface {
	Segment(raw string) CodeBundle
}

// RegexSegmenter implements Segmenter with independent bounded-span scans over
// the raw text. It keeps no state and is safe for concurrent use.
type RegexSegmenter struct{}

// Regular expressions for the document wrapper and the style/script blocks.
// Tag names are matched case-insensitively over ASCII letters only; (?i)
// would also fold non-ASCII letters such as U+017F into "s". All spans are
// non-greedy so the first closing tag wins.
var (
	htmlTag    = asciiFold("html")
	documentRe = regexp.MustCompile(`(?s)(<!` + asciiFold("doctype") + ` ` + htmlTag + `>.*?</` + htmlTag + `>|<` + htmlTag + `.*?</` + htmlTag + `>)`)
	styleRe    = blockRe("style")
	scriptRe   = blockRe("script")
)

func blockRe(tag string) *regexp.Regexp {
	t := asciiFold(tag)
	return regexp.MustCompile(`(?s)<` + t + `[^>]*>(.*?)</` + t + `>`)
}

// asciiFold turns "html" into "[hH][tT][mM][lL]".
func asciiFold(word string) string {
	var sb strings.Builder
	for _, r := range word {
		sb.WriteString("[" + strings.ToLower(string(r)) + strings.ToUpper(string(r)) + "]")
	}
	return sb.String()
}

// Segment never fails. Without a document wrapper the whole input is the markup.
// Style and script contents are extracted from raw, not from the markup span,
// and remain embedded in the markup.
func (RegexSegmenter) Segment(raw string) CodeBundle {
	return CodeBundle{
		Markup:  extractMarkup(raw),
		Styling: extractBlocks(styleRe, raw),
		Script:  extractBlocks(scriptRe, raw),
	}
}

// Segment runs the default RegexSegmenter.
func Segment(raw string) CodeBundle {
	return RegexSegmenter{}.Segment(raw)
}

func extractMarkup(raw string) string {
	if m := documentRe.FindString(raw); m != "" {
		return m
	}
	return raw
}

// extractBlocks joins the inner text of every non-overlapping match of re,
// in order of appearance. No match yields "".
func extractBlocks(re *regexp.Regexp, raw string) string {
	matches := re.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return ""
	}
	contents := make([]string, 0, len(matches))
	for _, match := range matches {
		contents = append(contents, match[1])
	}
	return strings.Join(contents, "\n")
}
