// Package render prints a CodeBundle to a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"aiupstart.com/snapcode"
)

// Markdown lays the bundle out as one fenced section per part.
func Markdown(b snapcode.CodeBundle) string {
	var sb strings.Builder
	for i, part := range snapcode.Parts {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n", part.Filename())
		content := b.Get(part)
		if strings.TrimSpace(content) == "" {
			sb.WriteString("_(empty)_\n")
			continue
		}
		fence := fenceFor(content)
		fmt.Fprintf(&sb, "%s%s\n%s\n%s\n", fence, part.Language(), strings.TrimRight(content, "\n"), fence)
	}
	return sb.String()
}

// fenceFor returns a backtick fence longer than any run inside content.
func fenceFor(content string) string {
	longest, run := 0, 0
	for _, r := range content {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// Bundle renders the bundle with glamour using style ("dark", "light",
// "notty", or "auto").
func Bundle(w io.Writer, b snapcode.CodeBundle, style string, width int) error {
	opts := []glamour.TermRendererOption{}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(Markdown(b))
	if err != nil {
		return fmt.Errorf("rendering bundle: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// Raw writes each part verbatim under a plain header line.
func Raw(w io.Writer, b snapcode.CodeBundle) error {
	for i, part := range snapcode.Parts {
		sep := "\n"
		if i == 0 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "%s==> %s <==\n%s\n", sep, part.Filename(), b.Get(part)); err != nil {
			return err
		}
	}
	return nil
}
