package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"aiupstart.com/snapcode"
	"aiupstart.com/snapcode/internal/export"
	"aiupstart.com/snapcode/internal/render"
)

// outputFlags are shared by every command that produces a bundle.
type outputFlags struct {
	outDir string
	copy   string
	raw    bool
	style  string
	width  int
}

// clipboardFor is swapped in tests.
var clipboardFor = func() export.Clipboard { return export.SystemClipboard{} }

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outDir, "out", "o", "", "Save index.html, styles.css and script.js into this directory")
	cmd.Flags().StringVarP(&f.copy, "copy", "c", "", "Copy one part to the clipboard: markup, styling or script")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "Print the parts verbatim instead of rendering them")
	cmd.Flags().StringVar(&f.style, "style", "auto", "Render style: auto, dark, light or notty")
	cmd.Flags().IntVar(&f.width, "width", 100, "Word wrap width for rendered output")
}

// validate checks flag values before any work is done.
func (f *outputFlags) validate() (snapcode.Part, error) {
	if f.copy == "" {
		return "", nil
	}
	part, ok := snapcode.ParsePart(f.copy)
	if !ok {
		return "", newCLIError(ExitGeneralError, fmt.Sprintf("invalid --copy value %q: valid values are markup, styling, script", f.copy))
	}
	return part, nil
}

// emit displays b, then saves and copies it as requested.
func (f *outputFlags) emit(cmd *cobra.Command, b snapcode.CodeBundle, copyPart snapcode.Part) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if f.raw {
		if err := render.Raw(out, b); err != nil {
			return err
		}
	} else if err := render.Bundle(out, b, f.style, f.width); err != nil {
		return err
	}

	if f.outDir != "" {
		paths, err := export.Save(f.outDir, b)
		if err != nil {
			return wrapCLIError(ExitGeneralError, "saving bundle", err)
		}
		for _, p := range paths {
			fmt.Fprintf(errOut, "%s %s\n", color.GreenString("saved"), p)
		}
	}

	if copyPart != "" {
		if err := export.Copy(clipboardFor(), b, copyPart); err != nil {
			return wrapCLIError(ExitGeneralError, "copying to clipboard", err)
		}
		fmt.Fprintf(errOut, "%s %s to clipboard\n", color.GreenString("copied"), copyPart.Filename())
	}
	return nil
}
