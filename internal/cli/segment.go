package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"aiupstart.com/snapcode"
)

// NewSegmentCommand creates the "segment" command, which splits a locally
// stored blob without contacting the service.
func NewSegmentCommand() *cobra.Command {
	flags := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "segment [FILE|-]",
		Short: "Split a saved code blob into markup, styling and script",
		Long: `Split a code blob read from FILE (or stdin when FILE is "-" or omitted)
into its markup, styling and script parts.

Examples:
  snapcode segment response.txt --raw
  cat response.txt | snapcode segment --out ./site`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			copyPart, err := flags.validate()
			if err != nil {
				return err
			}

			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return flags.emit(cmd, snapcode.Segment(raw), copyPart)
		},
	}
	flags.register(cmd)
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", wrapCLIError(ExitGeneralError, "reading stdin", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", wrapCLIError(ExitGeneralError, fmt.Sprintf("reading %s", args[0]), err)
	}
	return string(data), nil
}
