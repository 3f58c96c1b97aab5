package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"aiupstart.com/snapcode/internal/client"
	"aiupstart.com/snapcode/internal/progress"
	"aiupstart.com/snapcode/internal/utils"
)

// Replaced in tests.
var (
	progressSchedule = progress.DefaultSchedule
	isTerminal       = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
)

type generateFlags struct {
	outputFlags
	apiURL     string
	noProgress bool
}

// NewGenerateCommand creates the "generate" command.
func NewGenerateCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate <description...>",
		Short: "Generate code for a UI description",
		Long: `Send a UI description to the generation service and show the result
split into markup, styling and script.

Examples:
  snapcode generate "a pricing table with three tiers"
  snapcode generate --out ./site --copy markup "dark login form"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags, args)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.apiURL, "api-url", "", "Base URL of the generation service (overrides config)")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false, "Do not show the progress line")
	return cmd
}

func runGenerate(cmd *cobra.Command, flags *generateFlags, args []string) error {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return newCLIError(ExitGeneralError, "description must not be empty")
	}
	copyPart, err := flags.validate()
	if err != nil {
		return err
	}

	baseURL := cfg.Client.BaseURL
	if flags.apiURL != "" {
		baseURL = flags.apiURL
	}
	c := client.New(baseURL, cfg.Client.Timeout)
	utils.Logger.Debug().Str("module", "cli").Str("endpoint", c.Endpoint()).Msg("sending generation request")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var task *progress.Task
	var line *progressLine
	// The progress line is drawn on stderr, so stdout may still be piped.
	if errOut := cmd.ErrOrStderr(); !flags.noProgress && isTerminal(errOut) {
		line = &progressLine{w: errOut}
		task = progress.Start(progressSchedule(), line.update)
	}

	bundle, err := c.Generate(ctx, description)
	if err != nil {
		if task != nil {
			task.Stop()
			line.clear()
		}
		return err
	}
	if task != nil {
		task.Complete()
		line.finish()
	}

	return flags.emit(cmd, bundle, copyPart)
}

// progressLine redraws a single terminal line for each progress update.
type progressLine struct {
	mu    sync.Mutex
	w     io.Writer
	width int
}

const barWidth = 20

func (p *progressLine) update(u progress.Update) {
	p.mu.Lock()
	defer p.mu.Unlock()
	filled := u.Percent * barWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	text := fmt.Sprintf("%s %3d%% %s", color.CyanString(bar), u.Percent, u.Stage)
	pad := ""
	if n := len(text); n < p.width {
		pad = strings.Repeat(" ", p.width-n)
	}
	if len(text) > p.width {
		p.width = len(text)
	}
	fmt.Fprintf(p.w, "\r%s%s", text, pad)
}

func (p *progressLine) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
}

func (p *progressLine) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w)
}
