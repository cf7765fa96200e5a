package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/marks/internal/config"
	"github.com/gorewood/marks/internal/marker"
	"github.com/gorewood/marks/internal/output"
	"github.com/gorewood/marks/internal/vault"
)

// toggleOptions holds the flags shared by the toggle commands.
type toggleOptions struct {
	markerName string
	token      string
	line       int
	to         int
	selections []string
	dryRun     bool
}

// changedLine is a rewritten line in toggle output.
type changedLine struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// toggleResult is the JSON result of toggling a file.
type toggleResult struct {
	Path      string        `json:"path"`
	Token     string        `json:"token"`
	LineCount int           `json:"line_count"`
	Changed   int           `json:"changed"`
	Saved     bool          `json:"saved"`
	Lines     []changedLine `json:"lines"`
}

var markerShort = map[string]string{
	config.MarkerStar:     "Toggle the star marker (default #key)",
	config.MarkerAction:   "Toggle the action marker (default #action)",
	config.MarkerQuestion: "Toggle the question marker (default #question)",
}

// newMarkerCmd creates one of the named toggle commands: star, action or question.
func newMarkerCmd(name string) *cobra.Command {
	opts := &toggleOptions{markerName: name}

	cmd := &cobra.Command{
		Use:   name + " [FILE]",
		Short: markerShort[name],
		Long: fmt.Sprintf(`Toggle the configured %s marker on lines of a note.

The marker is removed when present anywhere on the line. Otherwise it is
inserted after any bullet, checkbox or numbered-list prefix. Lines are
1-based. With no FILE (or "-") lines are read from stdin and written to stdout.

Examples:
  marks %[1]s Daily/12-03-2024.md --line 4          # Toggle line 4
  marks %[1]s notes.md --line 2 --to 6              # Toggle lines 2-6
  marks %[1]s notes.md -s 2:3 -s 8                  # Toggle several ranges
  printf -- '- buy milk\n' | marks %[1]s            # Filter stdin`, name),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, opts, args)
		},
	}

	addToggleFlags(cmd, opts)
	return cmd
}

// newToggleCmd creates the generic toggle command.
func newToggleCmd() *cobra.Command {
	opts := &toggleOptions{}

	cmd := &cobra.Command{
		Use:   "toggle [FILE]",
		Short: "Toggle a marker or any token on lines of a note",
		Long: `Toggle a configured marker (--marker) or an arbitrary token (--token).

With no FILE (or "-") every line from stdin is toggled and written to stdout,
which makes marks usable as an editor filter.

Examples:
  marks toggle --marker action notes.md --line 3
  marks toggle --token @today notes.md -s 1:4
  :'<,'>!marks toggle --marker question        # from vim`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.markerName, "marker", "m", "", "Marker name: star, action or question")
	cmd.Flags().StringVarP(&opts.token, "token", "t", "", "Explicit token to toggle (overrides --marker)")
	addToggleFlags(cmd, opts)
	return cmd
}

func addToggleFlags(cmd *cobra.Command, opts *toggleOptions) {
	cmd.Flags().IntVarP(&opts.line, "line", "l", 1, "Line to toggle (1-based)")
	cmd.Flags().IntVar(&opts.to, "to", 0, "Last line of the range (default --line)")
	cmd.Flags().StringArrayVarP(&opts.selections, "selection", "s", nil,
		"Line range ANCHOR:HEAD or single LINE (repeatable)")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "Show the result without writing the file")
}

// runToggle executes the toggle commands.
func runToggle(cmd *cobra.Command, opts *toggleOptions, args []string) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	token, err := resolveToken(settings, opts.markerName, opts.token)
	if err != nil {
		printer.Error(err)
		return err
	}

	if len(args) == 0 || args[0] == "-" {
		return runToggleFilter(cmd, printer, opts, token)
	}

	sels, err := selectionsFromFlags(cmd, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := toggleFile(args[0], token, sels, opts.dryRun)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	for _, sel := range sels {
		if start, _ := sel.Bounds(); start >= result.LineCount {
			printer.Warn("line %d is past the end of %s (%d lines)", start+1, result.Path, result.LineCount)
		}
	}
	printToggleResult(printer, result, opts.dryRun)
	return nil
}

// toggleFile toggles token on sels in the file at path and saves it unless
// dryRun is set.
func toggleFile(path, token string, sels []marker.Selection, dryRun bool) (toggleResult, error) {
	file, err := vault.Open(path)
	if err != nil {
		return toggleResult{}, err
	}
	before := snapshot(file)

	result := toggleResult{Path: path, Token: token, LineCount: file.LineCount(), Lines: []changedLine{}}
	result.Changed = marker.ToggleSelections(file, sels, token)
	for i, old := range before {
		if now := file.Line(i); now != old {
			result.Lines = append(result.Lines, changedLine{Number: i + 1, Text: now})
		}
	}

	if !dryRun {
		saved, err := file.Save()
		if err != nil {
			return toggleResult{}, err
		}
		result.Saved = saved
	}
	return result, nil
}

// runToggleFilter toggles lines read from stdin. Without line flags every
// line is toggled. The text always goes to stdout, even with --json.
func runToggleFilter(cmd *cobra.Command, printer *output.Printer, opts *toggleOptions, token string) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		err = output.NewSystemErrorWithCause("failed to read stdin", err)
		printer.Error(err)
		return err
	}
	buf := vault.Parse(string(data))

	sels := []marker.Selection{{Anchor: 0, Head: buf.LineCount() - 1}}
	if lineFlagsSet(cmd) {
		if sels, err = selectionsFromFlags(cmd, opts); err != nil {
			printer.Error(err)
			return err
		}
	}
	marker.ToggleSelections(buf, sels, token)

	printer.Print("%s", buf.String())
	return nil
}

func printToggleResult(printer *output.Printer, result toggleResult, dryRun bool) {
	styles := printer.Styles()
	token := styles.Marker.Render(result.Token)
	verb := "Toggled"
	if dryRun {
		verb = "Would toggle"
	}

	switch result.Changed {
	case 0:
		printer.Println(styles.Dim.Render("No lines changed in " + result.Path))
		return
	case 1:
		printer.Println(fmt.Sprintf("%s %s %s", styles.Success.Render(verb), token,
			styles.Success.Render("on 1 line in "+result.Path)))
	default:
		printer.Println(fmt.Sprintf("%s %s %s", styles.Success.Render(verb), token,
			styles.Success.Render(fmt.Sprintf("on %d lines in %s", result.Changed, result.Path))))
	}

	for _, line := range result.Lines {
		printer.Print("%s  %s\n", styles.Dim.Render(fmt.Sprintf("%4d", line.Number)), line.Text)
	}
}

// resolveToken picks the token to toggle: an explicit token wins over a
// marker name.
func resolveToken(settings config.Settings, markerName, token string) (string, error) {
	if token != "" {
		if strings.TrimSpace(token) != token {
			return "", output.NewUserErrorf("token %q has surrounding whitespace", token)
		}
		return token, nil
	}
	if markerName == "" {
		return "", output.NewUserError("specify --marker (star, action, question) or --token")
	}
	return settings.Marker(markerName)
}

func lineFlagsSet(cmd *cobra.Command) bool {
	flags := cmd.Flags()
	return flags.Changed("line") || flags.Changed("to") || flags.Changed("selection")
}

// selectionsFromFlags converts the 1-based line flags to zero-based
// selections. --selection cannot be combined with --line or --to.
func selectionsFromFlags(cmd *cobra.Command, opts *toggleOptions) ([]marker.Selection, error) {
	flags := cmd.Flags()
	if len(opts.selections) > 0 {
		if flags.Changed("line") || flags.Changed("to") {
			return nil, output.NewUserError("cannot use --selection with --line or --to")
		}
		sels := make([]marker.Selection, 0, len(opts.selections))
		for _, raw := range opts.selections {
			sel, err := parseSelection(raw)
			if err != nil {
				return nil, err
			}
			sels = append(sels, sel)
		}
		return sels, nil
	}

	if opts.line < 1 {
		return nil, output.NewUserErrorf("--line must be 1 or more, got %d", opts.line)
	}
	to := opts.line
	if flags.Changed("to") {
		if opts.to < 1 {
			return nil, output.NewUserErrorf("--to must be 1 or more, got %d", opts.to)
		}
		to = opts.to
	}
	return []marker.Selection{{Anchor: opts.line - 1, Head: to - 1}}, nil
}

// parseSelection parses "ANCHOR:HEAD" or "LINE", both 1-based.
func parseSelection(raw string) (marker.Selection, error) {
	anchorText, headText, isRange := strings.Cut(raw, ":")
	anchor, err := parseLineNumber(anchorText)
	if err != nil {
		return marker.Selection{}, output.NewUserErrorf("invalid selection %q: %w", raw, err)
	}
	if !isRange {
		return marker.Cursor(anchor - 1), nil
	}
	head, err := parseLineNumber(headText)
	if err != nil {
		return marker.Selection{}, output.NewUserErrorf("invalid selection %q: %w", raw, err)
	}
	return marker.Selection{Anchor: anchor - 1, Head: head - 1}, nil
}

func parseLineNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("line %q is not a number", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("line %d is before line 1", n)
	}
	return n, nil
}

func snapshot(buf marker.Buffer) []string {
	lines := make([]string, buf.LineCount())
	for i := range lines {
		lines[i] = buf.Line(i)
	}
	return lines
}
