package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/marks/internal/config"
	"github.com/gorewood/marks/internal/export"
	"github.com/gorewood/marks/internal/output"
	"github.com/gorewood/marks/internal/vault"
	"github.com/gorewood/marks/internal/watch"
	"github.com/gorewood/marks/internal/week"
)

const dividerWidth = 40

// clearScreen moves the cursor home and clears the terminal between redraws.
const clearScreen = "\x1b[H\x1b[2J"

// weeksResult is the JSON result of the weeks command.
type weeksResult struct {
	Root    string        `json:"root"`
	Format  string        `json:"format"`
	Folders []week.Folder `json:"folders"`
}

// weeksOptions holds the weeks command flags.
type weeksOptions struct {
	prefixes []string
	watch    bool
	markdown bool
	out      string
}

// newWeeksCmd creates the weeks command.
func newWeeksCmd() *cobra.Command {
	opts := &weeksOptions{}

	cmd := &cobra.Command{
		Use:   "weeks [ROOT]",
		Short: "List daily notes with a divider at every week boundary",
		Long: `List the dated notes under each configured folder prefix (delim_paths),
oldest first, with a divider wherever a note starts a new ISO week.

Filenames must start with a date in delim_format (default DD-MM-YYYY).
Notes whose names do not parse are listed as undated.

--markdown prints a markdown index with wikilinks instead, and --out writes
that index to a file (only when its content changes). Combined with --watch
this keeps an index note in the vault up to date.

Examples:
  marks weeks ~/vault                     # Use configured prefixes
  marks weeks ~/vault --prefix Journal/   # Override the prefixes
  marks weeks ~/vault --watch             # Redraw when notes change
  marks weeks ~/vault -w --out ~/vault/Weeks.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runWeeks(cmd, root, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.prefixes, "prefix", "p", nil, "Folder prefix to group (repeatable, overrides delim_paths)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Keep running and redraw when notes are added, removed or renamed")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Print a markdown index instead of the listing")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the markdown index to this file")

	return cmd
}

// runWeeks executes the weeks command.
func runWeeks(cmd *cobra.Command, root string, opts *weeksOptions) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	prefixes := opts.prefixes
	if len(prefixes) == 0 {
		prefixes = settings.DelimPaths
	}
	render, err := weeksRenderer(printer, settings, root, prefixes, opts)
	if err != nil {
		printer.Error(err)
		return err
	}

	if !opts.watch {
		if err := render(); err != nil {
			printer.Error(err)
			return err
		}
		return nil
	}

	log := newLogger(cmd)
	defer func() { _ = log.Sync() }()

	watcher, err := watch.New(root, log)
	if err != nil {
		err = output.AsUserError(err)
		printer.Error(err)
		return err
	}
	defer func() { _ = watcher.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Debug("watching vault", zap.String("root", root), zap.Strings("prefixes", prefixes))
	printer.Stderr("Watching %s for new, moved and deleted notes (Ctrl-C to stop)\n", root)
	return watcher.Run(ctx, render)
}

// weeksRenderer returns a function that lists the vault and prints the
// grouped notes. It is called once, or on every change with --watch.
func weeksRenderer(
	printer *output.Printer, settings config.Settings, root string, prefixes []string, opts *weeksOptions,
) (func() error, error) {
	parser, err := settings.Parser()
	if err != nil {
		return nil, err
	}

	return func() error {
		paths, err := vault.List(root)
		if err != nil {
			return err
		}
		folders := week.Group(paths, prefixes, parser)

		if opts.out != "" {
			return writeIndex(printer, opts.out, export.FormatMarkdown(folders, parser.Format()))
		}
		if opts.markdown {
			printer.Print("%s", export.FormatMarkdown(folders, parser.Format()))
			return nil
		}
		if printer.IsJSON() {
			return printer.WriteJSON(weeksResult{Root: root, Format: parser.Format(), Folders: folders})
		}
		if opts.watch && printer.IsTTY() {
			printer.Print("%s", clearScreen)
		}
		printFolders(printer, folders)
		return nil
	}, nil
}

// writeIndex saves the markdown index and reports the outcome.
func writeIndex(printer *output.Printer, path, content string) error {
	wrote, err := export.WriteMarkdownFile(path, content)
	if err != nil {
		return err
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"path": path, "written": wrote})
	}
	if wrote {
		printer.Println(printer.Styles().Success.Render("Wrote " + path))
	} else {
		printer.Println(printer.Styles().Dim.Render("Unchanged " + path))
	}
	return nil
}

func printFolders(printer *output.Printer, folders []week.Folder) {
	styles := printer.Styles()
	if len(folders) == 0 {
		printer.Println(styles.Dim.Render("No folder prefixes configured (see 'marks config set delim_paths')"))
		return
	}

	for _, folder := range folders {
		printer.Section(folder.Prefix)
		if len(folder.Entries) == 0 && len(folder.Undated) == 0 {
			printer.Println(styles.Dim.Render("  no notes"))
			continue
		}

		for _, entry := range folder.Entries {
			if entry.Divider {
				printer.Divider(fmt.Sprintf("week %d, %d", entry.Week, entry.Year), dividerWidth)
			}
			printer.Print("  %s  %s\n", styles.Dim.Render(entry.Date.Format("Mon 2006-01-02")), entry.Path)
		}

		if len(folder.Undated) > 0 {
			printer.Println()
			printer.Println(styles.Warning.Render("  Undated:"))
			for _, path := range folder.Undated {
				printer.Print("    %s\n", styles.Dim.Render(path))
			}
		}
	}
}
