package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into extraction, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/backmassage/jpgfromraw/internal/rawscan"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, missing positional args).
func ParseFlags(cfg *Config, version string) error {
	n, err := parseArgs(cfg, version, os.Args[1:], os.Stderr)
	if err != nil {
		return err
	}
	if n.showHelp {
		os.Exit(0)
	}
	if n.showVersion {
		fmt.Fprintln(os.Stdout, "jpgfromraw v"+version)
		os.Exit(0)
	}
	return nil
}

// parseArgs does the work of ParseFlags without exiting, writing usage to out.
func parseArgs(cfg *Config, version string, args []string, out io.Writer) (negatedFlags, error) {
	fs := flag.NewFlagSet("jpgfromraw", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { printUsage(out, version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineExtractionFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(args); err != nil {
		return negated, err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(out, version)
		return negated, nil
	}
	if negated.showVersion {
		return negated, nil
	}
	return negated, parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either override a default (noColor -> ColorNever) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineExtractionFlags registers -t/--transfers, -e/--extension, -s/--select.
func defineExtractionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Transfers, "transfers", cfg.Transfers, "How many files to process at once")
	fs.IntVar(&cfg.Transfers, "t", cfg.Transfers, "Same as --transfers")
	fs.StringVar(&cfg.Extension, "extension", "", "Look for this extension in addition to the default list")
	fs.StringVar(&cfg.Extension, "e", "", "Same as --extension")
	fs.Var(&selectionValue{&cfg.Select}, "select", "Which preview to extract: largest | smallest")
	fs.Var(&selectionValue{&cfg.Select}, "s", "Same as --select")
}

// defineBehaviorFlags registers dry-run, skip-existing and list.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Locate previews but write nothing")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.SkipExisting, "skip-existing", false, "Do not overwrite existing output files")
	fs.BoolVar(&cfg.SkipExisting, "n", false, "Same as --skip-existing")
	fs.BoolVar(&cfg.ListOnly, "list", false, "List embedded previews per file and exit")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir and the optional OutputDir when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	switch len(args) {
	case 1:
		cfg.InputDir = NormalizeDirArg(args[0])
	case 2:
		cfg.InputDir = NormalizeDirArg(args[0])
		cfg.OutputDir = NormalizeDirArg(args[1])
	default:
		return fmt.Errorf("need input_dir and optional output_dir (got %d arguments)", len(args))
	}
	return nil
}

// printUsage writes the help text to out. Column-aligned for readability.
func printUsage(out io.Writer, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "jpgfromraw v" + version + " - extract embedded JPEG previews from RAW files"},
		{"", ""},
		{"  jpgfromraw [OPTIONS] <input_dir> [output_dir]", ""},
		{"", ""},
		{"Extraction", ""},
		{"  -t, --transfers <n>", "How many files to process at once (default: 8)"},
		{"  -e, --extension <ext>", "Look for this extension in addition to the default list"},
		{"  -s, --select <which>", "largest | smallest embedded preview (default: largest)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -n, --skip-existing", "Do not overwrite existing output files"},
		{"  -d, --dry-run", "Locate previews but write nothing"},
		{"  --list", "List embedded previews per file and exit"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (storage backend, paths)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"", "Default extensions: " + strings.Join(DefaultExtensions, ", ")},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(out)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(out, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(out, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(out, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so rawscan.Selection can be used with flag.Var.

type selectionValue struct{ p *rawscan.Selection }

func (s *selectionValue) String() string {
	if s.p == nil {
		return ""
	}
	return s.p.String()
}

func (s *selectionValue) Set(v string) error {
	sel, err := rawscan.ParseSelection(v)
	if err != nil {
		return err
	}
	*s.p = sel
	return nil
}
