// Package cmd wires the cobra CLI: input selection (file, stdin, share
// token), record limiting, expression evaluation, and the choice between
// the interactive explorer and one-shot output.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/DevooKim/jason/internal/limiter"
	"github.com/DevooKim/jason/internal/ui"
	"github.com/DevooKim/jason/pkg/core"
	"github.com/DevooKim/jason/pkg/logger"
	"github.com/DevooKim/jason/pkg/settings"
)

var (
	shareToken  string
	exprFlag    string
	noColor     bool
	debugFlag   bool
	snapshot    bool
	widthFlag   int
	heightFlag  int
	limitFlag   int
	offsetFlag  int
	tailFlag    int
	encodeShare bool
)

// errNoInput signals that neither a file, stdin, nor a share token was
// provided.
var errNoInput = errors.New("no input provided (pass a file, pipe stdin, or use --share)")

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Explore JSON (and YAML/TOML/NDJSON/JWT) documents in the terminal",
	Long: settings.CliBinaryName + ` loads a document and opens an interactive tree explorer:
expand and collapse subtrees, search across keys, paths, and values, and
copy paths, values, or whole subtrees. Non-terminal output and --snapshot
render a single frame instead.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       settings.VersionInformation.BuildVersion,
	RunE:          run,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&shareToken, "share", "", "load the document from a share token")
	flags.StringVarP(&exprFlag, "expr", "e", "", "evaluate a CEL expression against the document first ('_' is the root)")
	flags.BoolVar(&noColor, "no-color", false, "disable color output")
	flags.BoolVar(&debugFlag, "debug", false, "enable debug logging to stderr")
	flags.BoolVar(&snapshot, "snapshot", false, "render one frame to stdout instead of running interactively")
	flags.IntVar(&widthFlag, "width", 0, "frame width for --snapshot (0 = detect)")
	flags.IntVar(&heightFlag, "height", 0, "frame height for --snapshot (0 = detect)")
	flags.IntVar(&limitFlag, "limit", 0, "keep only this many top-level records")
	flags.IntVar(&offsetFlag, "offset", 0, "skip the first N top-level records")
	flags.IntVar(&tailFlag, "tail", 0, "keep only the last N top-level records")
	flags.BoolVar(&encodeShare, "encode-share", false, "print a share token for the document and exit")
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := int8(0)
	if debugFlag {
		logLevel = -1
	}
	lgr := logger.Get(logLevel)

	limits := limiter.Config{Limit: limitFlag, Offset: offsetFlag, Tail: tailFlag}
	if err := limits.Validate(); err != nil {
		return err
	}

	root, err := loadInput(args, *lgr)
	if err != nil {
		if errors.Is(err, errNoInput) {
			_ = cmd.Help()
		}
		return err
	}
	root = limits.Apply(root)

	engine, err := core.New()
	if err != nil {
		return err
	}

	if exprFlag != "" {
		result, err := engine.Evaluate(exprFlag, root)
		if err != nil {
			return fmt.Errorf("expression failed: %w", err)
		}
		root = result
	}

	if encodeShare {
		token, err := core.EncodeShare(root)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd())) && !snapshot
	if !interactive {
		if snapshot {
			fmt.Fprint(cmd.OutOrStdout(), ui.Snapshot(root, engine, *lgr, widthFlag, heightFlag, noColor))
			return nil
		}
		// Piped output gets plain pretty JSON.
		out, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	return ui.Run(root, engine, *lgr, 0, 0, noColor)
}

// loadInput resolves the document from, in priority order: --share, the
// file argument, then piped stdin.
func loadInput(args []string, lgr logr.Logger) (any, error) {
	if shareToken != "" {
		root, err := core.DecodeShare(shareToken)
		if err != nil {
			return nil, err
		}
		lgr.V(1).Info("loaded document", "source", "share-token")
		return root, nil
	}

	if len(args) == 1 {
		return core.LoadFileWithLogger(args[0], lgr)
	}

	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return nil, errNoInput
		}
		lgr.V(1).Info("loaded document", "source", "stdin", "bytes", len(data))
		return core.LoadRoot(string(data))
	}

	return nil, errNoInput
}
