// rustscope prints declaration listings, call graphs, and function source
// for a Rust project.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustscope/rustscope/internal/model"
	"github.com/rustscope/rustscope/internal/report"
	"github.com/rustscope/rustscope/internal/workspace"
)

var version = "dev"

func main() {
	if err := newCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	var (
		source     bool
		publicOnly bool
		blacklist  string
		gitignore  bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:     "rustscope <directory> [function]",
		Short:   "static analysis reports for Rust source trees",
		Long:    "rustscope walks a Rust source tree and prints a declaration listing,\na call graph rooted at a function, or a single function's source.",
		Version: version,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(stdout, stderr, args, source, publicOnly, blacklist, gitignore, verbose)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&source, "source", false, "show the function's source instead of its call graph")
	cmd.Flags().BoolVar(&publicOnly, "public-only", false, "show only public items")
	cmd.Flags().StringVar(&blacklist, "blacklist", "", "comma-separated path substrings to exclude")
	cmd.Flags().BoolVar(&gitignore, "gitignore", false, "honor .gitignore files in each root")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log skipped paths and index statistics")
	return cmd
}

func run(stdout, stderr io.Writer, args []string, source, publicOnly bool, blacklist string, gitignore, verbose bool) error {
	roots := workspace.SplitList(args[0])
	if len(roots) == 0 {
		return errors.New("no directory given")
	}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("root path: %w", err)
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			return fmt.Errorf("root path %s: not a directory or file", root)
		}
	}

	visibility := model.AllItems
	if publicOnly {
		visibility = model.PublicOnly
	}

	var mode model.Mode
	switch {
	case len(args) == 1 && source:
		return errors.New("--source requires a function name")
	case len(args) == 1:
		mode = model.ListAll{Visibility: visibility}
	case source:
		mode = model.SourceOf{Function: args[1]}
	default:
		mode = model.CallGraph{Root: args[1], Visibility: visibility}
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	gen := report.New(log)
	gen.UseGitignore = gitignore

	out, err := gen.Generate(roots, mode, workspace.SplitList(blacklist))
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, out)
	return nil
}
