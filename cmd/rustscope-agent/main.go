// rustscope-agent serves rustscope reports over HTTP as tool calls for
// LLM integrations.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustscope/rustscope/internal/agent"
	"github.com/rustscope/rustscope/internal/report"
	"github.com/rustscope/rustscope/internal/workspace"
)

var version = "dev"

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		configPath string
		listen     string
		gitignore  bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:     "rustscope-agent",
		Short:   "HTTP tool-call server for rustscope reports",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, listen, gitignore, verbose)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&configPath, "config", "", "workspace config file (default: ./rustscope.yaml if present)")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides the configured one")
	cmd.Flags().BoolVar(&gitignore, "gitignore", false, "honor .gitignore files in each root")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func run(configPath, listen string, gitignore, verbose bool) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := workspace.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}

	gen := report.New(log)
	gen.UseGitignore = gitignore

	handlers := agent.NewHandlers(cfg, gen, log)

	log.WithFields(logrus.Fields{
		"listen":  cfg.Listen,
		"primary": cfg.Primary.Name,
		"roots":   cfg.Primary.Paths,
	}).Info("rustscope-agent listening")
	log.Info("  POST /tool/list_all            - list types and functions")
	log.Info("  POST /tool/generate_call_graph - call graph from a root function")
	log.Info("  POST /tool/get_source          - source of a function")
	log.Info("  GET  /projects                 - configured projects")

	return handlers.Router().Run(cfg.Listen)
}
