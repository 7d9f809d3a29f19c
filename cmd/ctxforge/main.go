// ctxforge assembles a size-bounded, prioritized textual context from a
// project's source files and user-supplied reference files, producing a
// single prompt for a downstream text-generation model.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ctxforge/internal/config"
	ctxengine "ctxforge/internal/context"
	"ctxforge/internal/logging"
	"ctxforge/internal/world"
)

var (
	// Global flags
	verbose   bool
	workspace string

	// Prompt flags
	refFiles    []string
	watchConfig bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ctxforge",
	Short: "ctxforge - project context assembly for LLM prompts",
	Long: `ctxforge collects project source files, summarizes their structure,
ranks them by importance, and packs them into a single prompt bounded by a
hard character budget.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if workspace == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}
			workspace = cwd
		}
		if err := logging.Initialize(workspace); err != nil {
			logger.Warn("file logging unavailable", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var promptCmd = &cobra.Command{
	Use:   "prompt [question]",
	Short: "Assemble the full context prompt for a question",
	Long: `Collects and summarizes workspace files, merges in any reference
files, and prints the assembled prompt to stdout.

Example:
  ctxforge prompt "How does the session store handle expiry?" --ref docs/sessions.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPrompt,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Enumerate workspace files and report per-language counts",
	RunE:  runScan,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report context sizes after a collection pass",
	RunE:  runStats,
}

func newEngine() (*ctxengine.Engine, error) {
	cfg, err := config.Load(workspace)
	if err != nil {
		logger.Warn("config invalid, using defaults", zap.Error(err))
	}
	ws := world.NewFSWorkspace(workspace)
	return ctxengine.NewEngine(ws, cfg), nil
}

func runPrompt(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	if watchConfig {
		stop, err := engine.WatchConfig(workspace)
		if err != nil {
			logger.Warn("config watch unavailable", zap.Error(err))
		} else {
			defer stop()
		}
	}

	logger.Info("collecting project context", zap.String("workspace", workspace))
	engine.InitProjectContext()

	for _, ref := range refFiles {
		if !engine.AddReferenceFile(ref) {
			logger.Warn("reference file skipped", zap.String("path", ref))
		}
	}

	question := strings.Join(args, " ")
	out := engine.GenerateFullPrompt(question)
	logger.Debug("prompt assembled", zap.Int("chars", len(out)))
	fmt.Println(out)
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(workspace)
	if err != nil {
		logger.Warn("config invalid, using defaults", zap.Error(err))
	}

	collector := world.NewCollector(world.NewFSWorkspace(workspace))
	stats, err := collector.Scan(cfg.Context.IncludeExtensions, cfg.Context.ExcludeDirs, cfg.Context.MaxContextFiles)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	fmt.Printf("Files: %d\n", stats.FileCount)
	langs := make([]string, 0, len(stats.Languages))
	for lang := range stats.Languages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		fmt.Printf("  %-12s %d\n", lang, stats.Languages[lang])
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	engine.InitProjectContext()

	for _, ref := range refFiles {
		if !engine.AddReferenceFile(ref) {
			logger.Warn("reference file skipped", zap.String("path", ref))
		}
	}

	stats := engine.GetContextStats()
	fmt.Printf("Source files:     %d\n", stats.SourceFiles)
	fmt.Printf("Reference files:  %d\n", stats.ReferenceFiles)
	fmt.Printf("Total size:       %d chars\n", stats.TotalSize)
	fmt.Printf("Estimated tokens: %d\n", stats.EstimatedTokens)
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (default: current directory)")

	promptCmd.Flags().StringArrayVar(&refFiles, "ref", nil, "Reference file to include verbatim (repeatable)")
	promptCmd.Flags().BoolVar(&watchConfig, "watch-config", false, "Reload budgets when the config file changes")
	statsCmd.Flags().StringArrayVar(&refFiles, "ref", nil, "Reference file to include (repeatable)")

	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
