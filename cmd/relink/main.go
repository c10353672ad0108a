package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fenilsonani/relink/internal/audit"
	"github.com/fenilsonani/relink/internal/config"
	"github.com/fenilsonani/relink/internal/linker"
	"github.com/fenilsonani/relink/internal/logging"
	"github.com/fenilsonani/relink/internal/reporter"
	"github.com/fenilsonani/relink/internal/scanner"
	"github.com/fenilsonani/relink/internal/ui"
	"github.com/fenilsonani/relink/pkg/utils"
)

var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath   string
	verbose      int
	dryRun       bool
	force        bool
	actionFlag   string
	fallbackFlag bool
	auditLogPath string
	outputFmt    string
	outputFile   string
)

// exitCode carries the apply command's resolved status out of cobra
var exitCode int

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

var rootCmd = &cobra.Command{
	Use:   "relink",
	Short: "Replace duplicate files with hard links, symlinks or deletions",
	Long: `Relink deduplicates files across two directory trees by replacing
confirmed duplicates with hard links, symbolic links, or deletions, keeping
a single master copy and writing a tamper-evident audit log of every
operation.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
}

var scanCmd = &cobra.Command{
	Use:   "scan <master-dir> <duplicate-dir>",
	Short: "Find duplicate files without making any changes",
	Long:  `Scans both trees and reports the duplicate groups found. Never mutates anything and never opens an audit log.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		result, err := runScan(cfg, log, args[0], args[1])
		if err != nil {
			return err
		}

		rptr := reporter.New(os.Stdout, reporter.ParseFormat(outputFmt))
		return rptr.ScanReport(result)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <master-dir> <duplicate-dir>",
	Short: "Replace duplicates with the chosen action",
	Long: `Scans both trees, then replaces every confirmed duplicate with a hard
link, symbolic link, or deletion. Prompts per group unless --force is given.
The audit log is opened before any file is touched; if it cannot be created
the run aborts with no changes made.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("dry-run") {
			cfg.DryRun = dryRun
		}
		if actionFlag != "" {
			cfg.Action = actionFlag
		}
		if cmd.Flags().Changed("fallback") {
			cfg.FallbackToSymlink = fallbackFlag
		}

		action, err := linker.ParseAction(cfg.Action)
		if err != nil {
			return err
		}

		masterDir, dupDir := args[0], args[1]
		for _, dir := range []string{masterDir, dupDir} {
			if cfg.IsProtected(dir) {
				return fmt.Errorf("refusing to operate on protected path: %s", dir)
			}
		}

		result, err := runScan(cfg, log, masterDir, dupDir)
		if err != nil {
			return err
		}

		if len(result.Groups) == 0 {
			fmt.Println("\n✨ No duplicates found. Nothing to do!")
			return nil
		}

		rptr := reporter.New(os.Stdout, reporter.FormatSummary)
		if err := rptr.ScanReport(result); err != nil {
			return err
		}

		opts := linker.Options{
			Action:   action,
			Fallback: cfg.FallbackToSymlink,
			DryRun:   cfg.DryRun,
			Log:      log,
			OnOutcome: func(dup, taken string, out linker.Outcome) {
				switch out.Status {
				case linker.StatusSucceeded:
					fmt.Printf("  ✅ %s %s (%s)\n", taken, dup, utils.FormatBytes(out.BytesFreed))
				case linker.StatusSkipped:
					fmt.Printf("  ↩️  %s (%s)\n", dup, out.Reason)
				case linker.StatusFailed:
					fmt.Printf("  ⚠️  %s: %s\n", dup, out.Message)
				}
			},
		}

		if cfg.DryRun {
			fmt.Println("\n[DRY RUN MODE] No files will be changed and no audit log will be written.")
			exec := linker.New(opts)
			execResult := exec.Run(result.Groups)
			exitCode = linker.ResolveExitCode(execResult)
			return reporter.New(os.Stdout, reporter.ParseFormat(outputFmt)).ExecutionReport(execResult)
		}

		// The audit log is a prerequisite for any destructive action
		logPath, err := resolveAuditLogPath(cfg)
		if err != nil {
			return err
		}
		auditLog, err := audit.Open(logPath)
		if err != nil {
			exitCode = linker.ExitPartialFailure
			return fmt.Errorf("aborting, no files were touched: %w", err)
		}
		defer auditLog.Close()

		header := audit.Header{
			Time:         time.Now(),
			RunID:        uuid.NewString(),
			MasterDir:    masterDir,
			DuplicateDir: dupDir,
			Action:       action.String(),
			Fallback:     cfg.FallbackToSymlink,
			Interactive:  !force,
		}
		if err := auditLog.WriteHeader(header); err != nil {
			exitCode = linker.ExitPartialFailure
			return fmt.Errorf("aborting, audit log not writable: %w", err)
		}

		fmt.Printf("\nAudit log: %s\n", auditLog.Path())

		opts.Recorder = auditLog
		exec := linker.New(opts)

		var execResult *linker.ExecutionResult
		if force {
			execResult = exec.Run(result.Groups)
		} else {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			execResult = exec.RunInteractive(ctx, result.Groups, os.Stdin, os.Stdout)
		}

		if err := auditLog.WriteFooter(audit.Summary{
			Succeeded:  execResult.Succeeded,
			Failed:     execResult.Failed,
			Skipped:    execResult.Skipped,
			BytesFreed: execResult.BytesFreed,
		}); err != nil {
			log.Warn().Err(err).Msg("audit footer not written")
		}

		if err := reporter.New(os.Stdout, reporter.ParseFormat(outputFmt)).ExecutionReport(execResult); err != nil {
			return err
		}
		if len(execResult.Failures) > 0 {
			fmt.Print(linker.FormatFailureSummary(execResult.Failures))
		}

		exitCode = linker.ResolveExitCode(execResult)
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse <master-dir> <duplicate-dir>",
	Short: "Interactively browse duplicate groups",
	Long:  `Scans both trees and opens a read-only browser over the duplicate groups found.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		result, err := runScan(cfg, log, args[0], args[1])
		if err != nil {
			return err
		}

		return ui.RunBrowse(result.Groups)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <master-dir> <duplicate-dir>",
	Short: "Generate a detailed duplicate report",
	Long:  `Scans both trees and writes a detailed report of the duplicates found.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		result, err := runScan(cfg, log, args[0], args[1])
		if err != nil {
			return err
		}

		format := reporter.ParseFormat(outputFmt)
		if outputFile != "" {
			if err := reporter.SaveToFile(result, outputFile, format); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Printf("Report saved to: %s\n", outputFile)
			return nil
		}

		return reporter.New(os.Stdout, format).ScanReport(result)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the configuration file location and whether it exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", cfgPath)

		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist. Using default configuration.")
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	scanCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, table, json, yaml)")

	applyCmd.Flags().StringVar(&actionFlag, "action", "", "action to take (hardlink, symlink, delete)")
	applyCmd.Flags().BoolVar(&fallbackFlag, "fallback", false, "fall back to symlink when hard linking crosses devices")
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would happen without changing anything")
	applyCmd.Flags().BoolVar(&force, "force", false, "skip per-group confirmation prompts")
	applyCmd.Flags().StringVar(&auditLogPath, "audit-log", "", "audit log file path")
	applyCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, json, yaml)")

	reportCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, table, json, yaml)")
	reportCmd.Flags().StringVar(&outputFile, "file", "", "save report to file")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
}

func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	level := verbose
	if cfg.Verbose && level == 0 {
		level = 1
	}
	log := logging.New(os.Stderr, level)

	return cfg, log, nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}

func runScan(cfg *config.Config, log zerolog.Logger, masterDir, dupDir string) (*scanner.ScanResult, error) {
	for _, dir := range []string{masterDir, dupDir} {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", dir, err)
		}
	}

	fmt.Println("Scanning for duplicates...")

	scnr := scanner.New(cfg, log)
	result, err := scnr.Scan(masterDir, dupDir)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return result, nil
}

func resolveAuditLogPath(cfg *config.Config) (string, error) {
	if auditLogPath != "" {
		return auditLogPath, nil
	}

	dir, err := cfg.AuditLogDirectory()
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("relink-%s.log", time.Now().Format("20060102-150405"))
	return filepath.Join(dir, name), nil
}
