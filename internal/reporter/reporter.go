package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/relink/internal/linker"
	"github.com/fenilsonani/relink/internal/scanner"
	"github.com/fenilsonani/relink/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// ParseFormat maps a flag value to an OutputFormat, defaulting to summary
func ParseFormat(s string) OutputFormat {
	switch s {
	case "table":
		return FormatTable
	case "json":
		return FormatJSON
	case "yaml":
		return FormatYAML
	default:
		return FormatSummary
	}
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// scanReport is the serialized shape of a scan result
type scanReport struct {
	Timestamp          string           `json:"timestamp" yaml:"timestamp"`
	FilesScanned       int              `json:"files_scanned" yaml:"files_scanned"`
	Groups             int              `json:"groups" yaml:"groups"`
	Duplicates         int              `json:"duplicates" yaml:"duplicates"`
	WastedBytes        int64            `json:"wasted_bytes" yaml:"wasted_bytes"`
	WastedFormatted    string           `json:"wasted_formatted" yaml:"wasted_formatted"`
	DuplicateGroups    []groupReport    `json:"duplicate_groups" yaml:"duplicate_groups"`
	Errors             int              `json:"errors" yaml:"errors"`
}

type groupReport struct {
	Hash       string   `json:"hash" yaml:"hash"`
	Size       int64    `json:"size" yaml:"size"`
	Master     string   `json:"master" yaml:"master"`
	Duplicates []string `json:"duplicates" yaml:"duplicates"`
}

// ScanReport renders a scan result in the configured format
func (r *Reporter) ScanReport(result *scanner.ScanResult) error {
	switch r.format {
	case FormatTable:
		return r.scanTable(result)
	case FormatJSON:
		return r.encodeScan(result, "json")
	case FormatYAML:
		return r.encodeScan(result, "yaml")
	case FormatSummary:
		return r.scanSummary(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

func (r *Reporter) scanSummary(result *scanner.ScanResult) error {
	fmt.Fprintf(r.writer, "=== Duplicate Scan Summary ===\n")
	fmt.Fprintf(r.writer, "Files Scanned: %d\n", result.FilesScanned)
	fmt.Fprintf(r.writer, "Duplicate Groups: %d\n", len(result.Groups))
	fmt.Fprintf(r.writer, "Duplicate Files: %d\n", result.TotalDuplicates())
	fmt.Fprintf(r.writer, "Recoverable Space: %s\n", humanize.IBytes(uint64(result.WastedBytes)))

	if len(result.Errors) > 0 {
		fmt.Fprintf(r.writer, "\nErrors: %d\n", len(result.Errors))
	}

	return nil
}

func (r *Reporter) scanTable(result *scanner.ScanResult) error {
	fmt.Fprintf(r.writer, "%-12s | %-60s | %s\n", "Size", "Master", "Duplicate")
	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 120))

	for _, g := range result.Groups {
		for _, dup := range g.Duplicates {
			fmt.Fprintf(r.writer, "%-12s | %-60s | %s\n",
				utils.FormatBytes(g.Size),
				truncatePath(g.Master, 60),
				dup)
		}
	}

	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 120))
	fmt.Fprintf(r.writer, "Total: %d groups, %s recoverable\n",
		len(result.Groups), utils.FormatBytes(result.WastedBytes))

	return nil
}

func (r *Reporter) encodeScan(result *scanner.ScanResult, enc string) error {
	groups := make([]groupReport, 0, len(result.Groups))
	for _, g := range result.Groups {
		groups = append(groups, groupReport{
			Hash:       g.Hash,
			Size:       g.Size,
			Master:     g.Master,
			Duplicates: g.Duplicates,
		})
	}

	report := scanReport{
		Timestamp:       time.Now().Format(time.RFC3339),
		FilesScanned:    result.FilesScanned,
		Groups:          len(result.Groups),
		Duplicates:      result.TotalDuplicates(),
		WastedBytes:     result.WastedBytes,
		WastedFormatted: humanize.IBytes(uint64(result.WastedBytes)),
		DuplicateGroups: groups,
		Errors:          len(result.Errors),
	}

	return r.encode(report, enc)
}

// executionReport is the serialized shape of an execution result
type executionReport struct {
	Timestamp      string   `json:"timestamp" yaml:"timestamp"`
	Succeeded      int      `json:"succeeded" yaml:"succeeded"`
	Failed         int      `json:"failed" yaml:"failed"`
	Skipped        int      `json:"skipped" yaml:"skipped"`
	BytesFreed     int64    `json:"bytes_freed" yaml:"bytes_freed"`
	FreedFormatted string   `json:"freed_formatted" yaml:"freed_formatted"`
	Failures       []string `json:"failures,omitempty" yaml:"failures,omitempty"`
	Quit           bool     `json:"quit" yaml:"quit"`
}

// ExecutionReport renders an execution result in the configured format
func (r *Reporter) ExecutionReport(result *linker.ExecutionResult) error {
	switch r.format {
	case FormatJSON:
		return r.encodeExecution(result, "json")
	case FormatYAML:
		return r.encodeExecution(result, "yaml")
	default:
		return r.executionSummary(result)
	}
}

func (r *Reporter) executionSummary(result *linker.ExecutionResult) error {
	fmt.Fprintf(r.writer, "\n📊 Run Complete!\n")
	fmt.Fprintf(r.writer, "✅ Replaced: %d duplicates (%s freed)\n",
		result.Succeeded, humanize.IBytes(uint64(result.BytesFreed)))

	if result.Skipped > 0 {
		fmt.Fprintf(r.writer, "↩️  Skipped (already linked): %d\n", result.Skipped)
	}
	if result.Failed > 0 {
		fmt.Fprintf(r.writer, "⚠️  Failed: %d\n", result.Failed)
	}
	if result.UserSkipped > 0 {
		fmt.Fprintf(r.writer, "⏭️  Groups declined: %d\n", result.UserSkipped)
	}
	if result.Quit {
		fmt.Fprintf(r.writer, "🛑 Stopped early, %d groups untouched\n", result.RemainingGroups)
	}

	return nil
}

func (r *Reporter) encodeExecution(result *linker.ExecutionResult, enc string) error {
	failures := make([]string, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, fmt.Sprintf("%s: %s", f.Path, f.Message))
	}

	report := executionReport{
		Timestamp:      time.Now().Format(time.RFC3339),
		Succeeded:      result.Succeeded,
		Failed:         result.Failed,
		Skipped:        result.Skipped,
		BytesFreed:     result.BytesFreed,
		FreedFormatted: humanize.IBytes(uint64(result.BytesFreed)),
		Failures:       failures,
		Quit:           result.Quit,
	}

	return r.encode(report, enc)
}

func (r *Reporter) encode(report interface{}, enc string) error {
	if enc == "yaml" {
		encoder := yaml.NewEncoder(r.writer)
		defer encoder.Close()
		return encoder.Encode(report)
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// SaveToFile saves a scan report to a file
func SaveToFile(result *scanner.ScanResult, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reporter := New(file, format)
	return reporter.ScanReport(result)
}

func truncatePath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	return "..." + path[len(path)-(max-3):]
}
