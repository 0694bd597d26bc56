package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/avelinek/taskdeck/internal/report"
)

var (
	fixtureDir string
	outputDir  string
	formats    string
	sourceList string
	allTasks   bool
)

var rootCmd = &cobra.Command{
	Use:   "td",
	Short: "Triage tasks from heterogeneous sources on the command line",
	Long:  `td syncs tasks from the configured sources and prints or exports the triage feed without opening the board.`,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync all sources and show per-source counts",
	RunE:  runSync,
}

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "List tasks needing attention, most urgent first",
	RunE:  runTriage,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the triage feed to CSV and Excel",
	RunE:  runReport,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(triageCmd)
	rootCmd.AddCommand(reportCmd)

	rootCmd.PersistentFlags().StringVar(&fixtureDir, "fixtures", "", "Fixture directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&sourceList, "sources", "", "Comma-separated sources to sync (default: all configured)")

	triageCmd.Flags().BoolVarP(&allTasks, "all", "a", false, "Include tasks that need no attention")

	reportCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	reportCmd.Flags().StringVar(&formats, "formats", "", "Comma-separated formats: csv, xlsx (overrides config)")
}

func runSync(cmd *cobra.Command, args []string) error {
	svc, _, err := buildService()
	if err != nil {
		return err
	}

	bar := newSpinner("Syncing sources")
	syncErr := svc.SyncAll(context.Background())
	finishBar(bar)
	if syncErr != nil {
		fmt.Printf("Some sources failed: %v\n", syncErr)
	}

	counts := make(map[string]int)
	for _, task := range svc.Tasks() {
		counts[string(task.Source)]++
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tTASKS")
	for _, source := range svc.Sources() {
		fmt.Fprintf(w, "%s\t%d\n", source, counts[string(source)])
	}
	return w.Flush()
}

func runTriage(cmd *cobra.Command, args []string) error {
	svc, _, err := buildService()
	if err != nil {
		return err
	}

	bar := newSpinner("Syncing sources")
	syncErr := svc.SyncAll(context.Background())
	finishBar(bar)
	if syncErr != nil {
		fmt.Printf("Some sources failed: %v\n", syncErr)
	}

	rows := report.Build(svc.Tasks(), svc.Now())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "URGENCY\tID\tCOLUMN\tTITLE\tREASONS")
	shown := 0
	for _, row := range rows {
		if !allTasks && !row.Attention.NeedsAttention() {
			continue
		}
		column := "done"
		if row.OnBoard {
			column = row.Column.Label()
		}
		reasons := make([]string, 0, len(row.Attention.Reasons))
		for reason := range row.Attention.Reasons {
			reasons = append(reasons, string(reason))
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			row.Attention.UrgencyScore, row.Task.ID, column, row.Task.Title, strings.Join(reasons, ","))
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if shown == 0 {
		fmt.Println("Nothing needs attention.")
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	svc, cfg, err := buildService()
	if err != nil {
		return err
	}

	bar := newSpinner("Syncing sources")
	syncErr := svc.SyncAll(context.Background())
	finishBar(bar)
	if syncErr != nil {
		fmt.Printf("Some sources failed: %v\n", syncErr)
	}

	dir := cfg.Report.OutputDir
	if outputDir != "" {
		dir = outputDir
	}
	wanted := cfg.Report.Formats
	if formats != "" {
		wanted = parseCommaList(formats)
	}

	now := svc.Now()
	rows := report.Build(svc.Tasks(), now)
	fmt.Printf("Exporting %d tasks\n", len(rows))

	exportBar := progressbar.NewOptions(len(wanted),
		progressbar.OptionSetDescription("Exporting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)
	defer finishBar(exportBar)

	var written []string
	for _, format := range wanted {
		var path string
		var exportErr error
		switch strings.ToLower(format) {
		case "csv":
			path, exportErr = report.NewCSVExporter(dir).Export(rows, now)
		case "xlsx", "excel":
			path, exportErr = report.NewExcelExporter(dir).Export(rows, now)
		default:
			fmt.Printf("Unknown format: %s\n", format)
			continue
		}
		if exportErr != nil {
			fmt.Printf("Failed to export %s: %v\n", format, exportErr)
			continue
		}
		written = append(written, path)
		_ = exportBar.Add(1)
	}

	fmt.Println()
	for _, path := range written {
		fmt.Printf("  -> %s\n", path)
	}
	return nil
}

func newSpinner(description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
