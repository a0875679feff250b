package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudsaver/billing-advisor/pkg/analyzer"
	"github.com/cloudsaver/billing-advisor/pkg/config"
	"github.com/cloudsaver/billing-advisor/pkg/ingest"
	"github.com/cloudsaver/billing-advisor/pkg/models"
	"github.com/cloudsaver/billing-advisor/pkg/output"
	"github.com/cloudsaver/billing-advisor/pkg/reporter"
)

var (
	outputFormat   string
	explainEnabled bool
	generateReport bool
	reportFormat   string
	reportOutput   string
	verbose        bool

	cfg *config.Config
)

func main() {
	cfg = config.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "cost-advise <billing.csv>",
		Short: "Cloud billing cost advisor",
		Long:  `Analyze a cloud billing CSV export and produce ranked cost-saving recommendations.`,
		Args:  cobra.ExactArgs(1),
		Run:   runAnalyze,
	}

	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json")
	rootCmd.Flags().BoolVar(&explainEnabled, "explain", false, "Generate explanations with OpenAI (requires OPENAI_API_KEY)")
	rootCmd.Flags().BoolVar(&generateReport, "generate-report", false, "Write a cost advisory report to a file")
	rootCmd.Flags().StringVar(&reportFormat, "report-format", "markdown", "Report format: markdown, csv, html")
	rootCmd.Flags().StringVar(&reportOutput, "report-output", "cost-report.md", "Output file for the report")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	if !explainEnabled {
		// fallback text only; no external calls from the CLI by default
		cfg.OpenAIAPIKey = ""
	}

	a := analyzer.New(cfg)
	summary, err := a.Analyze(context.Background(), ingest.DecodeText(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	handler, err := output.NewHandler(outputFormat, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := handler.DisplaySummary(context.Background(), summary); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to display summary: %v\n", err)
		os.Exit(1)
	}

	if generateReport {
		if err := writeReport(summary, filepath.Base(path)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate report: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", reportOutput)
	}
}

func writeReport(summary *models.Summary, source string) error {
	rep := reporter.New(reporter.ReportFormat(reportFormat))
	report, err := rep.Generate(summary, source)
	if err != nil {
		return err
	}

	f, err := os.Create(reportOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", reportOutput, err)
	}
	defer f.Close()

	return rep.Write(report, f)
}
