package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/docstat/internal/config"
	"github.com/dgallion1/docstat/internal/parser"
	"github.com/dgallion1/docstat/internal/report"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	marker     string
	outDir     string
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "docstat <file>",
		Short: "Outline statistics for structured documents",
		Long: `docstat reads an HTML, Markdown or DOCX document organized as
parts (h1), sections (h2) and subsections (h3) and reports, per section:

  - the number of terms (table data rows)
  - intro, body and quote/hint text lengths
  - whether the section is unfinished (its prose contains the marker)

Results are printed as tables and written to <name>_summary.csv and
<name>_breakdown.csv.

Example:
  docstat ITdictionary.html
  docstat ITdictionary.html --out reports --marker FIXME`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, false)
			if err != nil {
				return err
			}
			return runAnalyze(stdout, log, cfg, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&opts.marker, "marker", "", "literal text that marks a section unfinished (default TODO)")
	rootCmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "directory for the CSV files (default current directory)")

	rootCmd.AddCommand(serveCmd(opts))
	return rootCmd
}

// loadConfig layers flags over the environment over the config file.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("marker") {
		cfg.Marker = opts.marker
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = opts.outDir
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config, json bool) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stdout, hopts)), nil
	}
	// Reports own stdout; logs go to stderr.
	return slog.New(slog.NewTextHandler(os.Stderr, hopts)), nil
}

func runAnalyze(stdout io.Writer, log *slog.Logger, cfg config.Config, path string) error {
	doc, err := parser.Load(path)
	if err != nil {
		return err
	}
	log.Debug("outline built", "path", path, "parts", len(doc.Parts))

	rep := report.Analyze(doc, cfg.Marker)

	if err := report.Render(stdout, rep); err != nil {
		return fmt.Errorf("print report: %w", err)
	}

	summaryPath, breakdownPath, err := report.WriteCSVFiles(cfg.OutputDir, rep)
	if err != nil {
		return err
	}
	log.Debug("csv written", "summary", summaryPath, "breakdown", breakdownPath)

	_, err = fmt.Fprintf(stdout, "\nCSV files created: %s, %s\n", summaryPath, breakdownPath)
	return err
}
