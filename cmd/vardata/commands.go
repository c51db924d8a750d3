package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/vardata-go/internal/config"
	"github.com/ukaji3/vardata-go/internal/logging"
	"github.com/ukaji3/vardata-go/internal/watch"
	"github.com/ukaji3/vardata-go/pkg/vardata"
	"github.com/ukaji3/vardata-go/pkg/vardata/job"
	"github.com/ukaji3/vardata-go/pkg/vardata/parser"
	"github.com/ukaji3/vardata-go/pkg/vardata/raster"
)

// batchFlags holds the flags shared by the root and watch commands.
type batchFlags struct {
	outputDir string
	filename  string
	combined  string
	schema    string
	sheet     string
	cellRange string
	delimiter string
	logLevel  string
	logFormat string
}

func rootCmd(cfg *config.Config) *cobra.Command {
	f := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "vardata <template.yaml> <dataset>",
		Short: "Generate one document per dataset row from a template",
		Long: `vardata fills a template document from a tabular dataset (CSV, TSV or XLSX).

The first dataset row names template elements (layers or paths), the second
gives the property each column sets: visibility, foreground, background or
text. Every following row produces one exported file (PNG, JPEG or PDF,
chosen by the filename extension). "$n" in the filename is replaced by the
1-based data row number.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(f.logLevel, f.logFormat)
			slog.Debug("configuration", "config", cfg.String())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := buildJob(cfg, f, args[0], args[1])
			if err != nil {
				return err
			}
			res, err := job.Run(cmd.Context(), j)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.outputDir, "output-dir", "o", ".", "Output directory (must exist)")
	pf.StringVarP(&f.filename, "filename", "f", cfg.Batch.FilenameTemplate, "Filename template; $n is the data row number")
	pf.StringVar(&f.combined, "combined", cfg.Batch.CombinedFilename, "Also write all pages to this PDF in the output directory")
	pf.StringVar(&f.schema, "schema", cfg.Batch.SchemaVersion, "Dataset schema: current or legacy")
	pf.StringVar(&f.sheet, "sheet", "", "XLSX sheet name (default: active sheet)")
	pf.StringVar(&f.cellRange, "range", "", "XLSX cell range (A1:D10, Sheet1!A1:D10) or workbook defined name")
	pf.StringVar(&f.delimiter, "delimiter", cfg.Batch.CSVDelimiter, "CSV delimiter: a character, tab, comma or semicolon")
	pf.StringVar(&f.logLevel, "log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	pf.StringVar(&f.logFormat, "log-format", cfg.Logging.Format, "Log format (text, json)")

	cmd.AddCommand(watchCmd(cfg, f), inspectCmd(), versionCmd())
	return cmd
}

func watchCmd(cfg *config.Config, f *batchFlags) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <template.yaml> <dataset>",
		Short: "Regenerate whenever the template or dataset changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := buildJob(cfg, f, args[0], args[1])
			if err != nil {
				return err
			}

			w, err := watch.New(watch.Config{
				Files:    []string{args[0], args[1]},
				Debounce: debounce,
			}, slog.Default())
			if err != nil {
				return err
			}
			defer w.Close()

			out := cmd.OutOrStdout()
			return w.Run(cmd.Context(), func(ctx context.Context) error {
				res, err := job.Run(ctx, j)
				if err != nil {
					return err
				}
				printResult(out, res)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", cfg.Watch.Debounce, "Wait this long for more changes before regenerating")
	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <template.yaml>",
		Short: "List the elements a dataset can bind to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			elements, err := job.Inspect(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tELEMENT\tTYPE\tPROPERTIES")
			for _, e := range elements {
				kinds := make([]string, len(e.Kinds))
				for i, k := range e.Kinds {
					kinds[i] = k.String()
				}
				typ := e.Type
				if typ == "" {
					typ = "-"
				}
				props := strings.Join(kinds, ",")
				if props == "" {
					props = "(none: template has no drawable layer)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Kind, typ, props)
			}
			return tw.Flush()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, version, buildTime)
		},
	}
}

// buildJob merges flags over configuration into a job description.
func buildJob(cfg *config.Config, f *batchFlags, templatePath, datasetPath string) (job.Job, error) {
	schema, err := vardata.ParseSchemaVersion(f.schema)
	if err != nil {
		return job.Job{}, err
	}
	delim, err := parser.ParseDelimiter(f.delimiter)
	if err != nil {
		return job.Job{}, err
	}

	return job.Job{
		TemplatePath: templatePath,
		DatasetPath:  datasetPath,
		Batch: vardata.Options{
			OutputDir:        f.outputDir,
			FilenameTemplate: f.filename,
			CombinedFilename: f.combined,
			Schema:           schema,
		},
		Dataset: parser.DatasetOptions{
			Delimiter: delim,
			XLSX:      parser.XLSXOptions{Sheet: f.sheet, Range: f.cellRange},
		},
		Raster: raster.Options{
			JPEGQuality: cfg.Export.JPEGQuality,
			DPI:         float64(cfg.Export.DPI),
		},
	}, nil
}

func printResult(w io.Writer, res *vardata.Result) {
	fmt.Fprintf(w, "Generated %d file(s) in %s\n", len(res.Files), res.Duration.Round(time.Millisecond))
	for _, path := range res.Files {
		fmt.Fprintln(w, "  "+path)
	}
	if res.Combined != "" {
		fmt.Fprintf(w, "Combined: %s\n", res.Combined)
	}
}
