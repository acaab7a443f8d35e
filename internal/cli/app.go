// Package cli implements storectl, the command-line front end for running
// reports on transaction files and generating sample datasets.
package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"store-dashboard/internal/generator"
	"store-dashboard/internal/ingest"
	"store-dashboard/internal/models"
	"store-dashboard/internal/report"
	"store-dashboard/internal/services"
)

const allProfiles = "all"

type App struct {
	rootCmd *cobra.Command
	source  *ingest.Source
}

func NewApp(version string) *App {
	return NewAppWithSource(version, ingest.NewSource())
}

// NewAppWithSource uses source to open report input files.
func NewAppWithSource(version string, source *ingest.Source) *App {
	app := &App{source: source}

	rootCmd := &cobra.Command{
		Use:           "storectl",
		Short:         "General store business dashboard CLI",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "storectl version: %s\n" .Version}}`)
	rootCmd.AddCommand(app.reportCommand(), app.generateCommand())

	app.rootCmd = rootCmd
	return app
}

func (app *App) Execute(ctx context.Context) error {
	return app.rootCmd.ExecuteContext(ctx)
}

// SetArgs, SetOut and SetErr exist for tests.
func (app *App) SetArgs(args []string) { app.rootCmd.SetArgs(args) }
func (app *App) SetOut(w io.Writer)    { app.rootCmd.SetOut(w) }
func (app *App) SetErr(w io.Writer)    { app.rootCmd.SetErr(w) }

func (app *App) reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the analytics pipeline on a transaction CSV",
		Long: "Loads a transaction CSV (local path or s3://bucket/key), applies the category and\n" +
			"store-type filters and renders the report to the terminal or exports it to files.",
		RunE: app.runReport,
	}

	flags := cmd.Flags()
	flags.StringP("file", "f", "", "Transaction CSV to analyze (path or s3:// URI)")
	flags.StringSliceP("category", "c", nil, "Categories to include (default: all, \"none\" for an empty selection)")
	flags.StringSliceP("store", "s", nil, "Store types to include (default: all, \"none\" for an empty selection)")
	flags.StringSliceP("format", "y", []string{report.FormatConsole}, "Output formats: console, md, html, pdf, json, csv")
	flags.StringP("dir", "d", "", "Directory to save report files (default: current directory)")
	flags.StringP("name", "n", "store_report", "Base name for report files (without extension)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (app *App) runReport(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("file")
	formats, _ := cmd.Flags().GetStringSlice("format")
	dir, _ := cmd.Flags().GetString("dir")
	name, _ := cmd.Flags().GetString("name")

	for _, f := range formats {
		if f != report.FormatConsole && !slices.Contains(report.FileFormats, f) {
			return fmt.Errorf("unsupported format %q", f)
		}
	}

	dashboard := services.NewDashboardWithSource(app.source)
	if _, err := dashboard.LoadFrom(cmd.Context(), file); err != nil {
		return err
	}
	opts, err := dashboard.Options()
	if err != nil {
		return err
	}

	sel := models.Selection{
		Categories: selectionFlag(cmd, "category", opts.Categories),
		StoreTypes: selectionFlag(cmd, "store", opts.StoreTypes),
	}
	rep, err := dashboard.Report(cmd.Context(), sel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var exports []string
	for _, f := range formats {
		if f == report.FormatConsole {
			if err := report.NewConsole(out).Render(rep); err != nil {
				return err
			}
			continue
		}
		exports = append(exports, f)
	}
	if len(exports) == 0 {
		return nil
	}

	paths, err := report.Export(rep, exports, dir, name)
	for _, p := range paths {
		fmt.Fprint(out, pterm.Success.Sprintfln("Report saved: %s", p))
	}
	return err
}

// selectionFlag returns every option when the flag was not given.
func selectionFlag(cmd *cobra.Command, name string, all []string) []string {
	if !cmd.Flags().Changed(name) {
		return all
	}
	values, _ := cmd.Flags().GetStringSlice(name)
	out := []string{}
	for _, v := range values {
		if v != "" && v != "none" {
			out = append(out, v)
		}
	}
	return out
}

func (app *App) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate sample transaction datasets",
		Long: fmt.Sprintf("Writes synthetic transaction CSVs from built-in profiles (%v)\nor from TOML, YAML or JSON profile files.",
			generator.BuiltinNames()),
		RunE: app.runGenerate,
	}

	flags := cmd.Flags()
	flags.StringSliceP("profile", "p", nil, "Built-in profiles to generate, or \"all\"")
	flags.StringSlice("profile-file", nil, "Profile files (TOML, YAML or JSON) to generate")
	flags.StringP("out", "o", ".", "Output directory")
	flags.Bool("with-derived", false, "Include precomputed Revenue and Profit columns")

	return cmd
}

func (app *App) runGenerate(cmd *cobra.Command, _ []string) error {
	names, _ := cmd.Flags().GetStringSlice("profile")
	files, _ := cmd.Flags().GetStringSlice("profile-file")
	dir, _ := cmd.Flags().GetString("out")
	withDerived, _ := cmd.Flags().GetBool("with-derived")

	profiles, err := collectProfiles(names, files)
	if err != nil {
		return err
	}

	results, err := generator.GenerateAll(cmd.Context(), profiles, dir, withDerived)
	if err != nil {
		return err
	}

	td := pterm.TableData{{"Profile", "File", "Rows", "Revenue", "Profit", "Margin %"}}
	for _, r := range results {
		td = append(td, []string{
			r.Profile, r.Path, fmt.Sprint(r.Rows),
			report.Money(r.Revenue), report.Money(r.Profit), report.Money(r.MarginPct()),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(td).Srender()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, table)
	fmt.Fprint(out, pterm.Success.Sprintfln("Generated %d dataset(s)", len(results)))
	return nil
}

func collectProfiles(names, files []string) ([]generator.Profile, error) {
	if len(names) == 0 && len(files) == 0 {
		names = []string{allProfiles}
	}

	var profiles []generator.Profile
	for _, name := range names {
		if name == allProfiles {
			for _, n := range generator.BuiltinNames() {
				p, _ := generator.Builtin(n)
				profiles = append(profiles, p)
			}
			continue
		}
		p, ok := generator.Builtin(name)
		if !ok {
			return nil, fmt.Errorf("unknown profile %q (available: %v)", name, generator.BuiltinNames())
		}
		profiles = append(profiles, p)
	}

	for _, f := range files {
		p, err := generator.LoadProfile(f)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
