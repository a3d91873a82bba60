// Package main provides the CLI entry point for exchart-go.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exchart-go/internal/config"
	"github.com/ukaji3/exchart-go/internal/logger"
	"github.com/ukaji3/exchart-go/pkg/exchart"
	"github.com/ukaji3/exchart-go/pkg/exchart/chart"
	"github.com/ukaji3/exchart-go/pkg/exchart/models"
	"github.com/ukaji3/exchart-go/pkg/exchart/output"
	"github.com/ukaji3/exchart-go/pkg/exchart/workbook"
)

var (
	configPath   string
	verbose      bool
	chartPath    string
	workbookPath string
	dataPath     string
	outChartPath string
	outWorkbook  string
	sheetName    string
	pretty       bool
	dataOnly     bool
	force        bool
)

// defaultConfigPath is where config init writes when --config is not given.
const defaultConfigPath = "exchart.toml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "exchart",
		Short: "Render datasets into OOXML chart parts",
		Long: `exchart-go rewrites a chart part (chartN.xml) and its embedded data
workbook so that they hold a new dataset of named series and categories.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().StringVar(&sheetName, "sheet", "", "Data sheet name (default: from config, else first sheet)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Write a dataset into a chart part and its data workbook",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&chartPath, "chart", "", "Chart part XML file")
	renderCmd.Flags().StringVar(&workbookPath, "workbook", "", "Embedded data workbook (.xlsx)")
	renderCmd.Flags().StringVar(&dataPath, "data", "", "Dataset JSON file")
	renderCmd.Flags().StringVar(&outChartPath, "out-chart", "", "Output chart XML path (default: overwrite input)")
	renderCmd.Flags().StringVar(&outWorkbook, "out-workbook", "", "Output workbook path (default: overwrite input)")
	_ = renderCmd.MarkFlagRequired("chart")
	_ = renderCmd.MarkFlagRequired("workbook")
	_ = renderCmd.MarkFlagRequired("data")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the series of a chart part and the tables of its data workbook",
		Args:  cobra.NoArgs,
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVar(&chartPath, "chart", "", "Chart part XML file")
	inspectCmd.Flags().StringVar(&workbookPath, "workbook", "", "Embedded data workbook (.xlsx)")
	inspectCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	inspectCmd.Flags().BoolVar(&dataOnly, "data-only", false, "Print only the workbook dataset, in render input format")
	_ = inspectCmd.MarkFlagRequired("chart")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to --config (default exchart.toml)",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(renderCmd, inspectCmd, configCmd)
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger.Setup(os.Stderr, level)
	if sheetName != "" {
		cfg.Render.SheetName = sheetName
	}
	return cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rawData, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	var data models.ChartRenderData
	if err := json.Unmarshal(rawData, &data); err != nil {
		return fmt.Errorf("failed to parse data: %w", err)
	}

	c, err := readChart(chartPath)
	if err != nil {
		return err
	}

	sheet, err := workbook.Open(workbookPath, cfg.Render.SheetName)
	if err != nil {
		return err
	}
	defer sheet.Close()

	// formulas must point into the sheet that holds the data
	c.SheetName = sheet.Name()

	syncer := exchart.New(cfg.Options(), logger.Logger)
	if err := syncer.Render(c, sheet, data); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	encoded, err := chart.Encode(c)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if outChartPath == "" {
		outChartPath = chartPath
	}
	if err := os.WriteFile(outChartPath, encoded, 0644); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	if outWorkbook == "" {
		outWorkbook = workbookPath
	}
	if err := sheet.SaveAs(outWorkbook); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	logger.Info("render complete", "chart", outChartPath, "workbook", outWorkbook)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	c, err := readChart(chartPath)
	if err != nil {
		return err
	}
	summary := summarize(c)

	if workbookPath != "" {
		sheet, err := workbook.Open(workbookPath, cfg.Render.SheetName)
		if err != nil {
			return err
		}
		defer sheet.Close()

		for _, t := range sheet.Tables() {
			summary.Tables = append(summary.Tables, *t)
		}
		if data, err := sheet.ReadSeries(); err == nil {
			summary.Data = data
		} else {
			logger.Warn("could not read sheet data", "sheet", sheet.Name(), "error", err)
		}
	}

	var jsonData []byte
	if dataOnly {
		if summary.Data == nil {
			return fmt.Errorf("no dataset: --data-only needs a readable --workbook")
		}
		jsonData, err = output.DataToJSON(summary.Data, pretty)
	} else {
		jsonData, err = output.ToJSON(summary, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = defaultConfigPath
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
	return nil
}

func readChart(path string) (*chart.Chart, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart: %w", err)
	}
	c, err := chart.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func summarize(c *chart.Chart) *models.ChartSummary {
	summary := &models.ChartSummary{
		ChartType: string(c.Plot.Kind()),
		Title:     c.Title,
		SheetName: c.SheetName,
		Series:    []models.SeriesSummary{},
	}
	for _, s := range c.Series {
		ss := models.SeriesSummary{Name: s.Name, NameRange: s.NameRef}
		if s.Category != nil {
			ss.XRange = s.Category.Ref
		}
		if s.Values != nil {
			ss.YRange = s.Values.Ref
			ss.NumPoints = s.Values.PointCount()
		}
		summary.Series = append(summary.Series, ss)
	}
	return summary
}
