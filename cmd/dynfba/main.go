package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dynfba/internal/analysis"
	"github.com/san-kum/dynfba/internal/batch"
	"github.com/san-kum/dynfba/internal/config"
	"github.com/san-kum/dynfba/internal/export"
	"github.com/san-kum/dynfba/internal/fba"
	"github.com/san-kum/dynfba/internal/model"
	"github.com/san-kum/dynfba/internal/sim"
	"github.com/san-kum/dynfba/internal/storage"
	"github.com/san-kum/dynfba/internal/tui"
)

var (
	dataDir        string
	configFile     string
	preset         string
	modelName      string
	dt             float64
	steps          int
	hours          float64
	volume         float64
	initialBiomass float64
	verbose        bool
	// plot
	plotColumns []string
	// live
	stepsPerTick int
	// batch
	sweepMetabolite string
	sweepValues     []float64
	workers         int
	// export-svg
	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dynfba",
		Short: "dynamic flux-balance simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynfba", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save the time series",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&plotColumns, "columns", nil, "columns to plot (default biomass plus active metabolites)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a saved run's CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with a live terminal view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerTick, "steps-per-tick", 25, "simulation steps per frame")

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "sweep one initial concentration across values",
		RunE:  runBatch,
	}
	addRunFlags(batchCmd)
	batchCmd.Flags().StringVar(&sweepMetabolite, "sweep", "glc_e", "metabolite whose initial concentration to sweep")
	batchCmd.Flags().Float64SliceVar(&sweepValues, "values", []float64{1, 5, 10}, "initial concentrations to try")
	batchCmd.Flags().IntVar(&workers, "workers", 4, "concurrent runs")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "growth-rate analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [column]",
		Short: "write one column of a saved run as an SVG plot",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output path (default <run_id>_<column>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd,
		exportSVGCmd, analyzeCmd, liveCmd, batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in preset")
	cmd.Flags().StringVar(&modelName, "model", "textbook", "model name or COBRA JSON file")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (seconds)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&hours, "hours", 0, "simulated hours (overrides steps)")
	cmd.Flags().Float64Var(&volume, "volume", config.DefaultVolume, "compartment volume (L)")
	cmd.Flags().Float64Var(&initialBiomass, "biomass", config.DefaultBiomass, "initial biomass (gDW)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "progress output")
}

// resolveConfig merges preset, config file, and CLI flags; flags win.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("model") {
		cfg.Model = modelName
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("hours") {
		cfg.Hours = hours
	}
	if cmd.Flags().Changed("volume") {
		cfg.Volume = volume
	}
	if cmd.Flags().Changed("biomass") {
		cfg.InitialBiomass = initialBiomass
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildOracle wires the built-in yield oracle from the config. With no
// explicit yields, every initially-present substrate earns the default
// yield through its exchange reaction.
func buildOracle(cfg *config.Config, m *model.Model) fba.Oracle {
	oracle := &fba.YieldOracle{
		BiomassReaction: cfg.BiomassReaction,
		Yields:          cfg.Yields,
	}
	if len(oracle.Yields) == 0 {
		oracle.Yields = make(map[string]float64)
		em := m.ExchangeMap()
		for metID, c := range cfg.ExtConc {
			if rxnID, ok := em[metID]; ok && c > 0 {
				oracle.Yields[rxnID] = fba.DefaultYield
			}
		}
	}
	return oracle
}

func setup(cmd *cobra.Command) (*config.Config, *model.Model, *sim.Simulator, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	m, err := model.Load(cfg.Model)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := sim.New(m, buildOracle(cfg, m), cfg.SimConfig())
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, m, s, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, _, s, err := setup(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	nSteps := cfg.NumSteps()
	fmt.Printf("running %s for %d steps (dt=%gs)...\n", cfg.Model, nSteps, cfg.Dt)
	start := time.Now()

	if err := s.Run(context.Background(), nSteps, verbose); err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, "yield", cfg.Dt, cfg.Volume, s.Series(), s.Biomass(), s.Feasible())
	if err != nil {
		return err
	}
	if idx, err := storage.OpenIndex(dataDir); err == nil {
		defer idx.Close()
		if meta, err := st.Load(runID); err == nil {
			if err := idx.Put(*meta); err != nil {
				fmt.Fprintf(os.Stderr, "warning: index update failed: %v\n", err)
			}
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps recorded: %d\n", s.Series().Len())
	fmt.Printf("final biomass: %.6f gDW\n", s.Biomass())
	if !s.Feasible() {
		fmt.Println("run halted early: solver reported a non-optimal status")
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	var runs []storage.RunMetadata

	if idx, err := storage.OpenIndex(dataDir); err == nil {
		defer idx.Close()
		runs, err = idx.List()
		if err != nil {
			return err
		}
	}
	if len(runs) == 0 {
		st := storage.New(dataDir)
		var err error
		runs, err = st.List()
		if err != nil {
			return err
		}
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTEPS\tDT\tBIOMASS\tFEASIBLE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%.4f\t%t\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.FinalBiomass,
			run.Feasible,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", series.Len())

	columns := plotColumns
	if len(columns) == 0 {
		columns = []string{"biomass"}
		for _, id := range series.Metabolites {
			if col, ok := series.Column(id); ok && anyNonZero(col) {
				columns = append(columns, id)
			}
		}
	}

	const maxPlots = 6
	if len(columns) > maxPlots {
		columns = columns[:maxPlots]
	}

	for _, name := range columns {
		col, ok := series.Column(name)
		if !ok {
			fmt.Printf("unknown column: %s\n\n", name)
			continue
		}
		caption := name + " (mmol/L)"
		if name == "biomass" {
			caption = "biomass (gDW)"
		}
		graph := asciigraph.Plot(col,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func anyNonZero(vals []float64) bool {
	for _, v := range vals {
		if v != 0 {
			return true
		}
	}
	return false
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, series)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]
	file, err := os.Open(filepath.Join(dataDir, runID, "timeseries.csv"))
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(os.Stdout, file)
	return err
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	stats, ok := analysis.FitGrowth(series)
	if !ok {
		return fmt.Errorf("run %s has too little data for a growth fit", runID)
	}

	fmt.Printf("specific growth rate: %.6f /hr\n", stats.SpecificRate)
	fmt.Printf("doubling time: %.4f hr\n", stats.DoublingTime)
	fmt.Printf("biomass: %.6f -> %.6f gDW\n", stats.InitialBiomass, stats.FinalBiomass)

	for _, id := range series.Metabolites {
		if t, depleted := analysis.DepletionTime(series, id); depleted {
			if col, ok := series.Column(id); ok && col[0] > 0 {
				fmt.Printf("%s depleted at t=%.2f s\n", id, t)
			}
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID, column := args[0], args[1]
	st := storage.New(dataDir)

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	out := svgOut
	if out == "" {
		out = fmt.Sprintf("%s_%s.svg", runID, column)
	}
	if err := export.WriteSVG(out, series, column, 800, 400); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, s, err := setup(cmd)
	if err != nil {
		return err
	}
	return tui.Run(s, cfg.Model, cfg.Dt, cfg.NumSteps(), stepsPerTick)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, m, _, err := setup(cmd)
	if err != nil {
		return err
	}

	runs := batch.SweepConcentration(cfg.SimConfig(), cfg.NumSteps(), sweepMetabolite, sweepValues)
	factory := func() fba.Oracle { return buildOracle(cfg, m) }

	fmt.Printf("sweeping %s across %d values (%d workers)...\n",
		sweepMetabolite, len(sweepValues), workers)

	results, err := batch.Execute(context.Background(), m, factory, runs, workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTEPS\tFINAL BIOMASS\tFEASIBLE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.6f\t%t\n", r.Label, r.Series.Len(), r.FinalBiomass, r.Feasible)
	}
	return w.Flush()
}
