package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/hmclab/internal/analysis"
	"github.com/san-kum/hmclab/internal/automation"
	"github.com/san-kum/hmclab/internal/config"
	"github.com/san-kum/hmclab/internal/experiment"
	"github.com/san-kum/hmclab/internal/export"
	"github.com/san-kum/hmclab/internal/hmc"
	"github.com/san-kum/hmclab/internal/mcmc"
	"github.com/san-kum/hmclab/internal/optim"
	"github.com/san-kum/hmclab/internal/storage"
	"github.com/san-kum/hmclab/internal/target"
	"github.com/san-kum/hmclab/internal/tui"
)

var (
	dataDir     string
	stepSize    float64
	numSteps    int
	numSamples  int
	seed        uint64
	invMass     []float64
	integrator  string
	threshold   float64
	thin        int
	initialPos  []float64
	secondPos   []float64
	coupleTol   float64
	configFile  string
	preset      string
	numChains   int
	stepsPerFrm int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hmclab",
		Short: "Hamiltonian Monte Carlo sampling lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hmclab", "data directory")

	sampleCmd := &cobra.Command{
		Use:   "sample [target]",
		Short: "run an HMC chain",
		Args:  cobra.ExactArgs(1),
		RunE:  runSample,
	}
	addKernelFlags(sampleCmd)
	sampleCmd.Flags().IntVar(&numChains, "chains", 1, "number of parallel chains")
	sampleCmd.Flags().IntVar(&thin, "thin", 1, "keep every n-th sample")

	coupleCmd := &cobra.Command{
		Use:   "couple [target]",
		Short: "run two chains under shared randomness until they meet",
		Args:  cobra.ExactArgs(1),
		RunE:  runCouple,
	}
	addKernelFlags(coupleCmd)
	coupleCmd.Flags().Float64SliceVar(&secondPos, "init2", nil, "second chain initial position")
	coupleCmd.Flags().Float64Var(&coupleTol, "tol", 0, "coalescence tolerance (0 = bitwise)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "trace plots of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "moments, autocorrelation time and ESS of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and samples as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [target]",
		Short: "grid-search step size and trajectory length",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneKernel,
	}
	addKernelFlags(tuneCmd)

	liveCmd := &cobra.Command{
		Use:   "live [target]",
		Short: "live trace view of a running chain",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addKernelFlags(liveCmd)
	liveCmd.Flags().IntVar(&stepsPerFrm, "steps-per-frame", 5, "transitions per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets [target]",
		Short: "list available presets for a target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for target: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted sequence of sampling experiments",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file.svg]",
		Short: "export trace plots of a stored run as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	targetsCmd := &cobra.Command{
		Use:   "targets",
		Short: "list built-in targets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range target.List() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(sampleCmd, coupleCmd, listCmd, plotCmd, analyzeCmd, exportCmd, tuneCmd, liveCmd, batchCmd, exportSVGCmd, presetsCmd, targetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addKernelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&stepSize, "step-size", 0.01, "integration step size")
	cmd.Flags().IntVar(&numSteps, "steps", 100, "integration steps per trajectory")
	cmd.Flags().IntVar(&numSamples, "samples", 5000, "number of transitions")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	cmd.Flags().Float64SliceVar(&invMass, "inv-mass", nil, "diagonal inverse mass matrix")
	cmd.Flags().StringVar(&integrator, "integrator", "verlet", "integrator")
	cmd.Flags().Float64Var(&threshold, "divergence-threshold", 1000, "divergence threshold")
	cmd.Flags().Float64SliceVar(&initialPos, "init", nil, "initial position")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func buildConfig(cmd *cobra.Command, targetName string) (experiment.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Target = targetName

	if preset != "" {
		p := config.GetPreset(targetName, preset)
		if p == nil {
			return experiment.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(targetName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return experiment.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("step-size") || cfg.StepSize == 0 {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("steps") || cfg.NumIntegrationSteps == 0 {
		cfg.NumIntegrationSteps = numSteps
	}
	if cmd.Flags().Changed("samples") || cfg.NumSamples == 0 {
		cfg.NumSamples = numSamples
	}
	if cmd.Flags().Changed("integrator") || cfg.Integrator == "" {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("divergence-threshold") || cfg.DivergenceThreshold == 0 {
		cfg.DivergenceThreshold = threshold
	}
	if cmd.Flags().Changed("inv-mass") {
		cfg.InverseMassMatrix = invMass
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("init") {
		cfg.InitialPosition = map[string][]float64{"x": initialPos}
	}
	if cmd.Flags().Changed("init2") {
		cfg.SecondPosition = map[string][]float64{"x": secondPos}
	}
	if cmd.Flags().Changed("tol") {
		cfg.CouplingTolerance = coupleTol
	}
	if cmd.Flags().Changed("thin") {
		cfg.Thin = thin
	}

	return cfg.ToExperiment(), nil
}

func runSample(cmd *cobra.Command, args []string) error {
	targetName := args[0]

	ecfg, err := buildConfig(cmd, targetName)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(ecfg)
	if err != nil {
		return err
	}

	fmt.Printf("sampling %s...\n", targetName)
	start := time.Now()

	if numChains > 1 {
		results, err := exp.RunEnsemble(context.Background(), numChains)
		if err != nil {
			return err
		}
		fmt.Printf("completed %d chains in %v\n", numChains, time.Since(start))
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CHAIN\tACCEPTED\tDIVERGENCES")
		for i, r := range results {
			fmt.Fprintf(w, "%d\t%d\t%d\n", i, r.Accepted, r.Divergences)
		}
		return w.Flush()
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(targetName, ecfg.StepSize, ecfg.NumIntegrationSteps, ecfg.Seed, ecfg.Integrator, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Samples))
	fmt.Printf("accepted: %d (%.1f%%)\n", result.Accepted, 100*float64(result.Accepted)/float64(result.StepsTaken))
	fmt.Printf("divergences: %d\n", result.Divergences)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runCouple(cmd *cobra.Command, args []string) error {
	targetName := args[0]

	ecfg, err := buildConfig(cmd, targetName)
	if err != nil {
		return err
	}
	if ecfg.SecondPosition == nil {
		return fmt.Errorf("couple requires --init2 or a preset with a second position")
	}

	exp, err := experiment.New(ecfg)
	if err != nil {
		return err
	}

	fmt.Printf("coupling two %s chains...\n", targetName)
	start := time.Now()

	result, err := exp.RunCoupled(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	if result.MeetingTime >= 0 {
		fmt.Printf("chains met after %d transitions\n", result.MeetingTime)
	} else {
		fmt.Printf("chains did not meet within %d transitions\n", result.StepsTaken)
	}
	fmt.Printf("accepted (chain 1): %d\n", result.Accepted)
	fmt.Printf("divergences (chain 1): %d\n", result.Divergences)

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTARGET\tTIME\tSAMPLES\tSTEP\tL\tINTEG\tDIV")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%d\t%s\t%d\n",
			run.ID,
			run.Target,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumSamples,
			run.StepSize,
			run.NumIntegrationSteps,
			run.Integrator,
			run.Divergences,
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

	names, cols, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(cols) == 0 || len(cols[0]) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("target: %s\n", meta.Target)
	fmt.Printf("samples: %d\n\n", len(cols[0]))

	maxPlots := 6
	for i, col := range cols {
		if i >= maxPlots {
			fmt.Printf("(%d more variables not shown)\n", len(cols)-maxPlots)
			break
		}
		graph := asciigraph.Plot(col,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("trace of %s", names[i])),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	names, cols, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("no data to analyze")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VAR\tMEAN\tVARIANCE\tIACT\tESS")

	for i, col := range cols {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.1f\t%.0f\n",
			names[i],
			analysis.Mean(col),
			analysis.Variance(col),
			analysis.IntegratedAutocorrTime(col),
			analysis.ESS(col),
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	results, err := automation.RunScenario(context.Background(), scenario, st)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps\n", len(results))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID, outPath := args[0], args[1]

	st := storage.New(dataDir)
	names, cols, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("no data to export")
	}

	if err := export.WriteTraceSVG(outPath, names, cols, 800, 400); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func tuneKernel(cmd *cobra.Command, args []string) error {
	targetName := args[0]

	ecfg, err := buildConfig(cmd, targetName)
	if err != nil {
		return err
	}
	// Pilot runs stay short so the sweep is cheap.
	if ecfg.NumSamples > 2000 {
		ecfg.NumSamples = 2000
	}

	stepSizes := []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5}
	lengths := []float64{10, 30, 100}

	grid := optim.NewGridSearch(
		[]string{"step_size", "num_steps"},
		[][]float64{stepSizes, lengths},
	)

	varName := "x"
	if names := ecfg.InitialPosition.Names(); len(names) > 0 {
		varName = names[0]
	}

	fmt.Printf("tuning %s over %d grid points...\n", targetName, len(stepSizes)*len(lengths))

	best, score, err := grid.Search(context.Background(),
		func(params map[string]float64) (*experiment.Experiment, error) {
			cfg := ecfg
			cfg.StepSize = params["step_size"]
			cfg.NumIntegrationSteps = int(params["num_steps"])
			return experiment.New(cfg)
		},
		optim.NegativeESS(varName, 0),
	)
	if err != nil {
		return err
	}

	fmt.Printf("best step size: %g\n", best["step_size"])
	fmt.Printf("best trajectory length: %.0f\n", best["num_steps"])
	fmt.Printf("ess: %.0f\n", -score)

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	targetName := args[0]

	ecfg, err := buildConfig(cmd, targetName)
	if err != nil {
		return err
	}

	exp, err := experiment.New(ecfg)
	if err != nil {
		return err
	}

	pot, _, err := target.Get(ecfg.Target, ecfg.TargetParams)
	if err != nil {
		return err
	}

	invMassVec := ecfg.InverseMassMatrix
	if len(invMassVec) == 0 {
		invMassVec = ones(exp.InitialPosition().Dim())
	}
	kernel, err := hmc.New(pot, hmc.Config{
		StepSize:            ecfg.StepSize,
		InverseMassMatrix:   invMassVec,
		NumIntegrationSteps: ecfg.NumIntegrationSteps,
		DivergenceThreshold: ecfg.DivergenceThreshold,
	})
	if err != nil {
		return err
	}

	initial := mcmc.NewState(exp.InitialPosition(), pot)
	model := tui.NewModel(kernel, mcmc.NewKey(ecfg.Seed), initial, targetName, stepsPerFrm)

	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1.0
	}
	return v
}
