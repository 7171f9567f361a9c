package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/love-os/teamgrav/internal/config"
	"github.com/love-os/teamgrav/internal/gravity"
	"github.com/love-os/teamgrav/internal/optimize"
	"github.com/love-os/teamgrav/internal/report"
	"github.com/love-os/teamgrav/internal/storage"
	"github.com/love-os/teamgrav/internal/stress"
	"github.com/love-os/teamgrav/internal/team"
	"github.com/love-os/teamgrav/internal/viz"
)

var (
	dataDir    string
	kappa      float64
	epsilon    float64
	coverage   float64
	configFile string
	preset     string
	saveRun    bool
	seed       int64
	iterations int
	noiseScale float64
	budget     float64
	step       float64
)

// main registers the teamgrav command tree and executes it, exiting
// with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "teamgrav",
		Short: "team gravity and stability analysis",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".teamgrav", "data directory")
	rootCmd.PersistentFlags().Float64Var(&kappa, "kappa", gravity.DefaultKappa, "binding constant")
	rootCmd.PersistentFlags().Float64Var(&epsilon, "epsilon", gravity.DefaultEpsilon, "gravity denominator guard")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [team.yaml]",
		Short: "run the full three-layer analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().Float64Var(&coverage, "coverage", config.DefaultCoverage, "binding energy coverage for edge pruning")
	analyzeCmd.Flags().BoolVar(&saveRun, "save", false, "save the run to the data directory")

	graphCmd := &cobra.Command{
		Use:   "graph [team.yaml]",
		Short: "print the pruned gravity graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runGraph,
	}
	graphCmd.Flags().Float64Var(&coverage, "coverage", config.DefaultCoverage, "binding energy coverage for edge pruning")

	stressCmd := &cobra.Command{
		Use:   "stress [team.yaml]",
		Short: "monte carlo and worst-case stress testing",
		Args:  cobra.ExactArgs(1),
		RunE:  runStress,
	}
	stressCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	stressCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "monte carlo iterations")
	stressCmd.Flags().Float64Var(&noiseScale, "noise", config.DefaultNoiseScale, "noise scale")

	suggestCmd := &cobra.Command{
		Use:   "suggest [team.yaml]",
		Short: "greedy intervention suggestions",
		Args:  cobra.ExactArgs(1),
		RunE:  runSuggest,
	}
	suggestCmd.Flags().Float64Var(&budget, "budget", config.DefaultBudget, "intervention budget")
	suggestCmd.Flags().Float64Var(&step, "step", config.DefaultStep, "intervention step size")

	plotCmd := &cobra.Command{
		Use:   "plot [team.yaml]",
		Short: "plot the gravity profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	dashboardCmd := &cobra.Command{
		Use:   "dashboard [team.yaml]",
		Short: "interactive what-if dashboard",
		Args:  cobra.ExactArgs(1),
		RunE:  runDashboard,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  runList,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available constant presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s kappa=%g epsilon=%g\n", name, cfg.Kappa, cfg.Epsilon)
			}
		},
	}

	rootCmd.AddCommand(analyzeCmd, graphCmd, stressCmd, suggestCmd, plotCmd, dashboardCmd, listCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file, and explicit flags, with
// flags winning (same precedence the flag resolution uses elsewhere).
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

	flags := cmd.Flags()
	if flags.Changed("kappa") {
		cfg.Kappa = kappa
	}
	if flags.Changed("epsilon") {
		cfg.Epsilon = epsilon
	}
	if flags.Changed("coverage") {
		cfg.Coverage = coverage
	}
	if flags.Changed("iterations") {
		cfg.Stress.Iterations = iterations
	}
	if flags.Changed("noise") {
		cfg.Stress.NoiseScale = noiseScale
	}
	if flags.Changed("budget") {
		cfg.Suggest.Budget = budget
	}
	if flags.Changed("step") {
		cfg.Suggest.Step = step
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	snap, err := team.Load(args[0])
	if err != nil {
		return err
	}

	m, err := gravity.Analyze(snap, cfg.Params())
	if err != nil {
		return err
	}
	rep, err := report.Build(snap.Name(), m, cfg.Coverage)
	if err != nil {
		return err
	}

	fmt.Println(viz.RenderSummary(rep))
	fmt.Println(viz.RenderSensitivities(rep.Sensitivities))
	fmt.Println()
	fmt.Println(viz.GravityProfile(m))

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(snap.Name(), m, rep.Graph)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func runGraph(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	snap, err := team.Load(args[0])
	if err != nil {
		return err
	}

	m, err := gravity.Analyze(snap, cfg.Params())
	if err != nil {
		return err
	}
	g, err := report.Prune(m, cfg.Coverage)
	if err != nil {
		return err
	}
	return g.WriteJSON(os.Stdout)
}

func runStress(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	snap, err := team.Load(args[0])
	if err != nil {
		return err
	}

	mc, err := stress.MonteCarlo(snap, cfg.Params(), cfg.Stress.Iterations, cfg.Stress.NoiseScale, seed)
	if err != nil {
		return err
	}
	fmt.Printf("monte carlo (n=%d, noise=%.2f)\n", mc.Iterations, cfg.Stress.NoiseScale)
	fmt.Printf("  instability probability: %.2f%%\n", mc.UnstableProbability*100)
	fmt.Printf("  mean margin:             %.4f\n", mc.MeanMargin)
	fmt.Printf("  min margin:              %.4f\n", mc.MinMargin)
	fmt.Printf("  5th percentile:          %.4f\n\n", mc.Percentile5)

	scenarios, err := stress.WorstCase(snap, cfg.Params())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tDESCRIPTION\tMARGIN DROP\tNEW MARGIN")
	for _, sc := range scenarios {
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\n", sc.Name, sc.Description, sc.MarginDrop, sc.NewMargin)
	}
	return w.Flush()
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	snap, err := team.Load(args[0])
	if err != nil {
		return err
	}

	m, err := gravity.Analyze(snap, cfg.Params())
	if err != nil {
		return err
	}
	moves := optimize.Suggest(m, optimize.UnitCosts(), cfg.Suggest.Budget, cfg.Suggest.Step)
	if len(moves) == 0 {
		fmt.Println("no affordable interventions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MOVE\tTARGET\tGAIN\tCOST\tROI")
	for _, mv := range moves {
		target := mv.Target
		if mv.Other != "" {
			target = mv.Target + "-" + mv.Other
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.2f\n", mv.Kind, target, mv.Gain, mv.Cost, mv.ROI)
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	snap, err := team.Load(args[0])
	if err != nil {
		return err
	}
	m, err := gravity.Analyze(snap, cfg.Params())
	if err != nil {
		return err
	}
	fmt.Println(viz.GravityProfile(m))
	return nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	snap, err := team.Load(args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewDashboard(snap, cfg.Params()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
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
	fmt.Fprintln(w, "ID\tTEAM\tTIME\tK\tD\tM\tTGI\tSTABLE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.3f\t%v\n",
			run.ID, run.Team, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.K, run.D, run.M, run.TGI, run.Stable)
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	g, err := st.LoadGraph(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta  *storage.RunMetadata `json:"meta"`
		Graph *report.Graph        `json:"graph"`
	}{meta, g}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
