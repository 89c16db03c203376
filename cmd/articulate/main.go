package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/san-kum/articulate/internal/config"
	"github.com/san-kum/articulate/internal/integrate"
	"github.com/san-kum/articulate/internal/mbody"
	"github.com/san-kum/articulate/internal/metrics"
	"github.com/san-kum/articulate/internal/scenario"
	"github.com/san-kum/articulate/internal/sim"
	"github.com/san-kum/articulate/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dt           float64
	duration     float64
	integrator   string
	projectTol   float64
	projectEvery int
	reactionBody int
	configFile   string
	preset       string
	plotHeight   int
	frameRate    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "articulate",
		Short: "articulated-body dynamics lab",
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator (euler, semieuler, rk4)")
	runCmd.Flags().Float64Var(&projectTol, "project-tol", config.DefaultProjectTol, "constraint projection tolerance (0 disables)")
	runCmd.Flags().IntVar(&projectEvery, "project-every", 0, "project every N steps (0 = every step)")
	runCmd.Flags().IntVar(&reactionBody, "reaction-body", 1, "body whose mobilizer reaction is tracked")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&plotHeight, "plot-height", 10, "reaction plot height (0 disables)")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, name := range scenario.Names() {
				fmt.Fprintf(w, "%s\t%s\n", name, scenario.Describe(name))
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	reactionsCmd := &cobra.Command{
		Use:   "reactions [scenario]",
		Short: "print mobilizer reaction forces at the initial state",
		Args:  cobra.ExactArgs(1),
		RunE:  printReactions,
	}
	reactionsCmd.Flags().Float64Var(&projectTol, "project-tol", config.DefaultProjectTol, "constraint projection tolerance (0 disables)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	liveCmd.Flags().Float64Var(&projectTol, "project-tol", config.DefaultProjectTol, "constraint projection tolerance (0 disables)")
	liveCmd.Flags().IntVar(&reactionBody, "reaction-body", 1, "body whose mobilizer reaction is shown")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(runCmd, scenariosCmd, presetsCmd, reactionsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name := args[0]

	// Explicitly set flags win over both preset and config file values.
	if preset != "" {
		cfg := config.GetPreset(name, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		applyConfig(cmd, cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyConfig(cmd, cfg)
	}

	sys, st, err := scenario.Build(name)
	if err != nil {
		return err
	}
	stepper, err := integrate.New(integrator)
	if err != nil {
		return err
	}

	if reactionBody < 1 {
		reactionBody = 1
	}
	body := mbody.BodyIndex(reactionBody)
	if int(body) >= sys.NumBodies() {
		return fmt.Errorf("reaction body %d out of range (%d bodies)", reactionBody, sys.NumBodies())
	}

	simulator := sim.New(sys, stepper)
	simulator.AddMetric(metrics.NewEnergyDrift(sys))
	if sys.NumMultipliers() > 0 {
		simulator.AddMetric(metrics.NewConstraintViolation(sys))
	}
	peak := metrics.NewPeakReaction(sys, body)
	simulator.AddMetric(peak)

	var forceTrace []float64
	simulator.AddObserver(observerFunc(func(s *mbody.State, t float64) {
		r := sys.CalcMobilizerReactionForces(s)[body]
		forceTrace = append(forceTrace, r.Lin.Norm())
	}))

	fmt.Printf("running %s simulation...\n", name)
	start := time.Now()

	result, err := simulator.Run(context.Background(), st, sim.Config{
		Dt:            dt,
		Duration:      duration,
		ProjectTol:    projectTol,
		ProjectEvery:  projectEvery,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for name, val := range result.Metrics {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, val)
	}
	fmt.Fprintf(w, "  peak reaction torque\t%.6f\n", peak.PeakTorque())
	if err := w.Flush(); err != nil {
		return err
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	if plotHeight > 0 {
		fmt.Println()
		caption := fmt.Sprintf("|reaction force| at body %d (N)", body)
		fmt.Println(viz.Plot(forceTrace, caption, plotHeight))
	}
	return nil
}

func printReactions(cmd *cobra.Command, args []string) error {
	sys, st, err := scenario.Build(args[0])
	if err != nil {
		return err
	}
	if projectTol > 0 && sys.NumMultipliers() > 0 {
		if err := sys.Project(st, projectTol); err != nil {
			return err
		}
	}
	if err := st.Realize(mbody.StageAcceleration); err != nil {
		return err
	}

	reactions := sys.CalcMobilizerReactionForces(st)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tJOINT\tFORCE (N)\tTORQUE (N·m)")
	for b := 1; b < sys.NumBodies(); b++ {
		r := reactions[b]
		fmt.Fprintf(w, "%d\t%s\t(%.4f, %.4f, %.4f)\t(%.4f, %.4f, %.4f)\n",
			b, sys.Body(mbody.BodyIndex(b)).Joint().Name(),
			r.Lin.X, r.Lin.Y, r.Lin.Z,
			r.Ang.X, r.Ang.Y, r.Ang.Z,
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	name := args[0]
	sys, st, err := scenario.Build(name)
	if err != nil {
		return err
	}
	stepper, err := integrate.New(integrator)
	if err != nil {
		return err
	}
	if projectTol > 0 && sys.NumMultipliers() > 0 {
		if err := sys.Project(st, projectTol); err != nil {
			return err
		}
	}
	tol := projectTol
	if sys.NumMultipliers() == 0 {
		tol = 0
	}
	return viz.RunLive(sys, st, stepper, viz.LiveOptions{
		Dt:           dt,
		ProjectTol:   tol,
		ReactionBody: mbody.BodyIndex(reactionBody),
		FrameRate:    frameRate,
		Title:        name,
	})
}

// applyConfig copies cfg into the run options, skipping any flag the
// user set explicitly on the command line.
func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("integrator") {
		integrator = cfg.Integrator
	}
	if !cmd.Flags().Changed("project-tol") {
		projectTol = cfg.ProjectTol
	}
	if !cmd.Flags().Changed("project-every") {
		projectEvery = cfg.ProjectEvery
	}
	if !cmd.Flags().Changed("reaction-body") {
		reactionBody = cfg.ReactionBody
	}
}

type observerFunc func(st *mbody.State, t float64)

func (f observerFunc) OnStep(st *mbody.State, t float64) { f(st, t) }
