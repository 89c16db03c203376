package main

import (
	"testing"

	"github.com/san-kum/articulate/internal/config"
	"github.com/spf13/cobra"
)

func newRunFlags() *cobra.Command {
	cmd := &cobra.Command{Use: "run"}
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "")
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "")
	cmd.Flags().Float64Var(&projectTol, "project-tol", config.DefaultProjectTol, "")
	cmd.Flags().IntVar(&projectEvery, "project-every", 0, "")
	cmd.Flags().IntVar(&reactionBody, "reaction-body", 1, "")
	return cmd
}

func TestApplyConfigKeepsExplicitFlags(t *testing.T) {
	cmd := newRunFlags()
	if err := cmd.Flags().Set("dt", "0.25"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("integrator", "semieuler"); err != nil {
		t.Fatal(err)
	}

	applyConfig(cmd, &config.Config{
		Dt: 0.001, Duration: 3.5, Integrator: "euler",
		ProjectTol: 1e-8, ProjectEvery: 4, ReactionBody: 2,
	})

	if dt != 0.25 {
		t.Errorf("dt = %v, want the explicit 0.25", dt)
	}
	if integrator != "semieuler" {
		t.Errorf("integrator = %q, want the explicit semieuler", integrator)
	}
	if duration != 3.5 {
		t.Errorf("duration = %v, want 3.5 from config", duration)
	}
	if projectTol != 1e-8 || projectEvery != 4 || reactionBody != 2 {
		t.Errorf("projection options = (%v, %d, %d), want config values", projectTol, projectEvery, reactionBody)
	}
}

func TestApplyConfigFillsUnsetFlags(t *testing.T) {
	cmd := newRunFlags()
	applyConfig(cmd, &config.Config{Dt: 0.002, Duration: 1.5, Integrator: "rk4"})
	if dt != 0.002 || duration != 1.5 || integrator != "rk4" {
		t.Errorf("got (%v, %v, %q), want config values", dt, duration, integrator)
	}
}
