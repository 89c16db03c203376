package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/articulate/internal/integrate"
	"github.com/san-kum/articulate/internal/mbody"
)

// Simulator drives a multibody system through time with a fixed-step
// integrator, projecting constraint drift out as configured.
type Simulator struct {
	sys       *mbody.System
	stepper   integrate.Stepper
	metrics   []Metric
	observers []Observer
}

func New(sys *mbody.System, stepper integrate.Stepper) *Simulator {
	return &Simulator{
		sys:       sys,
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances st in place for the configured duration and returns the
// recorded trajectory. The state is left at the final time.
func (s *Simulator) Run(ctx context.Context, st *mbody.State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Q:       make([][]float64, 0, steps+1),
		U:       make([][]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	if cfg.ProjectTol > 0 {
		if err := s.sys.Project(st, cfg.ProjectTol); err != nil {
			return nil, err
		}
	}
	if err := st.Realize(mbody.StageAcceleration); err != nil {
		return nil, err
	}
	initialEnergy := st.KineticEnergy() + s.sys.PotentialEnergy(st)

	t := 0.0
	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := st.Realize(mbody.StageAcceleration); err != nil {
			return result, err
		}
		for _, m := range s.metrics {
			m.Observe(st, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(st, t)
		}
		result.Times = append(result.Times, t)
		result.Q = append(result.Q, st.Q())
		result.U = append(result.U, st.U())
		if i == steps {
			break
		}

		if err := s.stepper.Step(s.sys, st, cfg.Dt); err != nil {
			return result, err
		}
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ProjectTol > 0 && (cfg.ProjectEvery <= 1 || (i+1)%cfg.ProjectEvery == 0) {
			if err := s.sys.Project(st, cfg.ProjectTol); err != nil {
				result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: err.Error()})
			}
		}
		if cfg.ValidateState && (!validState(st.Q()) || !validState(st.U())) {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}
	}

	if err := st.Realize(mbody.StageVelocity); err != nil {
		return result, err
	}
	finalEnergy := st.KineticEnergy() + s.sys.PotentialEnergy(st)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback advances the state, handing each realized step to the
// callback; returning false from it stops the run early.
func (s *Simulator) RunWithCallback(ctx context.Context, st *mbody.State, cfg Config, callback func(st *mbody.State, t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}
	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := st.Realize(mbody.StageAcceleration); err != nil {
			return err
		}
		if !callback(st, t) {
			return nil
		}
		if err := s.stepper.Step(s.sys, st, cfg.Dt); err != nil {
			return err
		}
		if cfg.ProjectTol > 0 {
			if err := s.sys.Project(st, cfg.ProjectTol); err != nil {
				return err
			}
		}
		t += cfg.Dt
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
