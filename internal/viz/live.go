package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/articulate/internal/integrate"
	"github.com/san-kum/articulate/internal/mbody"
)

// LiveOptions configures the live terminal view.
type LiveOptions struct {
	Dt         float64
	ProjectTol float64
	// ReactionBody selects a mobilizer whose reaction is displayed;
	// 0 (Ground) disables the readout.
	ReactionBody mbody.BodyIndex
	FrameRate    int
	Title        string
}

type tickMsg time.Time

// Live is a Bubble Tea model that steps a simulation in real time and
// draws the linkage with live reaction readouts.
type Live struct {
	sys      *mbody.System
	st       *mbody.State
	initial  *mbody.State
	stepper  integrate.Stepper
	opts     LiveOptions
	skeleton *Skeleton
	t        float64
	paused   bool
	err      error
}

// NewLive builds the live view model. The state is cloned so resets
// return to the caller's initial conditions.
func NewLive(sys *mbody.System, st *mbody.State, stepper integrate.Stepper, opts LiveOptions) *Live {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 30
	}
	if opts.Dt <= 0 {
		opts.Dt = 0.001
	}
	return &Live{
		sys:      sys,
		st:       st.Clone(),
		initial:  st.Clone(),
		stepper:  stepper,
		opts:     opts,
		skeleton: NewSkeleton(sys, 60, 20),
	}
}

func (l *Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(l.opts.FrameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (l *Live) Init() tea.Cmd {
	return l.tick()
}

func (l *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.paused = !l.paused
		case "r":
			l.st = l.initial.Clone()
			l.t = 0
			l.err = nil
		}
	case tickMsg:
		if !l.paused && l.err == nil {
			frame := 1.0 / float64(l.opts.FrameRate)
			for el := 0.0; el < frame; el += l.opts.Dt {
				if err := l.stepper.Step(l.sys, l.st, l.opts.Dt); err != nil {
					l.err = err
					break
				}
				if l.opts.ProjectTol > 0 {
					if err := l.sys.Project(l.st, l.opts.ProjectTol); err != nil {
						l.err = err
						break
					}
				}
				l.t += l.opts.Dt
			}
		}
		return l, l.tick()
	}
	return l, nil
}

func (l *Live) View() string {
	if l.err != nil {
		return PanelStyle.Render(fmt.Sprintf("simulation failed: %v", l.err)) + "\n"
	}
	if err := l.st.Realize(mbody.StageAcceleration); err != nil {
		return PanelStyle.Render(fmt.Sprintf("realize failed: %v", err)) + "\n"
	}

	status := StatusRunning.Render("running")
	if l.paused {
		status = StatusPaused.Render("paused")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TitleStyle.Render(l.opts.Title), "  ", status)

	energy := l.st.KineticEnergy() + l.sys.PotentialEnergy(l.st)
	info := fmt.Sprintf("%s %s   %s %s",
		MetricLabel.Render("t"), MetricValue.Render(fmt.Sprintf("%7.3fs", l.t)),
		MetricLabel.Render("energy"), MetricValue.Render(fmt.Sprintf("%9.4f", energy)))
	if l.opts.ReactionBody != mbody.Ground {
		r := l.sys.CalcMobilizerReactionForces(l.st)[l.opts.ReactionBody]
		info += fmt.Sprintf("   %s %s",
			MetricLabel.Render("reaction |F|"),
			MetricValue.Render(fmt.Sprintf("%9.3f N", r.Lin.Norm())))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		PanelStyle.Render(l.skeleton.Render(l.st)),
		info,
		KeyHint.Render("space pause  r reset  q quit"),
	) + "\n"
}

// RunLive starts the live view and blocks until the user quits.
func RunLive(sys *mbody.System, st *mbody.State, stepper integrate.Stepper, opts LiveOptions) error {
	_, err := tea.NewProgram(NewLive(sys, st, stepper, opts)).Run()
	return err
}
