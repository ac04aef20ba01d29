package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	vitrine "github.com/vitrinehq/vitrine"
	"github.com/vitrinehq/vitrine/internal/adapters/memory"
	"github.com/vitrinehq/vitrine/internal/config"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/experience"
)

// SimulateOptions configures one headless simulation run.
type SimulateOptions struct {
	// ConfigPath optionally points at a site configuration file.
	ConfigPath string
	// Page selects a page config from the file; empty runs site-level only.
	Page string
	// Experience and Transition act as a dev override when non-empty.
	Experience string
	Transition string

	// Steps is the number of scroll positions swept from top to bottom.
	Steps int
	// ReducedMotion scripts the motion preference for the whole run.
	ReducedMotion bool

	Out    io.Writer
	Logger *slog.Logger
}

// varRecorder collects every variable write keyed by target, merging
// successive patches the way a renderer would.
type varRecorder struct {
	mu   sync.Mutex
	vars map[string]domain.Vars
}

func newVarRecorder() *varRecorder {
	return &varRecorder{vars: make(map[string]domain.Vars)}
}

func (r *varRecorder) ApplyVars(target string, vars domain.Vars) {
	r.mu.Lock()
	defer r.mu.Unlock()
	merged, ok := r.vars[target]
	if !ok {
		merged = make(domain.Vars, len(vars))
		r.vars[target] = merged
	}
	for name, value := range vars {
		merged[name] = value
	}
}

func (r *varRecorder) snapshot() map[string]domain.Vars {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]domain.Vars, len(r.vars))
	for target, vars := range r.vars {
		copied := make(domain.Vars, len(vars))
		for name, value := range vars {
			copied[name] = value
		}
		out[target] = copied
	}
	return out
}

// RunSimulation activates an experience against a scripted signal feed and
// prints the variables each section would receive. It answers "what does
// this configuration actually do" without a browser attached.
func RunSimulation(ctx context.Context, opts SimulateOptions) error {
	if opts.Steps <= 0 {
		opts.Steps = 10
	}
	if opts.Logger == nil {
		opts.Logger = NewLogger(false)
	}

	feed := memory.NewSignalFeed()
	feed.SetViewportHeight(900)
	feed.SetReducedMotion(opts.ReducedMotion)

	engine := vitrine.New(
		vitrine.WithLogger(opts.Logger),
		vitrine.WithSignalSources(feed.Sources()),
	)

	var in experience.Inputs
	if opts.ConfigPath != "" {
		file, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		in.Site = file.Site
		if opts.Page != "" {
			in.Page = file.Page(opts.Page)
		}
	}
	if opts.Experience != "" || opts.Transition != "" {
		in.Dev = &domain.DevOverride{
			Experience: opts.Experience,
			Transition: opts.Transition,
		}
	}

	sink := newVarRecorder()
	activation, err := engine.Activate(ctx, in, sink)
	if err != nil {
		return fmt.Errorf("activation failed: %w", err)
	}
	defer activation.Stop()

	fmt.Fprintf(opts.Out, "experience: %s (mode %s)\n", activation.Resolved.ExperienceID, activation.Resolved.Mode)
	fmt.Fprintf(opts.Out, "transition: %s\n", activation.Resolved.Transition.TransitionID)

	sections := make([]string, 0, len(activation.Resolved.SectionBehaviours))
	for section := range activation.Resolved.SectionBehaviours {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	fmt.Fprintf(opts.Out, "sections: %s\n\n", strings.Join(sections, ", "))

	// Sweep the page top to bottom, moving the pointer diagonally across
	// the viewport. Step pacing stays above the cursor throttle so every
	// sample lands.
	const contentHeight, viewportHeight = 4000.0, 900.0
	maxOffset := contentHeight - viewportHeight
	for i := 0; i <= opts.Steps; i++ {
		fraction := float64(i) / float64(opts.Steps)
		feed.EmitScroll(fraction*maxOffset, contentHeight, viewportHeight)
		feed.EmitPointer(fraction*1440, fraction*viewportHeight)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}

	final := sink.snapshot()
	targets := make([]string, 0, len(final))
	for target := range final {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		fmt.Fprintf(opts.Out, "[%s]\n", target)
		vars := final[target]
		names := make([]string, 0, len(vars))
		for name := range vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(opts.Out, "  %s: %s\n", name, vars[name])
		}
	}
	if len(targets) == 0 {
		fmt.Fprintln(opts.Out, "no variables emitted (no behaviours bound)")
	}

	return nil
}
