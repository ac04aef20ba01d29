package ports

import "github.com/vitrinehq/vitrine/pkg/domain"

// VariableSink receives the declarative output of behaviour evaluation:
// CSS custom properties scoped to a target element or section. The
// renderer applies them; the core never touches the DOM.
type VariableSink interface {
	ApplyVars(target string, vars domain.Vars)
}

// StyleSink receives imperative style writes from transition drivers:
// style snapshots in timeline mode, class toggles in CSS mode.
type StyleSink interface {
	ApplyStyle(target string, style domain.StyleState)
	SetClass(target, class string, active bool)
}

// VariableSinkFunc adapts a function to the VariableSink interface.
type VariableSinkFunc func(target string, vars domain.Vars)

func (f VariableSinkFunc) ApplyVars(target string, vars domain.Vars) { f(target, vars) }
