/*
Package domain contains the core domain models for the Vitrine engine.

It defines the fundamental entities of the experience layer: behaviours,
decorators, transitions, experiences and the signal snapshot that flows
between them. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Behaviour: a pure signal-state -> CSS-variable computation.
  - Decorator: a named bundle of event wiring + behaviour stacks applied
    to a widget by reference.
  - Transition: an entry/exit animation with declarative initial and final
    style states.
  - Experience: the resolved bundle of behaviour assignments and
    presentation config active for a page.
  - Snapshot: the point-in-time view of the shared signal store.
*/
package domain
