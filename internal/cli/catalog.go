package cli

import (
	"fmt"
	"sort"
	"strings"

	vitrine "github.com/vitrinehq/vitrine"
	"github.com/vitrinehq/vitrine/internal/presentation/tui"
	"github.com/vitrinehq/vitrine/pkg/domain"
)

// CatalogMarkdown renders the engine's full registry contents as a
// markdown document.
func CatalogMarkdown(engine *vitrine.Engine) string {
	var b strings.Builder
	b.WriteString("# Vitrine catalog\n\n")

	section := func(title string, ids []string, meta func(string) (domain.Meta, bool)) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		if len(ids) == 0 {
			b.WriteString("_none registered_\n\n")
			return
		}
		for _, id := range ids {
			m, _ := meta(id)
			if m.Name != "" {
				fmt.Fprintf(&b, "- **%s** — %s", id, m.Name)
			} else {
				fmt.Fprintf(&b, "- **%s**", id)
			}
			if m.Description != "" {
				fmt.Fprintf(&b, ": %s", m.Description)
			}
			b.WriteString("\n")
			names := make([]string, 0, len(m.Settings))
			for name := range m.Settings {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				spec := m.Settings[name]
				fmt.Fprintf(&b, "  - `%s` (%s, default %v)\n", name, spec.Type, spec.Default)
			}
		}
		b.WriteString("\n")
	}

	section("Experiences", engine.Experiences().IDs(), engine.Experiences().Meta)
	section("Transitions", engine.Transitions().IDs(), engine.Transitions().Meta)
	section("Behaviours", engine.Behaviours().IDs(), engine.Behaviours().Meta)
	section("Decorators", engine.Decorators().IDs(), engine.Decorators().Meta)
	section("Modes", engine.Modes().IDs(), engine.Modes().Meta)

	return b.String()
}

// PrintCatalog writes the catalog to stdout, glamour-rendered on a TTY
// and as plain markdown otherwise.
func PrintCatalog(engine *vitrine.Engine) {
	markdown := CatalogMarkdown(engine)
	if !IsTerminal() {
		fmt.Print(markdown)
		return
	}

	render := tui.NewRenderer()
	out, err := render(markdown)
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
