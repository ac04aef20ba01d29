// Package graph renders a resolved experience as a Mermaid diagram, so a
// configuration stack can be inspected visually before it ships.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart for one resolved experience.
// Semantic shapes:
// - Experience: ((Circle))
// - Transition: [[Subroutine]]
// - Section: [/Parallelogram/]
// - Behaviour: [Rectangle]
// Behaviour options are annotated on the edge into the behaviour node.
func GenerateMermaid(resolved domain.ResolvedExperience) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	expID := sanitizeMermaidID(resolved.ExperienceID)
	label := resolved.ExperienceID
	if resolved.Pending {
		label += " (pending)"
	}
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", expID, label))

	if resolved.Transition.TransitionID != "" {
		transID := "transition_" + sanitizeMermaidID(resolved.Transition.TransitionID)
		sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", transID, resolved.Transition.TransitionID))
		sb.WriteString(fmt.Sprintf("    %s -. transition .-> %s\n", expID, transID))
	}

	sections := make([]string, 0, len(resolved.SectionBehaviours))
	for section := range resolved.SectionBehaviours {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	for _, section := range sections {
		sectionID := "section_" + sanitizeMermaidID(section)
		sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", sectionID, section))
		sb.WriteString(fmt.Sprintf("    %s --> %s\n", expID, sectionID))

		for i, bc := range resolved.SectionBehaviours[section] {
			behaviourID := fmt.Sprintf("%s_b%d", sectionID, i)
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", behaviourID, bc.ID))

			arrow := "-->"
			if opts := formatOptions(bc.Options); opts != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", opts)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", sectionID, arrow, behaviourID))
		}
	}

	return sb.String()
}

func formatOptions(options map[string]any) string {
	if len(options) == 0 {
		return ""
	}
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		// Escape double quotes for Mermaid labels.
		v := strings.ReplaceAll(fmt.Sprintf("%v", options[k]), "\"", "'")
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	return strings.Join(parts, ", ")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "*", "all")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
