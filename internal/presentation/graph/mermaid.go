package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/kinetree/pkg/kinematic"
)

// Overlay marks links to emphasize on the diagram.
type Overlay struct {
	// Highlight lists links by display name; a name matching no link is ignored.
	Highlight []string
}

// GenerateMermaid produces a top-down Mermaid flowchart of a robot.
// Shapes carry meaning:
// - Root link: ((Circle))
// - Link without inertial (frame only): [/Parallelogram/]
// - Default: [Rectangle]
// Fixed joints are drawn dotted, moving joints solid and labelled with
// their type.
func GenerateMermaid(o kinematic.Overview, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[string]string, len(o.Links))
	for i, l := range o.Links {
		id := fmt.Sprintf("L%d", i)
		ids[l.Name] = id

		opener, closer := "[", "]"
		switch {
		case l.Name == o.Root:
			opener, closer = "((", "))"
		case l.Mass == nil:
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, escapeLabel(l.Name), closer)
	}

	for _, j := range o.Joints {
		from, to := ids[j.Parent], ids[j.Child]
		label := escapeLabel(j.Name)
		if j.Type == "fixed" {
			fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", from, label, to)
			continue
		}
		fmt.Fprintf(&sb, "    %s -- \"%s <br/> %s\" --> %s\n", from, label, j.Type, to)
	}

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast on either theme.
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Highlight {
			id, ok := ids[name]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s highlight;\n", id)
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
