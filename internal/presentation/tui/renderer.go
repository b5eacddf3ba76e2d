package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/kinematic"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return "", err }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// OverviewMarkdown describes a robot as a markdown document.
func OverviewMarkdown(o kinematic.Overview) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", o.Robot)
	fmt.Fprintf(&sb, "Root link **%s**, %d links, %d joints.\n\n", o.Root, len(o.Links), len(o.Joints))

	sb.WriteString("## Links\n\n")
	sb.WriteString("| Link | Visuals | Collisions | Mass |\n|---|---|---|---|\n")
	for _, l := range o.Links {
		m := "-"
		if l.Mass != nil {
			m = domain.FormatFloat(*l.Mass)
		}
		fmt.Fprintf(&sb, "| %s | %d | %d | %s |\n", cell(l.Name), l.Visuals, l.Collisions, m)
	}

	if len(o.Joints) > 0 {
		sb.WriteString("\n## Joints\n\n")
		sb.WriteString("| Joint | Type | Parent | Child | Axis |\n|---|---|---|---|---|\n")
		for _, j := range o.Joints {
			axis := "-"
			if j.Axis != nil {
				axis = fmt.Sprintf("%s %s %s",
					domain.FormatFloat(j.Axis[0]), domain.FormatFloat(j.Axis[1]), domain.FormatFloat(j.Axis[2]))
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", cell(j.Name), j.Type, cell(j.Parent), cell(j.Child), axis)
		}
	}

	if len(o.Materials) > 0 {
		sb.WriteString("\n## Materials\n\n")
		for _, m := range o.Materials {
			fmt.Fprintf(&sb, "- %s\n", m)
		}
	}
	if len(o.Transmissions) > 0 {
		sb.WriteString("\n## Transmissions\n\n")
		for _, tr := range o.Transmissions {
			fmt.Fprintf(&sb, "- %s\n", tr)
		}
	}
	return sb.String()
}

// cell escapes characters that would break a markdown table.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "_", `\_`)
}
