package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/modforge-labs/modforge/internal/generator"
)

// styles renders command output for one writer. Writers that are not a
// terminal get plain text.
type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	added   lipgloss.Style
	updated lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		label:   r.NewStyle().Bold(true),
		added:   r.NewStyle().Foreground(lipgloss.Color("46")),
		updated: r.NewStyle().Foreground(lipgloss.Color("214")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("240")),
		ok:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
	}
}

func printSummary(w io.Writer, s *generator.Summary) {
	st := newStyles(w)

	title := fmt.Sprintf("Generated %d module(s)", s.Modules)
	if s.DryRun {
		title = fmt.Sprintf("Dry run: would generate %d module(s)", s.Modules)
	}
	fmt.Fprintln(w, st.title.Render(title))

	if len(s.Files) > 0 {
		fmt.Fprintln(w, st.label.Render("Files:"))
		for _, f := range s.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}

	for _, name := range s.Inserted {
		fmt.Fprintf(w, "  %s %s\n", st.added.Render("+"), name)
	}
	for _, name := range s.Updated {
		fmt.Fprintf(w, "  %s %s\n", st.updated.Render("~"), name)
	}

	if s.Version != "" {
		fmt.Fprintf(w, "%s %s\n", st.label.Render("Version:"), s.Version)
	}

	switch {
	case !s.ManifestChanged:
		fmt.Fprintln(w, st.muted.Render("Manifest unchanged: "+s.ManifestPath))
	case s.DryRun:
		fmt.Fprintln(w, st.muted.Render("Manifest would be updated: "+s.ManifestPath))
	default:
		fmt.Fprintln(w, st.ok.Render("Manifest updated: "+s.ManifestPath))
	}
}
