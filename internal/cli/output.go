package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/aretw0/kinetree/internal/presentation/tui"
	"github.com/aretw0/kinetree/pkg/kinematic"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// WriteOutput writes data to path, or to w when path is empty or "-".
func WriteOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// PrintOverview writes the markdown summary of a tree, styled by glamour
// when w is a terminal and raw otherwise.
func PrintOverview(w io.Writer, o kinematic.Overview) error {
	md := tui.OverviewMarkdown(o)
	if IsTerminal(w) {
		rendered, err := tui.NewRenderer()(md)
		if err == nil {
			md = rendered
		}
	}
	_, err := io.WriteString(w, md)
	return err
}
