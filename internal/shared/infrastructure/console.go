package infrastructure

import (
	"fmt"
	"io"
)

// Console affiche la progression lisible du rapport (non destinée à être parsée)
type Console struct {
	w io.Writer
}

// NewConsole crée une console qui écrit sur w
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Section titre d'étape
func (c *Console) Section(title string) {
	fmt.Fprintf(c.w, "=== %s ===\n", title)
}

// ChartSaved résumé d'un graphique écrit sur disque
func (c *Console) ChartSaved(path string, rows int, title, note string) {
	fmt.Fprintf(c.w, "[OK] Saved chart: %s\n", path)
	fmt.Fprintf(c.w, "     Rows: %d\n", rows)
	fmt.Fprintf(c.w, "     Title: %s\n", title)
	fmt.Fprintf(c.w, "     Shows: %s\n\n", note)
}

// OK ligne de succès
func (c *Console) OK(format string, args ...interface{}) {
	fmt.Fprintf(c.w, "[OK] "+format+"\n", args...)
}

// Warn ligne d'avertissement
func (c *Console) Warn(format string, args ...interface{}) {
	fmt.Fprintf(c.w, "[WARN] "+format+"\n", args...)
}

// Fail ligne d'échec
func (c *Console) Fail(format string, args ...interface{}) {
	fmt.Fprintf(c.w, "[FAIL] "+format+"\n", args...)
}

// Println ligne libre
func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c.w, args...)
}
