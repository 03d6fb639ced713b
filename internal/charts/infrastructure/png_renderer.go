package infrastructure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"
)

// PNGRenderer rend les graphiques statiques en PNG.
// Camembert et barres verticales passent par go-chart, le reste par gonum/plot.
type PNGRenderer struct {
	Width  int
	Height int
}

// NewPNGRenderer 1000x600 px, l'équivalent d'une figure 10x6 pouces
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Width: 1000, Height: 600}
}

// size dimensions gonum, vgimg travaille à 96 dpi
func (r *PNGRenderer) size() (vg.Length, vg.Length) {
	return vg.Length(r.Width) * vg.Inch / 96, vg.Length(r.Height) * vg.Inch / 96
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	return nil
}

// writeFile crée path (en écrasant, répertoire parent compris) et y rend l'image.
// L'erreur de fermeture est remontée: un PNG tronqué ne doit pas passer pour écrit.
func writeFile(path string, render func(io.Writer) error) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	return render(f)
}
