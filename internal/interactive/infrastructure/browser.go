package infrastructure

import (
	"path/filepath"

	"github.com/pkg/browser"
)

// BrowserOpener ouvre un fichier local dans le navigateur par défaut
type BrowserOpener struct{}

// Open délègue à pkg/browser
func (BrowserOpener) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	return browser.OpenFile(abs)
}
