package domain

import (
	"errors"
	"strings"
)

// PreviewRows lignes affichées par requête
const PreviewRows = 10

// ErrNoStatements fichier sans aucune requête exploitable
var ErrNoStatements = errors.New("no SQL statements found")

// SplitStatements découpe un script sur ';', supprime les blancs et les requêtes vides.
// Les ';' dans les littéraux ou commentaires ne sont pas gérés.
func SplitStatements(script string) []string {
	parts := strings.Split(script, ";")
	statements := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			statements = append(statements, s)
		}
	}
	return statements
}

// Preview nombre de lignes affichées et lignes masquées pour total lignes
func Preview(total int) (shown, hidden int) {
	if total <= PreviewRows {
		return total, 0
	}
	return PreviewRows, total - PreviewRows
}
