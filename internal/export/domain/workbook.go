package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"otpreport/internal/shared/domain"
)

// Limites imposées par le format XLSX
const (
	MaxSheetNameLength = 31
	MinColumnWidth     = 10
)

// Échelle trois couleurs appliquée aux colonnes numériques (min / médiane / max)
const (
	ScaleMinColor = "#AA0000"
	ScaleMidColor = "#FFFF00"
	ScaleMaxColor = "#00AA00"
	ScaleMidPct   = "50"
)

var (
	ErrInvalidSheetName   = errors.New("invalid sheet name")
	ErrDuplicateSheetName = errors.New("duplicate sheet name")
	ErrEmptyWorkbook      = errors.New("workbook has no sheet")
)

// Sheet une feuille: nom + table typée
type Sheet struct {
	Name  string
	Table *domain.Table
}

// Workbook liste ordonnée de feuilles à exporter
type Workbook struct {
	sheets    []Sheet
	createdAt time.Time
}

// NewWorkbook crée un classeur vide daté de createdAt (nom de fichier)
func NewWorkbook(createdAt time.Time) *Workbook {
	return &Workbook{createdAt: createdAt}
}

// AddSheet ajoute une feuille avec validation du nom (unique, 31 caractères max)
func (w *Workbook) AddSheet(name string, table *domain.Table) error {
	if err := validateSheetName(name); err != nil {
		return err
	}
	if table == nil {
		return fmt.Errorf("sheet %q: %w", name, domain.ErrNoData)
	}
	for _, s := range w.sheets {
		if strings.EqualFold(s.Name, name) {
			return fmt.Errorf("%w: %q", ErrDuplicateSheetName, name)
		}
	}

	w.sheets = append(w.sheets, Sheet{Name: name, Table: table})
	return nil
}

func validateSheetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSheetName)
	}
	if utf8.RuneCountInString(name) > MaxSheetNameLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidSheetName, name, MaxSheetNameLength)
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return fmt.Errorf("%w: %q", ErrInvalidSheetName, name)
	}
	return nil
}

// Sheets retourne les feuilles dans l'ordre d'ajout
func (w *Workbook) Sheets() []Sheet {
	return w.sheets
}

// SheetCount nombre de feuilles
func (w *Workbook) SheetCount() int {
	return len(w.sheets)
}

// RowCount total des lignes de données (hors en-têtes)
func (w *Workbook) RowCount() int {
	n := 0
	for _, s := range w.sheets {
		n += s.Table.Len()
	}
	return n
}

// CreatedAt retourne la date de création
func (w *Workbook) CreatedAt() time.Time {
	return w.createdAt
}

// FileName report_<YYYYMMDD_HHMM>.xlsx
func (w *Workbook) FileName() string {
	return ReportFileName(w.createdAt)
}

// ReportFileName nom de fichier horodaté à la minute
func ReportFileName(t time.Time) string {
	return fmt.Sprintf("report_%s.xlsx", t.Format("20060102_1504"))
}

// ReportBaseName nom sans extension, utilisé pour le répertoire parquet
func ReportBaseName(t time.Time) string {
	return strings.TrimSuffix(ReportFileName(t), ".xlsx")
}

// ColumnWidth largeur d'une colonne: max(10, longueur de l'en-tête + 2)
func ColumnWidth(header string) float64 {
	return float64(max(MinColumnWidth, utf8.RuneCountInString(header)+2))
}

// ColumnLetter nom de colonne tableur (1 -> A, 27 -> AA)
func ColumnLetter(n int) string {
	var s []byte
	for n > 0 {
		n--
		s = append([]byte{byte('A' + n%26)}, s...)
		n /= 26
	}
	return string(s)
}

// UsedRange plage couverte par l'en-tête et les lignes, ex. A1:C4
func UsedRange(columns, rows int) string {
	return fmt.Sprintf("A1:%s%d", ColumnLetter(columns), rows+1)
}

// DataRange lignes de données d'une colonne, ex. B2:B4. ok=false sans données.
func DataRange(col, rows int) (string, bool) {
	if rows <= 0 {
		return "", false
	}
	letter := ColumnLetter(col)
	return fmt.Sprintf("%s2:%s%d", letter, letter, rows+1), true
}
