package infrastructure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"otpreport/internal/export/domain"
	shareddomain "otpreport/internal/shared/domain"
)

// ExcelWriter écrit un classeur en deux passes: données, puis mise en forme
// sur le fichier rouvert.
type ExcelWriter struct{}

// NewExcelWriter crée le writer XLSX
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// Write crée path avec une feuille par table puis applique la mise en forme
func (w *ExcelWriter) Write(path string, wb *domain.Workbook) error {
	if wb.SheetCount() == 0 {
		return domain.ErrEmptyWorkbook
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	if err := writeData(path, wb); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	if err := applyFormatting(path, wb); err != nil {
		return fmt.Errorf("format workbook: %w", err)
	}
	return nil
}

// writeData première passe: en-têtes + lignes
func writeData(path string, wb *domain.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range wb.Sheets() {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}

		header := make([]interface{}, len(sheet.Table.Columns()))
		for j, col := range sheet.Table.Columns() {
			header[j] = col.Name
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return err
		}

		for r, row := range sheet.Table.Rows() {
			values := append([]interface{}(nil), row...)
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				return fmt.Errorf("sheet %s row %d: %w", sheet.Name, r+1, err)
			}
		}
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

// applyFormatting seconde passe sur le fichier rouvert: volets figés en B2,
// filtre automatique, largeurs, échelle de couleurs sur les colonnes numériques
// qui ont au moins une valeur
func applyFormatting(path string, wb *domain.Workbook) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, sheet := range wb.Sheets() {
		columns := sheet.Table.Columns()
		rows := sheet.Table.Len()

		if err := f.SetPanes(sheet.Name, &excelize.Panes{
			Freeze:      true,
			XSplit:      1,
			YSplit:      1,
			TopLeftCell: "B2",
			ActivePane:  "bottomRight",
		}); err != nil {
			return fmt.Errorf("sheet %s panes: %w", sheet.Name, err)
		}

		if len(columns) > 0 {
			if err := f.AutoFilter(sheet.Name, domain.UsedRange(len(columns), rows), nil); err != nil {
				return fmt.Errorf("sheet %s autofilter: %w", sheet.Name, err)
			}
		}

		for i, col := range columns {
			letter := domain.ColumnLetter(i + 1)
			if err := f.SetColWidth(sheet.Name, letter, letter, domain.ColumnWidth(col.Name)); err != nil {
				return fmt.Errorf("sheet %s width %s: %w", sheet.Name, letter, err)
			}

			if !col.Type.IsNumeric() {
				continue
			}
			// colonne entièrement NULL: rien à colorer
			if _, err := sheet.Table.Summarize(i); errors.Is(err, shareddomain.ErrNoData) {
				continue
			} else if err != nil {
				return fmt.Errorf("sheet %s column %s: %w", sheet.Name, col.Name, err)
			}
			ref, ok := domain.DataRange(i+1, rows)
			if !ok {
				continue
			}
			if err := f.SetConditionalFormat(sheet.Name, ref, []excelize.ConditionalFormatOptions{colorScale()}); err != nil {
				return fmt.Errorf("sheet %s color scale %s: %w", sheet.Name, ref, err)
			}
		}
	}

	return f.Save()
}

func colorScale() excelize.ConditionalFormatOptions {
	return excelize.ConditionalFormatOptions{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MidType:  "percentile",
		MidValue: domain.ScaleMidPct,
		MaxType:  "max",
		MinColor: domain.ScaleMinColor,
		MidColor: domain.ScaleMidColor,
		MaxColor: domain.ScaleMaxColor,
	}
}
