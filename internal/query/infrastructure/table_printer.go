package infrastructure

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"otpreport/internal/shared/domain"
)

// TablePrinter affiche une table encadrée sur la console
type TablePrinter struct {
	w io.Writer
}

// NewTablePrinter crée un printer qui écrit sur w
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{w: w}
}

// Print affiche l'en-tête et au plus limit lignes
func (p *TablePrinter) Print(t *domain.Table, limit int) {
	tw := tablewriter.NewWriter(p.w)
	tw.SetAutoWrapText(false)
	tw.SetAutoFormatHeaders(false)

	header := make([]string, len(t.Columns()))
	for i, c := range t.Columns() {
		header[i] = c.Name
	}
	tw.SetHeader(header)

	for i, row := range t.Rows() {
		if i >= limit {
			break
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatCell(v)
		}
		tw.Append(cells)
	}

	tw.Render()
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
