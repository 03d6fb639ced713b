package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"otpreport/internal/export/domain"
	shareddomain "otpreport/internal/shared/domain"
	sharedinfra "otpreport/internal/shared/infrastructure"
)

// ParquetWriter copie chaque feuille dans <dir>/<Sheet>.parquet
type ParquetWriter struct {
	parallel int64
	workers  int
}

// NewParquetWriter crée le writer: 4 goroutines de marshalling par fichier,
// 2 fichiers écrits en parallèle
func NewParquetWriter() *ParquetWriter {
	return &ParquetWriter{parallel: 4, workers: 2}
}

// WriteAll écrit un fichier par feuille et retourne les chemins dans l'ordre des feuilles
func (w *ParquetWriter) WriteAll(ctx context.Context, dir string, wb *domain.Workbook) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create parquet directory: %w", err)
	}

	sheets := wb.Sheets()
	paths := make([]string, len(sheets))

	pool := sharedinfra.NewWorkerPool(ctx, w.workers)
	pool.Start()
	for i, sheet := range sheets {
		path := filepath.Join(dir, sheet.Name+".parquet")
		paths[i] = path
		table := sheet.Table
		name := sheet.Name
		if err := pool.Submit(func(context.Context) error {
			if err := w.WriteTable(path, table); err != nil {
				return fmt.Errorf("sheet %s: %w", name, err)
			}
			return nil
		}); err != nil {
			_ = pool.Wait()
			return nil, err
		}
	}

	if err := pool.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// WriteTable écrit une table, colonnes OPTIONAL (NULL autorisé)
func (w *ParquetWriter) WriteTable(path string, table *shareddomain.Table) error {
	schema, err := parquetSchema(table.Columns())
	if err != nil {
		return err
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	defer fw.Close()

	pw, err := writer.NewJSONWriter(schema, fw, w.parallel)
	if err != nil {
		return fmt.Errorf("parquet writer: %w", err)
	}

	columns := table.Columns()
	for i, row := range table.Rows() {
		rec := make(map[string]interface{}, len(columns))
		for j, col := range columns {
			rec[col.Name] = parquetValue(row[j])
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := pw.Write(string(payload)); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("parquet flush: %w", err)
	}
	return nil
}

type schemaNode struct {
	Tag    string       `json:"Tag"`
	Fields []schemaNode `json:"Fields,omitempty"`
}

func parquetSchema(columns []shareddomain.Column) (string, error) {
	root := schemaNode{Tag: "name=parquet_go_root, repetitiontype=REQUIRED"}
	for _, col := range columns {
		if strings.ContainsAny(col.Name, ", =") {
			return "", fmt.Errorf("column name %q cannot be used in a parquet schema", col.Name)
		}

		var kind string
		switch col.Type {
		case shareddomain.ColumnInteger:
			kind = "type=INT64"
		case shareddomain.ColumnFloat:
			kind = "type=DOUBLE"
		default:
			kind = "type=BYTE_ARRAY, convertedtype=UTF8"
		}
		root.Fields = append(root.Fields, schemaNode{
			Tag: fmt.Sprintf("name=%s, %s, repetitiontype=OPTIONAL", col.Name, kind),
		})
	}

	raw, err := json.Marshal(root)
	return string(raw), err
}

// parquetValue les dates passent en texte ISO, le reste tel quel
func parquetValue(v interface{}) interface{} {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	return v
}
