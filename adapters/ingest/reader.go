// Package ingest extracts named numeric columns from CSV and Excel files and
// hands the engine already-parsed float slices. It is a collaborator of the
// test core, not part of it: all statistical semantics live in the engine.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Dataset holds the numeric columns of an ingested file. Cells that do not
// parse as finite numbers are simply absent from the column; the engine does
// its own finite filtering and minimum-size validation on top.
type Dataset struct {
	Columns map[string][]float64
	Order   []string // Header order as it appeared in the file
}

// Column returns the named column, or an error naming the available headers.
func (d *Dataset) Column(name string) ([]float64, error) {
	if col, ok := d.Columns[name]; ok {
		return col, nil
	}
	return nil, fmt.Errorf("column %q not found (have: %s)", name, strings.Join(d.Order, ", "))
}

// Reader handles reading Excel and CSV files
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader that dispatches on the file extension.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the file and extracts its numeric columns.
func (r *Reader) Read() (*Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *Reader) readCSV() (*Dataset, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return buildDataset(rows)
}

func (r *Reader) readExcel() (*Dataset, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return buildDataset(rows)
}

// buildDataset turns raw string rows into numeric columns keyed by header.
func buildDataset(rows [][]string) (*Dataset, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := rows[0]
	ds := &Dataset{Columns: make(map[string][]float64, len(headers))}
	for _, h := range headers {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		ds.Order = append(ds.Order, name)
		ds.Columns[name] = []float64{}
	}

	for _, row := range rows[1:] {
		for i, cell := range row {
			if i >= len(headers) {
				break
			}
			name := strings.TrimSpace(headers[i])
			if name == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			ds.Columns[name] = append(ds.Columns[name], v)
		}
	}

	return ds, nil
}
