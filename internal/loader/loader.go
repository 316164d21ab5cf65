// Package loader reads the tabular inputs of an analysis run and projects
// them into cleaned source records.
//
// Inputs arrive as CSV or xlsx files whose meaning is fixed by column
// position, not header names. Loading happens in two steps: Load reads the
// whole file into a RawTable, and the per-source Extract functions select
// the configured positions and normalize every cell. Cleaning is
// best-effort: an unparsable money cell becomes zero and is recorded as a
// Diagnostic instead of failing the run, while a table narrower than a
// required position aborts extraction with a schema error.
package loader

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"catalog-reconciliation-service/pkg/errors"
	"catalog-reconciliation-service/pkg/logger"

	"github.com/xuri/excelize/v2"
)

// RawTable is an ordered grid of raw cell values as read from disk.
// It exists only between loading and extraction.
type RawTable struct {
	Path string
	Rows [][]string
}

// NumRows returns the number of rows including any header row
func (t *RawTable) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the widest row's column count
func (t *RawTable) NumCols() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// DataRows returns the rows carrying data, skipping the header when present
func (t *RawTable) DataRows(hasHeader bool) [][]string {
	if hasHeader && len(t.Rows) > 0 {
		return t.Rows[1:]
	}
	return t.Rows
}

// Load reads a tabular file into a RawTable, dispatching on the file
// extension: .csv goes through encoding/csv, .xlsx is read with excelize
// (first sheet only). Any other extension is rejected as unsupported.
func Load(path string) (*RawTable, error) {
	log := logger.WithComponent("loader").WithField("file_path", path)
	log.Debug("Loading input table")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.WithError(err).Error("Input file not found")
		return nil, errors.LoadError(errors.CodeFileNotFound, path, err)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = loadCSV(path)
	case ".xlsx":
		rows, err = loadWorkbook(path)
	default:
		err = errors.LoadError(errors.CodeUnsupportedInput, path, nil)
	}
	if err != nil {
		log.WithError(err).Error("Failed to load input table")
		return nil, err
	}

	table := &RawTable{Path: path, Rows: rows}
	log.WithFields(logger.Fields{
		"rows": table.NumRows(),
		"cols": table.NumCols(),
	}).Debug("Loaded input table")

	return table, nil
}

func loadCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.LoadError(errors.CodeFileUnparseable, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.LoadError(errors.CodeFileUnparseable, path, err)
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, errors.LoadError(errors.CodeEmptyTable, path, nil)
	}

	return rows, nil
}

func loadWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.LoadError(errors.CodeFileUnparseable, path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.LoadError(errors.CodeEmptyTable, path, nil)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.LoadError(errors.CodeFileUnparseable, path, err)
	}
	if len(rows) == 0 {
		return nil, errors.LoadError(errors.CodeEmptyTable, path, nil)
	}

	return rows, nil
}
