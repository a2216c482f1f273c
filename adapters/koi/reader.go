// Package koi loads the Kepler Objects of Interest table from CSV or XLSX.
package koi

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"koistat/domain/catalog"
	"koistat/domain/core"
	"koistat/internal"
	"koistat/internal/errors"

	"github.com/xuri/excelize/v2"
)

// RequiredHeaders must be present in every input file.
var RequiredHeaders = []string{
	catalog.HeaderKepID,
	catalog.HeaderDisposition,
	string(catalog.ColModelSNR),
	string(catalog.ColPlanetRadius),
	string(catalog.ColEquilibriumTemp),
	string(catalog.ColOrbitalPeriod),
	string(catalog.ColStellarRadius),
}

// DataReader handles reading the catalog from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a reader; the format follows the file extension.
func NewDataReader(filePath string, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" {
		fileType = "xlsx"
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: logger.Named("koi")}
}

// ReadCatalog reads every data row into a catalog.
func (r *DataReader) ReadCatalog() (*catalog.Catalog, error) {
	r.logger.Debug("reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", core.ErrFileNotFound, r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", strings.ToUpper(r.fileType),
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	cat, err := ParseRows(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", r.filePath)
	}
	r.logger.Info("loaded %d objects from %s", cat.Len(), filepath.Base(r.filePath))
	return cat, nil
}

// readExcelRows reads the first sheet of the workbook
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrMissingColumn)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// readCSVRows reads the archive export, skipping its '#' preamble
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV reads all records, ignoring comment lines and ragged rows.
func ReadCSV(in io.Reader) ([][]string, error) {
	reader := csv.NewReader(in)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

// ParseRows converts a header row plus data rows into a catalog. Empty or
// unparseable numeric cells become missing values.
func ParseRows(rows [][]string) (*catalog.Catalog, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", core.ErrMissingColumn)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	for _, h := range RequiredHeaders {
		if _, ok := index[h]; !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrMissingColumn, h)
		}
	}

	cell := func(row []string, header string) string {
		i, ok := index[header]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]catalog.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := catalog.Record{
			Name:        cell(row, catalog.HeaderName),
			Disposition: catalog.Disposition(strings.ToUpper(cell(row, catalog.HeaderDisposition))),
		}
		if id, err := strconv.ParseInt(cell(row, catalog.HeaderKepID), 10, 64); err == nil {
			rec.KepID = id
		}
		for _, col := range catalog.NumericColumns {
			if err := rec.SetValue(col, parseNumber(cell(row, string(col)))); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}
	return catalog.New(records), nil
}

func parseNumber(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
