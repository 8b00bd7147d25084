package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/winbio/vendorscore/internal/score"
)

// Standard column names (snake_case). Raw columns come first; the derived
// columns follow in the order the dashboard displays them.
var standardColumns = []string{
	"vendor_code",
	"product",
	"price",
	"terms_raw",
	"terms_days",
	"vendor_score",
	"total_cost",
	"rank",
	"rank_badge",
}

// requiredColumns must be present in the input header; their absence is the
// only per-file condition that aborts a load.
var requiredColumns = []string{"vendor_code", "product", "price", "terms_raw"}

// derivedColumns are recomputed on every pass. Values found under these
// headers in an input file are ignored rather than parsed: stale scores from
// a previous export must never leak into a new run.
var derivedColumns = map[string]bool{
	"terms_days":   true,
	"vendor_score": true,
	"total_cost":   true,
	"rank":         true,
	"rank_badge":   true,
}

// Load loads a vendor table from a CSV file.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	t, err := ReadCSV(file)
	if err != nil {
		return nil, err
	}

	t.SetPath(path)
	t.MarkClean()
	return t, nil
}

// Save writes the table to a CSV file. An empty path reuses the path the
// table was loaded from.
func (t *Table) Save(path string) error {
	if path == "" {
		path = t.path
	}
	if path == "" {
		return fmt.Errorf("no path specified for saving table")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer file.Close()

	if err := t.WriteCSV(file); err != nil {
		return err
	}

	t.SetPath(path)
	t.MarkClean()
	return nil
}

// ReadCSV reads vendor rows from a CSV reader.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable fields

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Build column index and track extra columns not in the standard set.
	colIndex := make(map[string]int)
	var extraCols []string
	for i, col := range header {
		normalized := normalizeColumnName(col)
		colIndex[normalized] = i

		isStandard := false
		for _, std := range standardColumns {
			if normalized == std {
				isStandard = true
				break
			}
		}
		if !isStandard {
			extraCols = append(extraCols, col)
		}
	}

	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	t := New()

	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", lineNum+1, err)
		}
		lineNum++

		row, err := parseRow(record, colIndex, extraCols)
		if err != nil {
			return nil, fmt.Errorf("failed to parse row %d: %w", lineNum, err)
		}

		if err := t.Add(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", lineNum, err)
		}
	}

	return t, nil
}

// WriteCSV writes the table to a CSV writer, derived columns included.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	// Collect extra columns used anywhere, sorted for deterministic output.
	extraSet := make(map[string]bool)
	for _, row := range t.rows {
		for k := range row.Extra {
			extraSet[k] = true
		}
	}
	extraCols := make([]string, 0, len(extraSet))
	for col := range extraSet {
		extraCols = append(extraCols, col)
	}
	for i := 0; i < len(extraCols)-1; i++ {
		for j := i + 1; j < len(extraCols); j++ {
			if extraCols[i] > extraCols[j] {
				extraCols[i], extraCols[j] = extraCols[j], extraCols[i]
			}
		}
	}

	header := make([]string, len(standardColumns))
	copy(header, standardColumns)
	header = append(header, extraCols...)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range t.rows {
		if err := writer.Write(formatRow(row, header)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", row.VendorCode, err)
		}
	}

	return nil
}

// normalizeColumnName converts column names to snake_case.
func normalizeColumnName(name string) string {
	name = strings.TrimSpace(name)

	// Already snake_case or all lowercase.
	if strings.Contains(name, "_") || strings.ToLower(name) == name {
		return strings.ToLower(name)
	}

	// PascalCase/camelCase -> snake_case. No underscore between consecutive
	// uppercase letters, so acronyms stay together.
	var result strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := rune(name[i-1])
			if prev >= 'a' && prev <= 'z' {
				result.WriteByte('_')
			}
		}
		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

// parseRow parses a CSV record into a VendorRow. Only raw cells are taken
// from the record; derived columns are left absent for the next recompute.
func parseRow(record []string, colIndex map[string]int, extraCols []string) (*score.VendorRow, error) {
	getValue := func(col string) string {
		if idx, ok := colIndex[col]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	row := score.NewVendorRow(getValue("vendor_code"), getValue("product"))
	if row.VendorCode == "" {
		return nil, fmt.Errorf("vendor_code is required")
	}

	row.PriceRaw = getValue("price")
	row.TermsRaw = getValue("terms_raw")

	for _, col := range extraCols {
		normalized := normalizeColumnName(col)
		if derivedColumns[normalized] {
			continue
		}
		if idx, ok := colIndex[normalized]; ok && idx < len(record) {
			value := strings.TrimSpace(record[idx])
			if value != "" {
				row.Extra[col] = value
			}
		}
	}

	return row, nil
}

// formatRow formats a VendorRow as a CSV record. Absent derived values
// serialize as empty cells.
func formatRow(row *score.VendorRow, header []string) []string {
	record := make([]string, len(header))

	for i, col := range header {
		switch col {
		case "vendor_code":
			record[i] = row.VendorCode
		case "product":
			record[i] = row.Product
		case "price":
			record[i] = row.PriceRaw
		case "terms_raw":
			record[i] = row.TermsRaw
		case "terms_days":
			if row.TermsDays.Valid {
				record[i] = strconv.Itoa(row.TermsDays.Days)
			}
		case "vendor_score":
			if row.VendorScore.Valid {
				record[i] = strconv.FormatFloat(row.VendorScore.Value, 'f', -1, 64)
			}
		case "total_cost":
			if row.TotalCost.Valid {
				record[i] = strconv.FormatFloat(row.TotalCost.Value, 'f', -1, 64)
			}
		case "rank":
			if row.Rank > 0 {
				record[i] = strconv.Itoa(row.Rank)
			}
		case "rank_badge":
			record[i] = row.RankBadge
		default:
			if val, ok := row.Extra[col]; ok {
				record[i] = val
			}
		}
	}

	return record
}
