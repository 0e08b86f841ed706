package export

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/activecm/asa-elephant/parser"
	"github.com/activecm/asa-elephant/pkg/elephant"
	"github.com/activecm/asa-elephant/util"
)

// ConnectionFields flattens records for tabular export
func ConnectionFields(records []parser.ConnectionRecord) []map[string]string {
	fields := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		fields = append(fields, rec.Fields())
	}
	return fields
}

// FlowFields flattens classified flows for tabular export
func FlowFields(flows []elephant.Result) []map[string]string {
	fields := make([]map[string]string, 0, len(flows))
	for _, flow := range flows {
		fields = append(fields, flow.Fields())
	}
	return fields
}

// Table turns flattened rows into a header and matching rows. The header is
// the sorted union of every key, and missing values are left empty.
func Table(fields []map[string]string) ([]string, [][]string) {
	keySet := make(map[string]struct{})
	for _, row := range fields {
		for key := range row {
			keySet[key] = struct{}{}
		}
	}

	header := make([]string, 0, len(keySet))
	for key := range keySet {
		header = append(header, key)
	}
	sort.Strings(header)

	rows := make([][]string, 0, len(fields))
	for _, row := range fields {
		values := make([]string, len(header))
		for i, key := range header {
			values[i] = row[key]
		}
		rows = append(rows, values)
	}
	return header, rows
}

// WriteDelimited writes a header and rows to w separated by delim
func WriteDelimited(w io.Writer, delim rune, header []string, rows [][]string) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delim

	if err := csvWriter.Write(header); err != nil {
		return err
	}
	if err := csvWriter.WriteAll(rows); err != nil {
		return err
	}
	return csvWriter.Error()
}

// WriteCSV writes fields to a CSV file at path
func WriteCSV(path string, fields []map[string]string) (err error) {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() { err = closeFile(f, err) }()

	header, rows := Table(fields)
	if writeErr := WriteDelimited(f, ',', header, rows); writeErr != nil {
		return util.NewIOError("write", path, writeErr)
	}
	return nil
}
