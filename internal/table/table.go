// Package table holds loosely-structured tabular data on its way into
// the reconciliation pipeline: ordered rows of named cells whose
// headers are whatever a human typed into the source workbook.
package table

import (
	"github.com/ASCBird0277/ca-app/internal/match"
)

// Table is an ordered sequence of rows sharing one header set. Cell
// values are pointers so a missing or blank source column stays
// distinguishable from an empty string.
type Table struct {
	Columns []string
	Rows    []Row
}

// Row maps a header name to its cell value for one source row.
type Row map[string]*string

// Get returns the trimmed cell value for a column, or nil when the
// cell is absent or blank.
func (r Row) Get(column string) *string {
	return cleanCell(r[column])
}

// Mapping lists, per canonical target field, the accepted source
// header aliases in priority order.
type Mapping map[string][]string

// Normalize projects a raw table onto the canonical schema given by
// targetOrder. For each target field the first alias present among the
// raw headers (compared canonically) is selected; targets with no
// matching header become all-nil columns. Normalization never fails on
// mismatched columns and preserves row count and order.
func Normalize(raw Table, mapping Mapping, targetOrder []string) Table {
	canonicalHeaders := make(map[string]string, len(raw.Columns))
	for _, col := range raw.Columns {
		key := match.Canonical(col)
		if _, taken := canonicalHeaders[key]; !taken {
			canonicalHeaders[key] = col
		}
	}

	selected := make(map[string]string, len(mapping))
	for target, aliases := range mapping {
		for _, alias := range aliases {
			if source, ok := canonicalHeaders[match.Canonical(alias)]; ok {
				selected[target] = source
				break
			}
		}
	}

	out := Table{
		Columns: append([]string(nil), targetOrder...),
		Rows:    make([]Row, 0, len(raw.Rows)),
	}
	for _, rawRow := range raw.Rows {
		row := make(Row, len(targetOrder))
		for _, target := range targetOrder {
			if source, ok := selected[target]; ok {
				row[target] = cleanCell(rawRow[source])
			} else {
				row[target] = nil
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
