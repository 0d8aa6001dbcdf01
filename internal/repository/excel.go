// Package repository reads the source workbooks into raw tables and
// writes the reconciled property list back out as a worksheet.
package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ASCBird0277/ca-app/internal/table"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExcelTables loads the three source tables from xlsx workbooks in one
// data directory. The first sheet of each workbook is the table; its
// first row is the header.
type ExcelTables struct {
	dataDir    string
	employees  string
	properties string
	positions  string
	logger     *zap.Logger
}

func NewExcelTables(dataDir, employees, properties, positions string, logger *zap.Logger) *ExcelTables {
	return &ExcelTables{
		dataDir:    dataDir,
		employees:  employees,
		properties: properties,
		positions:  positions,
		logger:     logger,
	}
}

func (r *ExcelTables) Employees() (table.Table, error)  { return r.read(r.employees) }
func (r *ExcelTables) Properties() (table.Table, error) { return r.read(r.properties) }
func (r *ExcelTables) Positions() (table.Table, error)  { return r.read(r.positions) }

func (r *ExcelTables) read(filename string) (table.Table, error) {
	path := filepath.Join(r.dataDir, filename)
	if _, err := os.Stat(path); err != nil {
		return table.Table{}, fmt.Errorf("missing source workbook %s: %w", path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return table.Table{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return table.Table{}, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return table.Table{}, fmt.Errorf("read rows from %s: %w", path, err)
	}
	if len(rows) == 0 {
		return table.Table{}, nil
	}

	header := rows[0]
	out := table.Table{
		Columns: append([]string(nil), header...),
		Rows:    make([]table.Row, 0, len(rows)-1),
	}
	for _, cells := range rows[1:] {
		row := make(table.Row, len(header))
		for i, column := range header {
			if i < len(cells) && cells[i] != "" {
				value := cells[i]
				row[column] = &value
			}
		}
		out.Rows = append(out.Rows, row)
	}
	r.logger.Debug("read source workbook",
		zap.String("file", filename),
		zap.Int("rows", len(out.Rows)),
		zap.Int("columns", len(header)),
	)
	return out, nil
}
