package repository

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/ASCBird0277/ca-app/internal/domain"

	"github.com/xuri/excelize/v2"
)

// PropertyExportHeader is the column set of an exported property list.
var PropertyExportHeader = []string{
	"Property ID",
	"Property",
	"Address",
	"City",
	"State",
	"Zip",
	"Region",
	"Units",
	"Vacant Positions",
	"Total Positions",
	"Status",
	"Regional Manager",
	"Regional Maintenance",
}

// ExportProperties renders the finalized property list as a styled
// worksheet: bold frozen header, one row per property, derived
// staffing state included.
func ExportProperties(properties []domain.Property) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Properties"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	for col, header := range PropertyExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header style: %w", err)
		}
	}

	for rowIdx, property := range properties {
		row := rowIdx + 2
		status := property.VacancyLabel
		if property.HasNoInfo {
			status = "Info missing"
		}
		values := []any{
			property.PropertyID,
			property.Name,
			deref(property.Address),
			deref(property.City),
			deref(property.State),
			deref(property.Zip),
			deref(property.Region),
			unitsValue(property.Units),
			property.VacantPositions,
			property.TotalPositions,
			status,
			staffName(property.RegionalManager),
			staffName(property.RegionalMaintenance),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func unitsValue(units *int) string {
	if units == nil {
		return ""
	}
	return strconv.Itoa(*units)
}

func staffName(staff *domain.StaffRecord) string {
	if staff == nil {
		return ""
	}
	return staff.Name
}
