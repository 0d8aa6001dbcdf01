package table_test

import (
	"testing"

	"github.com/ASCBird0277/ca-app/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestNormalizeSelectsFirstPresentAlias(t *testing.T) {
	raw := table.Table{
		Columns: []string{"Employee ID", "Full Name"},
		Rows: []table.Row{
			{"Employee ID": strp("E1"), "Full Name": strp("Alice Johnson")},
		},
	}
	mapping := table.Mapping{
		"EmployeeID":   {"Associate ID", "Employee ID"},
		"EmployeeName": {"Full Name", "Name"},
		"Email":        {"Email Address"},
	}
	out := table.Normalize(raw, mapping, []string{"EmployeeID", "EmployeeName", "Email"})

	require.Len(t, out.Rows, 1)
	assert.Equal(t, []string{"EmployeeID", "EmployeeName", "Email"}, out.Columns)
	assert.Equal(t, "E1", table.String(out.Rows[0]["EmployeeID"]))
	assert.Equal(t, "Alice Johnson", table.String(out.Rows[0]["EmployeeName"]))
	assert.Nil(t, out.Rows[0]["Email"])
}

func TestNormalizeHeaderComparisonIsCanonical(t *testing.T) {
	raw := table.Table{
		Columns: []string{"  property NAME "},
		Rows:    []table.Row{{"  property NAME ": strp("Oak Park")}},
	}
	mapping := table.Mapping{"PropertyName": {"Property Name"}}
	out := table.Normalize(raw, mapping, []string{"PropertyName"})

	require.Len(t, out.Rows, 1)
	assert.Equal(t, "Oak Park", table.String(out.Rows[0]["PropertyName"]))
}

func TestNormalizePreservesRowCountAndOrder(t *testing.T) {
	raw := table.Table{
		Columns: []string{"Name"},
		Rows: []table.Row{
			{"Name": strp("first")},
			{"Name": nil},
			{"Name": strp("third")},
		},
	}
	out := table.Normalize(raw, table.Mapping{"PropertyName": {"Name"}}, []string{"PropertyName"})

	require.Len(t, out.Rows, 3)
	assert.Equal(t, "first", table.String(out.Rows[0]["PropertyName"]))
	assert.Nil(t, out.Rows[1]["PropertyName"])
	assert.Equal(t, "third", table.String(out.Rows[2]["PropertyName"]))
}

func TestNormalizeEmptyTable(t *testing.T) {
	out := table.Normalize(table.Table{}, table.Mapping{"PropertyName": {"Name"}}, []string{"PropertyName"})
	assert.Empty(t, out.Rows)
	assert.Equal(t, []string{"PropertyName"}, out.Columns)
}

func TestRowGetCleansCells(t *testing.T) {
	row := table.Row{
		"a": strp("  padded  "),
		"b": strp("NaN"),
		"c": strp(""),
	}
	require.NotNil(t, row.Get("a"))
	assert.Equal(t, "padded", *row.Get("a"))
	assert.Nil(t, row.Get("b"))
	assert.Nil(t, row.Get("c"))
	assert.Nil(t, row.Get("missing"))
}
