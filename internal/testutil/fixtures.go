package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/salesflow/internal/model"
)

// FixtureRow is one month of a fixture.
type FixtureRow struct {
	Month    model.Month
	Revenue  float64
	Expenses float64
}

// Fixture is a named, reusable dataset.
type Fixture struct {
	Name string
	Rows []FixtureRow
}

// Predefined fixtures.
var (
	// FixtureJanFeb is the two-month example: profits 1000 and 1200.
	FixtureJanFeb = Fixture{
		Name: "jan-feb",
		Rows: []FixtureRow{
			{Month: model.January, Revenue: 1500, Expenses: 500},
			{Month: model.February, Revenue: 1800, Expenses: 600},
		},
	}

	// FixtureZeroRevenue has a month with no revenue.
	FixtureZeroRevenue = Fixture{
		Name: "zero-revenue",
		Rows: []FixtureRow{
			{Month: model.March, Revenue: 0, Expenses: 100},
		},
	}

	// FixtureSingleMonth has only one row.
	FixtureSingleMonth = Fixture{
		Name: "single-month",
		Rows: []FixtureRow{
			{Month: model.April, Revenue: 2000, Expenses: 700},
		},
	}

	// FixtureFullYear matches the built-in sample dataset.
	FixtureFullYear = Fixture{
		Name: "full-year",
		Rows: []FixtureRow{
			{Month: model.January, Revenue: 1500, Expenses: 500},
			{Month: model.February, Revenue: 1800, Expenses: 600},
			{Month: model.March, Revenue: 2400, Expenses: 800},
			{Month: model.April, Revenue: 2000, Expenses: 700},
			{Month: model.May, Revenue: 2300, Expenses: 900},
			{Month: model.June, Revenue: 1900, Expenses: 750},
			{Month: model.July, Revenue: 2100, Expenses: 850},
			{Month: model.August, Revenue: 2200, Expenses: 950},
			{Month: model.September, Revenue: 2500, Expenses: 1000},
			{Month: model.October, Revenue: 2700, Expenses: 1100},
			{Month: model.November, Revenue: 2600, Expenses: 1050},
			{Month: model.December, Revenue: 2800, Expenses: 1200},
		},
	}
)

// WriteFile writes content to name inside a fresh temp dir and returns the path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
