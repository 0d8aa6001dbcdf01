package store_test

import (
	"testing"

	"github.com/ASCBird0277/ca-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func propertyIDs(props []domain.Property) []string {
	ids := make([]string, 0, len(props))
	for _, p := range props {
		ids = append(ids, p.PropertyID)
	}
	return ids
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	ds, _ := newFixtureStore(t)
	props, staff := ds.Search("", domain.SearchFilters{})
	require.Len(t, props, 3)
	assert.Equal(t, "Oak Park Apartments", props[0].Name)
	assert.Equal(t, "Maple Court", props[1].Name)
	assert.Equal(t, "Pine Ridge", props[2].Name)
	assert.Empty(t, staff)
}

func TestSearchByPropertyName(t *testing.T) {
	ds, _ := newFixtureStore(t)
	props, _ := ds.Search("Oak Park", domain.SearchFilters{})
	require.NotEmpty(t, props)
	assert.Equal(t, "Oak Park Apartments", props[0].Name)
	assert.NotContains(t, propertyIDs(props), ds.Properties()[2].PropertyID)
}

func TestSearchGibberishReturnsEmpty(t *testing.T) {
	ds, _ := newFixtureStore(t)
	props, staff := ds.Search("zzqqxxvvkk", domain.SearchFilters{})
	assert.Empty(t, props)
	assert.Empty(t, staff)
	assert.NotNil(t, props)
	assert.NotNil(t, staff)
}

func TestSearchByEmployeeName(t *testing.T) {
	ds, _ := newFixtureStore(t)
	props, staff := ds.Search("Alice", domain.SearchFilters{})

	require.NotEmpty(t, props)
	assert.Equal(t, "Oak Park Apartments", props[0].Name)

	require.Len(t, staff, 1)
	assert.Equal(t, "Alice Johnson", staff[0].EmployeeName)
	require.NotNil(t, staff[0].JobTitle)
	assert.Equal(t, "Property Manager", *staff[0].JobTitle)
	assert.Equal(t, "OAK1", staff[0].PropertyID)
	assert.False(t, staff[0].IsVacant)
	assert.Greater(t, staff[0].Score, 0.0)
}

func TestSearchDeduplicatesStaff(t *testing.T) {
	ds, _ := newFixtureStore(t)

	// Erin Fox appears both as a position and as the declared regional
	// manager of the same property; the hit is reported once.
	_, staff := ds.Search("Erin Fox", domain.SearchFilters{})
	require.Len(t, staff, 1)
	assert.Equal(t, "Erin Fox", staff[0].EmployeeName)
}

func TestSearchVacantPosition(t *testing.T) {
	ds, _ := newFixtureStore(t)
	props, staff := ds.Search("vacant position", domain.SearchFilters{})

	require.NotEmpty(t, props)
	assert.Contains(t, propertyIDs(props), ds.Properties()[1].PropertyID)

	require.NotEmpty(t, staff)
	found := false
	for _, hit := range staff {
		if hit.IsVacant {
			found = true
			assert.Equal(t, "Vacant - Leasing Agent", hit.EmployeeName)
		}
	}
	assert.True(t, found)
}

func TestSearchRegionFilter(t *testing.T) {
	ds, _ := newFixtureStore(t)

	props, _ := ds.Search("", domain.SearchFilters{Regions: []string{"north"}})
	require.Len(t, props, 2)
	assert.Equal(t, "Oak Park Apartments", props[0].Name)
	assert.Equal(t, "Pine Ridge", props[1].Name)

	props, _ = ds.Search("Oak", domain.SearchFilters{Regions: []string{"South"}})
	assert.Empty(t, props)
}

func TestSearchVacancyFilter(t *testing.T) {
	ds, _ := newFixtureStore(t)

	withVacancy, _ := ds.Search("", domain.SearchFilters{Vacancy: "with"})
	require.Len(t, withVacancy, 1)
	assert.Equal(t, "Maple Court", withVacancy[0].Name)

	// The no-information property counts as not vacant.
	without, _ := ds.Search("", domain.SearchFilters{Vacancy: "without"})
	require.Len(t, without, 2)
	assert.Equal(t, "Oak Park Apartments", without[0].Name)
	assert.Equal(t, "Pine Ridge", without[1].Name)
}

func TestSearchUnitsFilterSkipsUnknownUnits(t *testing.T) {
	ds, _ := newFixtureStore(t)

	props, _ := ds.Search("", domain.SearchFilters{UnitsMin: intp(100)})
	// Maple Court (80) drops out; Pine Ridge has no unit count and is
	// never excluded by a units bound.
	require.Len(t, props, 2)
	assert.Equal(t, "Oak Park Apartments", props[0].Name)
	assert.Equal(t, "Pine Ridge", props[1].Name)

	props, _ = ds.Search("", domain.SearchFilters{UnitsMax: intp(100)})
	require.Len(t, props, 2)
	assert.Equal(t, "Maple Court", props[0].Name)
	assert.Equal(t, "Pine Ridge", props[1].Name)
}

func TestSearchByCity(t *testing.T) {
	ds, _ := newFixtureStore(t)
	props, _ := ds.Search("Savannah", domain.SearchFilters{})
	require.NotEmpty(t, props)
	assert.Equal(t, "Maple Court", props[0].Name)
}

func TestSearchResultsAreCopies(t *testing.T) {
	ds, _ := newFixtureStore(t)
	props, _ := ds.Search("", domain.SearchFilters{})
	require.NotEmpty(t, props)
	props[0].Name = "mutated"
	props[0].RegionalManager = nil

	again, _ := ds.Search("", domain.SearchFilters{})
	assert.Equal(t, "Oak Park Apartments", again[0].Name)
	assert.NotNil(t, again[0].RegionalManager)
}

func TestSearchWhitespaceQueryIsEmpty(t *testing.T) {
	ds, _ := newFixtureStore(t)
	props, staff := ds.Search("   ", domain.SearchFilters{})
	assert.Len(t, props, 3)
	assert.Empty(t, staff)
}
