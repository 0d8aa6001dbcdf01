package store

import (
	"strings"

	"github.com/ASCBird0277/ca-app/internal/domain"
)

// buildSearchCorpus concatenates every searchable term of a property
// into one blob: identity, address, region, each position's name and
// title, and both key-role staff.
func (s *DataStore) buildSearchCorpus(next *snapshot) {
	next.corpus = make(map[string]string, len(next.order))
	for _, propertyID := range next.order {
		record := next.properties[propertyID]
		terms := make([]string, 0, 8+2*len(next.positions[propertyID]))
		terms = appendTerm(terms, record.Name)
		terms = appendPtr(terms, record.Address)
		terms = appendPtr(terms, record.City)
		terms = appendPtr(terms, record.State)
		terms = appendPtr(terms, record.Zip)
		terms = appendPtr(terms, record.Region)
		for _, pos := range next.positions[propertyID] {
			terms = appendPtr(terms, pos.EmployeeName)
			terms = appendPtr(terms, pos.JobTitle)
		}
		for _, staff := range []*domain.StaffRecord{record.RegionalManager, record.RegionalMaintenance} {
			if staff == nil {
				continue
			}
			terms = appendTerm(terms, staff.Name)
			terms = appendPtr(terms, staff.JobTitle)
		}
		next.corpus[propertyID] = strings.Join(terms, " ")
	}
}

func appendTerm(terms []string, term string) []string {
	if term == "" {
		return terms
	}
	return append(terms, term)
}

func appendPtr(terms []string, term *string) []string {
	if term == nil {
		return terms
	}
	return appendTerm(terms, *term)
}
