package store

import (
	"sort"
	"strings"

	"github.com/ASCBird0277/ca-app/internal/domain"
	"github.com/ASCBird0277/ca-app/internal/match"
	"github.com/ASCBird0277/ca-app/internal/table"
)

// Search runs the cascading query strategy over the current snapshot:
// fuzzy extraction over the corpus, union with staff-match hits, then
// token-AND and whole-phrase narrowing (each skipped rather than
// allowed to empty the set), a plain substring fallback, and finally
// the structured filters. Results are full copies in a reproducible
// order.
func (s *DataStore) Search(query string, filters domain.SearchFilters) ([]domain.Property, []domain.EmployeeMatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return []domain.Property{}, []domain.EmployeeMatch{}
	}
	sn := s.snap

	trimmed := strings.TrimSpace(query)
	queryFold := match.Fold(trimmed)
	tokens := match.Tokens(trimmed)

	matchCache := make(map[string][]domain.EmployeeMatch)
	collectMatches := func(propertyID string) []domain.EmployeeMatch {
		if cached, ok := matchCache[propertyID]; ok {
			return cached
		}
		matches := collectEmployeeMatches(sn, propertyID, trimmed)
		matchCache[propertyID] = matches
		return matches
	}

	var candidates []string
	if trimmed == "" {
		candidates = append([]string(nil), sn.order...)
	} else {
		for _, result := range match.Extract(trimmed, sn.order, sn.corpus, scoreCutoff, maxSearchResults) {
			candidates = append(candidates, result.ID)
		}

		// Staff hits pull in their property even when the corpus-wide
		// fuzzy pass missed it.
		seen := make(map[string]struct{}, len(candidates))
		for _, id := range candidates {
			seen[id] = struct{}{}
		}
		for _, propertyID := range sn.order {
			if len(collectMatches(propertyID)) == 0 {
				continue
			}
			if _, dup := seen[propertyID]; !dup {
				candidates = append(candidates, propertyID)
				seen[propertyID] = struct{}{}
			}
		}

		if len(candidates) == 0 {
			for _, propertyID := range sn.order {
				if strings.Contains(match.Fold(sn.corpus[propertyID]), queryFold) {
					candidates = append(candidates, propertyID)
				}
			}
		}
	}

	fieldText := func(propertyID string) string {
		record := sn.properties[propertyID]
		return match.Fold(strings.Join(nonEmpty(
			record.Name,
			table.String(record.Address),
			table.String(record.City),
			table.String(record.Region),
		), " "))
	}

	if len(candidates) > 0 {
		fields := make(map[string]string, len(candidates))
		corpora := make(map[string]string, len(candidates))
		for _, id := range candidates {
			fields[id] = fieldText(id)
			corpora[id] = match.Fold(sn.corpus[id])
		}
		inEither := func(id, needle string) bool {
			return strings.Contains(fields[id], needle) || strings.Contains(corpora[id], needle)
		}

		// Narrowing filters only apply when they leave something.
		if len(tokens) > 0 {
			filtered := candidates[:0:0]
			for _, id := range candidates {
				all := true
				for _, tok := range tokens {
					if !inEither(id, tok) {
						all = false
						break
					}
				}
				if all {
					filtered = append(filtered, id)
				}
			}
			if len(filtered) > 0 {
				candidates = filtered
			}
		}
		if queryFold != "" {
			filtered := candidates[:0:0]
			for _, id := range candidates {
				if inEither(id, queryFold) {
					filtered = append(filtered, id)
				}
			}
			if len(filtered) > 0 {
				candidates = filtered
			}
		}
	}

	if len(candidates) == 0 {
		// Last resort: property-wide substring/token scan, ignoring
		// the fuzzy stage entirely.
		for _, propertyID := range sn.order {
			field := fieldText(propertyID)
			corpus := match.Fold(sn.corpus[propertyID])
			if queryFold != "" && (strings.Contains(field, queryFold) || strings.Contains(corpus, queryFold)) {
				candidates = append(candidates, propertyID)
				continue
			}
			if len(tokens) > 0 && allTokensIn(tokens, field, corpus) {
				candidates = append(candidates, propertyID)
			}
		}
	}
	if len(candidates) == 0 {
		return []domain.Property{}, []domain.EmployeeMatch{}
	}

	regionSet := make(map[string]struct{}, len(filters.Regions))
	for _, region := range filters.Regions {
		if region != "" {
			regionSet[match.Canonical(region)] = struct{}{}
		}
	}

	results := make([]domain.Property, 0, len(candidates))
	employeeMatches := make([]domain.EmployeeMatch, 0)
	seenEmployees := make(map[[2]string]struct{})

	for _, propertyID := range candidates {
		record, ok := sn.properties[propertyID]
		if !ok {
			continue
		}
		if len(regionSet) > 0 {
			if _, ok := regionSet[match.Canonical(table.String(record.Region))]; !ok {
				continue
			}
		}
		if filters.Vacancy == "with" && !record.HasVacancy {
			continue
		}
		if filters.Vacancy == "without" && record.HasVacancy {
			continue
		}
		if record.Units != nil {
			if filters.UnitsMin != nil && *record.Units < *filters.UnitsMin {
				continue
			}
			if filters.UnitsMax != nil && *record.Units > *filters.UnitsMax {
				continue
			}
		}

		results = append(results, copyProperty(record))
		if trimmed == "" {
			continue
		}
		for _, hit := range collectMatches(propertyID) {
			key := [2]string{hit.PropertyID, table.String(hit.EmployeeID)}
			if key[1] == "" {
				key[1] = hit.EmployeeName
			}
			if _, dup := seenEmployees[key]; dup {
				continue
			}
			seenEmployees[key] = struct{}{}
			employeeMatches = append(employeeMatches, hit)
			if len(employeeMatches) >= maxEmployeeMatches {
				break
			}
		}
		if len(employeeMatches) >= maxEmployeeMatches {
			break
		}
	}
	return results, employeeMatches
}

func allTokensIn(tokens []string, haystacks ...string) bool {
	for _, tok := range tokens {
		found := false
		for _, hay := range haystacks {
			if strings.Contains(hay, tok) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// collectEmployeeMatches runs the staff sub-search for one property:
// positions plus the two key-role staff, matched by phrase containment
// or all-token presence, scored fuzzily, best first.
func collectEmployeeMatches(sn *snapshot, propertyID, query string) []domain.EmployeeMatch {
	record, ok := sn.properties[propertyID]
	if !ok {
		return nil
	}
	type entry struct {
		employeeID *string
		name       *string
		title      *string
		isVacant   bool
		email      *string
		phone      *string
	}
	entries := make([]entry, 0, len(sn.positions[propertyID])+2)
	for _, pos := range sn.positions[propertyID] {
		entries = append(entries, entry{
			employeeID: pos.EmployeeID,
			name:       pos.EmployeeName,
			title:      pos.JobTitle,
			isVacant:   pos.IsVacant,
			email:      pos.Email,
			phone:      pos.Phone,
		})
	}
	for _, keyStaff := range []struct {
		staff         *domain.StaffRecord
		fallbackTitle string
	}{
		{record.RegionalManager, "Regional Manager"},
		{record.RegionalMaintenance, "Regional Maintenance"},
	} {
		if keyStaff.staff == nil {
			continue
		}
		title := keyStaff.staff.JobTitle
		if title == nil {
			fallback := keyStaff.fallbackTitle
			title = &fallback
		}
		name := keyStaff.staff.Name
		entries = append(entries, entry{
			employeeID: keyStaff.staff.EmployeeID,
			name:       &name,
			title:      title,
			isVacant:   keyStaff.staff.IsVacant,
			email:      keyStaff.staff.Email,
			phone:      keyStaff.staff.Phone,
		})
	}
	if len(entries) == 0 {
		return nil
	}

	queryFold := match.Fold(query)
	tokens := match.RawTokens(query)
	matches := make([]domain.EmployeeMatch, 0, len(entries))

	for _, e := range entries {
		jobTitle := table.String(e.title)
		displayName := table.String(e.name)
		switch {
		case displayName == "" && e.isVacant && jobTitle != "":
			displayName = "Vacant - " + jobTitle
		case displayName == "" && e.isVacant:
			displayName = "Vacant position"
		case displayName == "":
			if id := table.String(e.employeeID); id != "" {
				displayName = id
			} else if jobTitle != "" {
				displayName = jobTitle
			} else {
				displayName = "Staff member"
			}
		}

		terms := nonEmpty(
			displayName,
			jobTitle,
			record.Name,
			table.String(record.City),
			table.String(record.Region),
		)
		if e.isVacant {
			terms = append(terms, "vacant position")
		}
		haystack := strings.Join(terms, " ")
		if haystack == "" {
			continue
		}
		haystackFold := match.Fold(haystack)
		if !strings.Contains(haystackFold, queryFold) {
			if len(tokens) == 0 || !allTokensIn(tokens, haystackFold) {
				continue
			}
		}

		hit := domain.EmployeeMatch{
			PropertyID:   propertyID,
			PropertyName: record.Name,
			City:         record.City,
			State:        record.State,
			Region:       record.Region,
			EmployeeID:   e.employeeID,
			EmployeeName: displayName,
			IsVacant:     e.isVacant,
			Score:        match.Score(query, haystack),
			Email:        e.email,
			Phone:        e.phone,
		}
		if jobTitle != "" {
			hit.JobTitle = &jobTitle
		}
		matches = append(matches, hit)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].IsVacant != matches[j].IsVacant {
			return !matches[i].IsVacant
		}
		return strings.ToLower(matches[i].EmployeeName) < strings.ToLower(matches[j].EmployeeName)
	})
	if len(matches) > maxEmployeeMatches {
		matches = matches[:maxEmployeeMatches]
	}
	return matches
}
