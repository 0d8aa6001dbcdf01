package store

import (
	"fmt"
	"strings"

	"github.com/ASCBird0277/ca-app/internal/domain"
	"github.com/ASCBird0277/ca-app/internal/match"
	"github.com/ASCBird0277/ca-app/internal/table"
)

// finalizeProperties derives the staffing state of every property from
// its reconciled position list: vacancy counts, marker/label, key-role
// staff, the unassigned-key-role flag, and the no-information override.
// This is the only place derived fields are written.
func (s *DataStore) finalizeProperties(next *snapshot) {
	for _, propertyID := range next.order {
		record := next.properties[propertyID]
		positions := next.positions[propertyID]

		vacantCount := 0
		for _, pos := range positions {
			if pos.IsVacant {
				vacantCount++
			}
		}
		record.VacantPositions = vacantCount
		record.TotalPositions = len(positions)
		record.HasVacancy = vacantCount > 0

		manager, maintenance := extractKeyStaff(positions)
		record.RegionalManager = mergeStaff(record.RegionalManager, manager)
		record.RegionalMaintenance = mergeStaff(record.RegionalMaintenance, maintenance)

		unassignedPM := keyRoleUnassigned(positions, match.RolePropertyManager)
		unassignedMS := keyRoleUnassigned(positions, match.RoleMaintenanceSupervisor)
		record.HasUnassigned = unassignedPM || unassignedMS

		// When neither canonical key role has any identifiable
		// assignee, the property has no usable staffing data at all.
		// It must not render as vacant.
		record.HasNoInfo = unassignedPM && unassignedMS
		if record.HasNoInfo {
			record.HasVacancy = false
		}

		if record.HasVacancy {
			record.MarkerColor = "yellow"
			record.VacancyLabel = "Vacancy"
		} else {
			record.MarkerColor = "green"
			record.VacancyLabel = "Fully staffed"
		}

		record.Tooltip = buildTooltip(record)
		record.Details = buildDetails(record)
	}
}

// keyRoleUnassigned reports whether the canonical key role has no
// identifiable assignee: either no position matches its title rule at
// all, or a matching position is not vacant yet carries neither an
// employee id nor a name.
func keyRoleUnassigned(positions []domain.Position, role match.RoleCategory) bool {
	seen := false
	for _, pos := range positions {
		title := table.String(pos.JobTitle)
		if title == "" || !match.TitleIs(title, role) {
			continue
		}
		seen = true
		if positionUnassigned(pos) {
			return true
		}
	}
	return !seen
}

func positionUnassigned(pos domain.Position) bool {
	if pos.IsVacant {
		return false
	}
	return strings.TrimSpace(table.String(pos.EmployeeID)) == "" &&
		strings.TrimSpace(table.String(pos.EmployeeName)) == ""
}

// extractKeyStaff picks the first regional-manager and first
// regional-maintenance position, by title rule, as fallback key staff.
func extractKeyStaff(positions []domain.Position) (*domain.StaffRecord, *domain.StaffRecord) {
	var manager, maintenance *domain.StaffRecord
	for i := range positions {
		pos := positions[i]
		title := table.String(pos.JobTitle)
		if title == "" {
			continue
		}
		if manager == nil && match.TitleIs(title, match.RoleRegionalManager) {
			manager = staffFromPosition(pos)
		}
		if maintenance == nil && match.TitleIs(title, match.RoleRegionalMaintenance) {
			maintenance = staffFromPosition(pos)
		}
	}
	return manager, maintenance
}

func staffFromPosition(pos domain.Position) *domain.StaffRecord {
	name := table.String(pos.EmployeeName)
	if name == "" {
		name = "Vacant"
	}
	return &domain.StaffRecord{
		EmployeeID: pos.EmployeeID,
		Name:       name,
		JobTitle:   pos.JobTitle,
		IsVacant:   pos.IsVacant,
		Email:      pos.Email,
		Phone:      pos.Phone,
	}
}

// mergeStaff prefers the explicitly declared entry when it has a name,
// back-filling missing sub-fields from the fallback candidate.
func mergeStaff(primary, fallback *domain.StaffRecord) *domain.StaffRecord {
	if primary == nil || primary.Name == "" {
		if fallback != nil {
			return fallback
		}
		return primary
	}
	if fallback != nil {
		if primary.JobTitle == nil {
			primary.JobTitle = fallback.JobTitle
		}
		if primary.Email == nil {
			primary.Email = fallback.Email
		}
		if primary.Phone == nil {
			primary.Phone = fallback.Phone
		}
		if primary.EmployeeID == nil {
			primary.EmployeeID = fallback.EmployeeID
		}
	}
	return primary
}

// buildTooltip renders the one-line marker summary. "No info"
// properties say so here, and only here.
func buildTooltip(record *domain.Property) string {
	location := "Unknown"
	city := table.String(record.City)
	state := table.String(record.State)
	switch {
	case city != "" && state != "":
		location = city + ", " + state
	case city != "":
		location = city
	case state != "":
		location = state
	}
	unitsText := "Units n/a"
	if record.Units != nil {
		unitsText = fmt.Sprintf("Units %d", *record.Units)
	}
	vacancyText := record.VacancyLabel
	if record.HasNoInfo {
		vacancyText = "Info missing"
	}
	return fmt.Sprintf("%s — %s · %s · %s", record.Name, location, unitsText, vacancyText)
}

// buildDetails renders the multi-line plain-text summary shown with a
// property record.
func buildDetails(record *domain.Property) string {
	addressParts := make([]string, 0, 3)
	if record.Address != nil {
		addressParts = append(addressParts, *record.Address)
	}
	cityState := strings.Join(nonEmpty(table.String(record.City), table.String(record.State)), ", ")
	if cityState != "" {
		addressParts = append(addressParts, cityState)
	}
	if record.Zip != nil {
		addressParts = append(addressParts, *record.Zip)
	}
	fullAddress := strings.Join(addressParts, ", ")
	if fullAddress == "" {
		fullAddress = "Address n/a"
	}

	unitsText := "Units n/a"
	if record.Units != nil {
		unitsText = fmt.Sprintf("%d units", *record.Units)
	}

	vacancyDetail := "All positions filled"
	switch {
	case record.HasNoInfo:
		vacancyDetail = "Key roles unknown"
	case record.HasVacancy:
		vacancyDetail = fmt.Sprintf("%d open", record.VacantPositions)
	}

	lines := []string{
		fullAddress,
		unitsText,
	}
	if record.Region != nil {
		lines = append(lines, "Region: "+*record.Region)
	}
	lines = append(lines,
		vacancyDetail,
		"Regional Manager: "+staffText(record.RegionalManager),
		"Regional Maintenance: "+staffText(record.RegionalMaintenance),
	)
	return strings.Join(lines, "\n")
}

func staffText(staff *domain.StaffRecord) string {
	if staff == nil {
		return "Not assigned"
	}
	if staff.IsVacant {
		return "Vacant"
	}
	if staff.Name == "" {
		return "Not assigned"
	}
	return staff.Name
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
