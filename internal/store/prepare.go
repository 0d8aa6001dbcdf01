package store

import (
	"sort"
	"strings"

	"github.com/ASCBird0277/ca-app/internal/domain"
	"github.com/ASCBird0277/ca-app/internal/match"
	"github.com/ASCBird0277/ca-app/internal/table"

	"go.uber.org/zap"
)

// Canonical schemas the column normalizer maps each workbook onto.
var (
	employeeFields = []string{
		"EmployeeID", "EmployeeName", "FirstName", "LastName", "Email", "Phone",
	}
	propertyFields = []string{
		"PropertyID", "Property", "Address", "City", "State", "Zip",
		"Latitude", "Longitude", "Units", "Region", "Website", "Phone",
		"RegionalManager", "RegionalManagerEmail", "RegionalManagerPhone",
		"RegionalMaintenanceSupervisor", "RegionalMaintenanceEmail", "RegionalMaintenancePhone",
	}
	positionFields = []string{
		"PropertyID", "Property", "EmployeeID",
		"EmployeeFirstName", "EmployeeLastName", "JobTitle", "IsVacant",
	}
)

// prepareEmployees indexes employee records by canonical employee id.
// Rows without an id are dropped silently; a display name missing from
// the source is composed from first/last.
func (s *DataStore) prepareEmployees(t table.Table) map[string]domain.Employee {
	lookup := make(map[string]domain.Employee, len(t.Rows))
	for _, row := range t.Rows {
		employeeID := table.String(row.Get("EmployeeID"))
		if employeeID == "" {
			continue
		}
		first := row.Get("FirstName")
		last := row.Get("LastName")
		name := row.Get("EmployeeName")
		if name == nil {
			name = composeName(first, last)
		}
		lookup[match.Canonical(employeeID)] = domain.Employee{
			EmployeeID: employeeID,
			Name:       name,
			FirstName:  first,
			LastName:   last,
			Email:      row.Get("Email"),
			Phone:      row.Get("Phone"),
		}
	}
	return lookup
}

// prepareProperties builds the property records, the canonical load
// order, the name index and the region set. Rows without a name are
// skipped and counted. Returns the skipped-row count.
func (s *DataStore) prepareProperties(next *snapshot, t table.Table) int {
	next.properties = make(map[string]*domain.Property, len(t.Rows))
	next.nameToID = make(map[string]string, len(t.Rows))
	next.regions = make(map[string]struct{})
	skipped := 0

	for _, row := range t.Rows {
		name := row.Get("Property")
		if name == nil {
			skipped++
			continue
		}
		propertyID := table.String(row.Get("PropertyID"))
		if propertyID == "" {
			propertyID = match.PropertyID(*name)
		}

		latitude := table.Float(row.Get("Latitude"))
		longitude := table.Float(row.Get("Longitude"))
		address := row.Get("Address")
		city := row.Get("City")
		state := row.Get("State")
		zip := table.PostalCode(row.Get("Zip"))
		if latitude == nil && longitude == nil {
			latitude, longitude = s.maybeGeocode(*name, address, city, state, zip)
		}

		record := &domain.Property{
			PropertyID:     propertyID,
			Name:           *name,
			Address:        address,
			City:           city,
			State:          state,
			Zip:            zip,
			Latitude:       latitude,
			Longitude:      longitude,
			HasCoordinates: latitude != nil && longitude != nil,
			Units:          table.Int(row.Get("Units")),
			Region:         row.Get("Region"),
			Website:        row.Get("Website"),
			Phone:          row.Get("Phone"),
			MarkerColor:    "green",
			VacancyLabel:   "Fully staffed",
			RegionalManager: assembleStaff(
				row.Get("RegionalManager"), "Regional Manager",
				row.Get("RegionalManagerEmail"), row.Get("RegionalManagerPhone"),
			),
			RegionalMaintenance: assembleStaff(
				row.Get("RegionalMaintenanceSupervisor"), "Regional Maintenance Supervisor",
				row.Get("RegionalMaintenanceEmail"), row.Get("RegionalMaintenancePhone"),
			),
		}

		if _, exists := next.properties[propertyID]; !exists {
			next.order = append(next.order, propertyID)
		}
		next.properties[propertyID] = record
		next.nameToID[match.Canonical(*name)] = propertyID
		if record.Region != nil {
			next.regions[*record.Region] = struct{}{}
		}
	}
	return skipped
}

// preparePositions joins each position row to a property (by id, then
// by canonical name) and to an employee (by id). Rows resolving to no
// known property are skipped and counted; they never create a
// property. Returns the skipped-row count.
func (s *DataStore) preparePositions(next *snapshot, t table.Table) int {
	next.positions = make(map[string][]domain.Position)
	treatMissingVacant := s.cfg.Flags.TreatMissingPositionsAsVacant
	skipped := 0

	for _, row := range t.Rows {
		propertyID := table.String(row.Get("PropertyID"))
		if propertyID != "" {
			if _, known := next.properties[propertyID]; !known {
				propertyID = ""
			}
		}
		if propertyID == "" {
			if name := row.Get("Property"); name != nil {
				propertyID = next.nameToID[match.Canonical(*name)]
			}
		}
		if propertyID == "" {
			skipped++
			continue
		}

		employeeID := table.String(row.Get("EmployeeID"))
		fallbackName := composeName(row.Get("EmployeeFirstName"), row.Get("EmployeeLastName"))
		jobTitle := row.Get("JobTitle")

		isVacant := false
		if flag := table.Bool(row.Get("IsVacant")); flag != nil {
			isVacant = *flag
		} else if treatMissingVacant && employeeID == "" && fallbackName == nil {
			// Missing assignments count as open requisitions, except
			// key roles, which stay "unassigned" until explicitly
			// marked vacant.
			isKeyRole := match.TitleIs(table.String(jobTitle), match.RolePropertyManager) ||
				match.TitleIs(table.String(jobTitle), match.RoleMaintenanceSupervisor)
			isVacant = !isKeyRole
		}

		pos := domain.Position{
			PropertyID:   propertyID,
			PropertyName: next.properties[propertyID].Name,
			JobTitle:     jobTitle,
			IsVacant:     isVacant,
		}
		if employee, ok := next.employees[match.Canonical(employeeID)]; ok && employeeID != "" {
			id := employee.EmployeeID
			pos.EmployeeID = &id
			pos.EmployeeName = employee.Name
			pos.Email = employee.Email
			pos.Phone = employee.Phone
		} else {
			if employeeID != "" {
				pos.EmployeeID = &employeeID
			}
			if !isVacant {
				pos.EmployeeName = fallbackName
			}
		}
		pos.IsUnassigned = !pos.IsVacant &&
			table.String(pos.EmployeeID) == "" &&
			table.String(pos.EmployeeName) == ""

		next.positions[propertyID] = append(next.positions[propertyID], pos)
	}

	for _, list := range next.positions {
		sortPositions(list)
	}
	return skipped
}

// sortPositions orders a property's assignments filled-before-vacant,
// then by job title, then by display name, all case-insensitive. The
// ordering is what listings and the search corpus see.
func sortPositions(list []domain.Position) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsVacant != list[j].IsVacant {
			return !list[i].IsVacant
		}
		ti := strings.ToLower(table.String(list[i].JobTitle))
		tj := strings.ToLower(table.String(list[j].JobTitle))
		if ti != tj {
			return ti < tj
		}
		return strings.ToLower(table.String(list[i].EmployeeName)) <
			strings.ToLower(table.String(list[j].EmployeeName))
	})
}

// maybeGeocode asks the geocoder for coordinates when a row has none
// but does have address data. Failures degrade to absent coordinates.
func (s *DataStore) maybeGeocode(name string, address, city, state, zip *string) (*float64, *float64) {
	if s.geo == nil || !s.cfg.Geocode.Enabled {
		return nil, nil
	}
	parts := make([]string, 0, 4)
	for _, p := range []*string{address, city, state, zip} {
		if p != nil {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return nil, nil
	}
	lat, lon, err := s.geo.Geocode(strings.Join(parts, ", "))
	if err != nil {
		s.logger.Debug("geocode lookup failed", zap.String("property", name), zap.Error(err))
		return nil, nil
	}
	return &lat, &lon
}

func composeName(first, last *string) *string {
	parts := make([]string, 0, 2)
	if first != nil {
		parts = append(parts, *first)
	}
	if last != nil {
		parts = append(parts, *last)
	}
	if len(parts) == 0 {
		return nil
	}
	name := strings.Join(parts, " ")
	return &name
}

func assembleStaff(name *string, defaultTitle string, email, phone *string) *domain.StaffRecord {
	if name == nil {
		return nil
	}
	title := defaultTitle
	return &domain.StaffRecord{
		Name:     *name,
		JobTitle: &title,
		Email:    email,
		Phone:    phone,
	}
}
