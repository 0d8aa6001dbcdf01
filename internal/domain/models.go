// Package domain defines the reconciled entities served by the data
// store. Optional source fields are pointers; derived fields are plain
// values recomputed on every reload.
package domain

// Employee is one person record from the employee table, keyed by its
// canonical employee id.
type Employee struct {
	EmployeeID string  `json:"employeeId"`
	Name       *string `json:"employeeName"`
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
}

// StaffRecord is a named staff sub-entry attached to a property, either
// declared directly on the property row or promoted from a matching
// position.
type StaffRecord struct {
	EmployeeID *string `json:"employeeId"`
	Name       string  `json:"employeeName"`
	JobTitle   *string `json:"jobTitle"`
	IsVacant   bool    `json:"isVacant"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
}

// Property is one location record plus the staffing state derived from
// its positions. Derived fields (HasVacancy through Details) are owned
// by the classifier and stay consistent with the position list of the
// same snapshot.
type Property struct {
	PropertyID     string   `json:"propertyId"`
	Name           string   `json:"property"`
	Address        *string  `json:"address"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	Zip            *string  `json:"zip"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	HasCoordinates bool     `json:"hasCoordinates"`
	Units          *int     `json:"units"`
	Region         *string  `json:"region"`
	Website        *string  `json:"website"`
	Phone          *string  `json:"phone"`

	HasVacancy      bool   `json:"hasVacancy"`
	VacantPositions int    `json:"vacantPositions"`
	TotalPositions  int    `json:"totalPositions"`
	MarkerColor     string `json:"markerColor"`
	VacancyLabel    string `json:"vacancyLabel"`
	HasUnassigned   bool   `json:"hasUnassignedKeyRoles"`
	HasNoInfo       bool   `json:"hasNoInfo"`
	Tooltip         string `json:"tooltip"`
	Details         string `json:"details"`

	RegionalManager     *StaffRecord `json:"regionalManager"`
	RegionalMaintenance *StaffRecord `json:"regionalMaintenanceSupervisor"`
}

// Position is one role assignment joined to its property and, when the
// id resolves, to an employee. IsUnassigned is distinct from IsVacant:
// no vacancy was declared but no identity is attached either.
type Position struct {
	PropertyID   string  `json:"propertyId"`
	PropertyName string  `json:"property"`
	EmployeeID   *string `json:"employeeId"`
	EmployeeName *string `json:"employeeName"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	JobTitle     *string `json:"jobTitle"`
	IsVacant     bool    `json:"isVacant"`
	IsUnassigned bool    `json:"isUnassigned"`
}

// EmployeeMatch is one staff hit from the search sub-search.
type EmployeeMatch struct {
	PropertyID   string  `json:"propertyId"`
	PropertyName string  `json:"property"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Region       *string `json:"region"`
	EmployeeID   *string `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	JobTitle     *string `json:"jobTitle"`
	IsVacant     bool    `json:"isVacant"`
	Score        float64 `json:"score"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

// PropertyStaff is the staff listing for one property.
type PropertyStaff struct {
	PropertyName string          `json:"property"`
	PropertyID   string          `json:"propertyId"`
	HasVacancy   bool            `json:"hasVacancy"`
	Employees    []PositionEntry `json:"employees"`
}

// PositionEntry is the external shape of one position in a staff
// listing.
type PositionEntry struct {
	EmployeeID   *string `json:"employeeId"`
	EmployeeName *string `json:"employeeName"`
	JobTitle     *string `json:"jobTitle"`
	IsVacant     bool    `json:"isVacant"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
}

// ReloadStats summarizes one reload cycle.
type ReloadStats struct {
	Employees         int `json:"employees"`
	Properties        int `json:"properties"`
	Positions         int `json:"positions"`
	SkippedProperties int `json:"skipped_properties"`
	SkippedPositions  int `json:"skipped_positions"`
}

// SearchFilters narrows a search result set after the text cascade.
type SearchFilters struct {
	Regions  []string
	Vacancy  string // "with", "without" or ""
	UnitsMin *int
	UnitsMax *int
}
