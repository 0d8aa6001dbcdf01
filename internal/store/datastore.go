// Package store implements the in-memory reconciliation engine:
// normalize the three source tables, join positions to properties and
// employees, classify staffing state, and serve search queries over
// the result.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ASCBird0277/ca-app/internal/config"
	"github.com/ASCBird0277/ca-app/internal/domain"
	"github.com/ASCBird0277/ca-app/internal/match"
	"github.com/ASCBird0277/ca-app/internal/table"

	"go.uber.org/zap"
)

// Search tuning. Values carried over from the production deployment.
const (
	scoreCutoff        = 60
	maxSearchResults   = 120
	maxEmployeeMatches = 40
)

// ErrNotFound is returned when a property identifier resolves to
// nothing, by id or by canonical name.
var ErrNotFound = errors.New("property not found")

// TableSource supplies the three raw tables on each reload.
type TableSource interface {
	Employees() (table.Table, error)
	Properties() (table.Table, error)
	Positions() (table.Table, error)
}

// Geocoder fills missing coordinates during property preparation.
// Implementations must treat failures as "no coordinates", never as a
// row error.
type Geocoder interface {
	Geocode(query string) (lat, lon float64, err error)
}

// snapshot is one fully-reconciled load cycle. Queries always read a
// whole snapshot; reload builds a new one and swaps it in under the
// store lock.
type snapshot struct {
	employees  map[string]domain.Employee
	properties map[string]*domain.Property
	order      []string
	nameToID   map[string]string
	positions  map[string][]domain.Position
	regions    map[string]struct{}
	corpus     map[string]string
	stats      domain.ReloadStats
}

// DataStore owns the current snapshot. One exclusive lock covers both
// reload and every read; load volumes are small enough that
// correctness wins over read throughput.
type DataStore struct {
	mu     sync.Mutex
	cfg    *config.Config
	source TableSource
	geo    Geocoder
	logger *zap.Logger
	snap   *snapshot
}

// NewDataStore wires a store. geo may be nil to disable geocoding. No
// data is loaded until Reload is called.
func NewDataStore(cfg *config.Config, source TableSource, geo Geocoder, logger *zap.Logger) *DataStore {
	return &DataStore{
		cfg:    cfg,
		source: source,
		geo:    geo,
		logger: logger,
	}
}

// Reload runs the whole normalize-reconcile-classify-index pipeline
// and swaps the snapshot on success. On failure the previous snapshot
// stays live.
func (s *DataStore) Reload() (domain.ReloadStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cfg.Mappings) == 0 {
		return domain.ReloadStats{}, fmt.Errorf("config is missing a 'mappings' section")
	}

	employeesRaw, err := s.source.Employees()
	if err != nil {
		return domain.ReloadStats{}, fmt.Errorf("load employees: %w", err)
	}
	propertiesRaw, err := s.source.Properties()
	if err != nil {
		return domain.ReloadStats{}, fmt.Errorf("load properties: %w", err)
	}
	positionsRaw, err := s.source.Positions()
	if err != nil {
		return domain.ReloadStats{}, fmt.Errorf("load positions: %w", err)
	}

	employeesNorm := table.Normalize(employeesRaw, s.cfg.Mappings["employees"], employeeFields)
	propertiesNorm := table.Normalize(propertiesRaw, s.cfg.Mappings["properties"], propertyFields)
	positionsNorm := table.Normalize(positionsRaw, s.cfg.Mappings["positions"], positionFields)

	next := &snapshot{}
	next.employees = s.prepareEmployees(employeesNorm)
	skippedProperties := s.prepareProperties(next, propertiesNorm)
	skippedPositions := s.preparePositions(next, positionsNorm)
	s.finalizeProperties(next)
	s.buildSearchCorpus(next)

	next.stats = domain.ReloadStats{
		Employees:         len(next.employees),
		Properties:        len(next.properties),
		Positions:         countPositions(next.positions),
		SkippedProperties: skippedProperties,
		SkippedPositions:  skippedPositions,
	}
	s.snap = next

	s.logger.Info("reloaded source tables",
		zap.Int("properties", next.stats.Properties),
		zap.Int("employees", next.stats.Employees),
		zap.Int("positions", next.stats.Positions),
		zap.Int("skipped_properties", next.stats.SkippedProperties),
		zap.Int("skipped_positions", next.stats.SkippedPositions),
	)
	return next.stats, nil
}

// Properties returns full copies of every finalized property in
// canonical load order.
func (s *DataStore) Properties() []domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return []domain.Property{}
	}
	out := make([]domain.Property, 0, len(s.snap.order))
	for _, id := range s.snap.order {
		out = append(out, copyProperty(s.snap.properties[id]))
	}
	return out
}

// Regions returns the sorted distinct region labels.
func (s *DataStore) Regions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return []string{}
	}
	out := make([]string, 0, len(s.snap.regions))
	for region := range s.snap.regions {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}

// Stats returns the counters from the most recent reload.
func (s *DataStore) Stats() domain.ReloadStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return domain.ReloadStats{}
	}
	return s.snap.stats
}

// EmployeesForProperty resolves a property by id or canonical name and
// returns its staff listing.
func (s *DataStore) EmployeesForProperty(identifier string) (domain.PropertyStaff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return domain.PropertyStaff{}, ErrNotFound
	}
	propertyID := s.snap.resolveIdentifier(identifier)
	if propertyID == "" {
		return domain.PropertyStaff{}, ErrNotFound
	}
	record, ok := s.snap.properties[propertyID]
	if !ok {
		return domain.PropertyStaff{}, ErrNotFound
	}
	listing := domain.PropertyStaff{
		PropertyName: record.Name,
		PropertyID:   propertyID,
		HasVacancy:   record.HasVacancy,
		Employees:    make([]domain.PositionEntry, 0, len(s.snap.positions[propertyID])),
	}
	for _, pos := range s.snap.positions[propertyID] {
		listing.Employees = append(listing.Employees, domain.PositionEntry{
			EmployeeID:   pos.EmployeeID,
			EmployeeName: pos.EmployeeName,
			JobTitle:     pos.JobTitle,
			IsVacant:     pos.IsVacant,
			Email:        pos.Email,
			Phone:        pos.Phone,
		})
	}
	return listing, nil
}

// resolveIdentifier tries the canonical id space first, then the
// canonical name index.
func (sn *snapshot) resolveIdentifier(identifier string) string {
	if identifier == "" {
		return ""
	}
	key := match.Canonical(identifier)
	for _, id := range sn.order {
		if match.Canonical(id) == key {
			return id
		}
	}
	return sn.nameToID[key]
}

func copyProperty(p *domain.Property) domain.Property {
	out := *p
	if p.RegionalManager != nil {
		staff := *p.RegionalManager
		out.RegionalManager = &staff
	}
	if p.RegionalMaintenance != nil {
		staff := *p.RegionalMaintenance
		out.RegionalMaintenance = &staff
	}
	return out
}

func countPositions(byProperty map[string][]domain.Position) int {
	total := 0
	for _, list := range byProperty {
		total += len(list)
	}
	return total
}
