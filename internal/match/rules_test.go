package match_test

import (
	"testing"

	"github.com/ASCBird0277/ca-app/internal/match"

	"github.com/stretchr/testify/assert"
)

func TestTitleRules(t *testing.T) {
	cases := []struct {
		title    string
		category match.RoleCategory
		want     bool
	}{
		{"Property Manager", match.RolePropertyManager, true},
		{"Senior Property Manager", match.RolePropertyManager, true},
		{"Assistant Property Manager", match.RolePropertyManager, false},
		{"Regional Property Manager", match.RolePropertyManager, false},
		{"Leasing Agent", match.RolePropertyManager, false},

		{"Maintenance Supervisor", match.RoleMaintenanceSupervisor, true},
		{"Maintenance Manager", match.RoleMaintenanceSupervisor, true},
		{"Service Manager", match.RoleMaintenanceSupervisor, true},
		{"Regional Maintenance Supervisor", match.RoleMaintenanceSupervisor, false},
		{"Maintenance Technician", match.RoleMaintenanceSupervisor, false},

		{"Regional Manager", match.RoleRegionalManager, true},
		{"Regional Maintenance Manager", match.RoleRegionalManager, false},
		{"Regional Manager of Operations", match.RoleRegionalManager, true},

		{"Regional Maintenance Supervisor", match.RoleRegionalMaintenance, true},
		{"Regional Service Director", match.RoleRegionalMaintenance, true},
		{"Regional Manager", match.RoleRegionalMaintenance, false},

		{"", match.RolePropertyManager, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, match.TitleIs(tc.title, tc.category),
			"title %q category %s", tc.title, tc.category)
	}
}
