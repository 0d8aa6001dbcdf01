package match

import "strings"

// RoleCategory is a job-title classification used by the staffing
// classifier.
type RoleCategory string

const (
	// RolePropertyManager and RoleMaintenanceSupervisor are the two
	// canonical key roles whose staffing state drives the
	// "no information" override.
	RolePropertyManager       RoleCategory = "property_manager"
	RoleMaintenanceSupervisor RoleCategory = "maintenance_supervisor"
	RoleRegionalManager       RoleCategory = "regional_manager"
	RoleRegionalMaintenance   RoleCategory = "regional_maintenance"
)

// TitleRule classifies a folded job title by token containment: the
// title matches when every token of at least one AnyOf group is present
// and no NoneOf token is.
type TitleRule struct {
	Category RoleCategory
	AnyOf    [][]string
	NoneOf   []string
}

// TitleRules is the ordered, central rule table. Keeping the rules in
// one place keeps the classifier and the reconciler agreeing on what a
// key role is.
var TitleRules = []TitleRule{
	{
		Category: RolePropertyManager,
		AnyOf:    [][]string{{"property", "manager"}},
		NoneOf:   []string{"regional", "assistant"},
	},
	{
		Category: RoleMaintenanceSupervisor,
		AnyOf: [][]string{
			{"maintenance", "supervisor"},
			{"maintenance", "manager"},
			{"service", "manager"},
		},
		NoneOf: []string{"regional"},
	},
	{
		Category: RoleRegionalManager,
		AnyOf:    [][]string{{"regional", "manager"}},
		NoneOf:   []string{"maintenance"},
	},
	{
		Category: RoleRegionalMaintenance,
		AnyOf: [][]string{
			{"regional", "maintenance"},
			{"regional", "service"},
		},
	},
}

// Matches reports whether a folded title satisfies the rule.
func (r TitleRule) Matches(title string) bool {
	t := Fold(title)
	if t == "" {
		return false
	}
	for _, banned := range r.NoneOf {
		if strings.Contains(t, banned) {
			return false
		}
	}
	for _, group := range r.AnyOf {
		all := true
		for _, tok := range group {
			if !strings.Contains(t, tok) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// TitleIs reports whether a job title falls into the given category.
// Unknown titles match nothing; classification never fails.
func TitleIs(title string, category RoleCategory) bool {
	for _, rule := range TitleRules {
		if rule.Category == category {
			return rule.Matches(title)
		}
	}
	return false
}
