package sheets

import (
	"strings"

	"github.com/stockmatch/stockmatch/internal/matcher"
	"github.com/stockmatch/stockmatch/pkg/inventory"
)

// Units reported for parsed quantities.
const (
	UnitGrams = "grams"
	UnitUnits = "units"
)

var inventoryKeywords = matcher.Keywords(
	"shatter", "badder", "sugar", "live resin", "resin",
	"full spec", "oil", "cart", "preroll", "pre roll", "pre-roll",
	"flower", "rosin", "diamond", "concentrate", "wax",
)

var prerollKeywords = matcher.Keywords("preroll", "pre roll")

// tabCategories maps tab-name keywords to production categories, most
// specific first.
var tabCategories = []struct {
	keyword  string
	category inventory.Category
}{
	{"full spec", inventory.FullSpecOil},
	{"live resin", inventory.LiveResin},
	{"preroll", inventory.Prerolls},
	{"pre roll", inventory.Prerolls},
	{"pre-roll", inventory.Prerolls},
	{"shatter", inventory.Shatter},
	{"badder", inventory.Badder},
	{"sugar", inventory.Sugar},
	{"flower", inventory.Flower},
	{"rosin", inventory.Rosin},
	{"resin", inventory.LiveResin},
	{"diamond", inventory.Diamonds},
	{"cart", inventory.FullSpecOil},
	{"oil", inventory.FullSpecOil},
}

// TabInfo identifies a tab in a spreadsheet.
type TabInfo struct {
	Name string `json:"name" yaml:"name"`
	GID  int64  `json:"gid" yaml:"gid"`
}

// TabConfig is everything needed to parse one tab.
type TabConfig struct {
	TabInfo
	Format       Format `json:"format" yaml:"format"`
	SummaryLabel string `json:"summary_label,omitempty" yaml:"summary_label,omitempty"`
	Unit         string `json:"unit" yaml:"unit"`
	IsInventory  bool   `json:"is_inventory" yaml:"is_inventory"`
}

// NewTabConfig derives a TabConfig from a tab and its format detection.
func NewTabConfig(info TabInfo, d Detection) TabConfig {
	return TabConfig{
		TabInfo:      info,
		Format:       d.Format,
		SummaryLabel: d.SummaryLabel,
		Unit:         UnitForTab(info.Name),
		IsInventory:  IsInventoryTab(info.Name),
	}
}

// IsInventoryTab reports whether a tab name looks like product inventory.
func IsInventoryTab(name string) bool {
	return inventoryKeywords.Match(name)
}

// UnitForTab returns "units" for preroll tabs and "grams" otherwise.
func UnitForTab(name string) string {
	if prerollKeywords.Match(name) {
		return UnitUnits
	}
	return UnitGrams
}

// CategoryForTab maps a tab name onto the category its products belong to.
// Tabs with no recognised keyword keep their own name as the category.
func CategoryForTab(name string) inventory.Category {
	lower := strings.ToLower(name)
	for _, tc := range tabCategories {
		if strings.Contains(lower, tc.keyword) {
			return tc.category
		}
	}
	return inventory.Category(strings.TrimSpace(name))
}
