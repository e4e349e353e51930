package pos

import (
	"strings"

	"github.com/stockmatch/stockmatch/internal/matcher"
	"github.com/stockmatch/stockmatch/pkg/inventory"
)

// thirdPartyBrands are other producers' brands carried by the stores.
var thirdPartyBrands = []string{
	"bs trees", "bstrees", "budard", "casco", "crooked jaw",
	"dabilitated", "dialed in", "ekko", "fish meadow", "fraktal",
	"harbor", "hilltop", "iron lung", "laughing lobster", "leaf labs",
	"lookah", "lost mary", "maine concentrates", "medible", "mojo",
	"new horizons", "northern terps", "peace of maine", "pot & pan",
	"puffco", "recovery", "refine", "secret stash", "sireel",
	"terra horta", "fresh canna", "brick house", "cadillac pre",
}

// Rules decide which POS lines are house production.
type Rules struct {
	// Include lists substrings; the category must contain one of them.
	Include []string `yaml:"include" mapstructure:"include"`
	// Skip lists categories dropped outright (exact, case-insensitive).
	Skip []string `yaml:"skip" mapstructure:"skip"`
	// ThirdParty lists brand substrings matched against name and supplier.
	ThirdParty []string `yaml:"third_party" mapstructure:"third_party"`
}

// APIRules are the rules for live POS API inventory, which reports broad
// categories such as "Concentrate".
func APIRules() Rules {
	return Rules{
		Include: []string{
			"flower", "concentrate", "pre-roll", "preroll", "pre roll",
			"cartridge", "cart", "vape", "edible", "tincture", "topical",
		},
		Skip: []string{
			"accessory", "accessories", "glass", "apparel", "battery",
			"merchandise", "merch", "gear", "misc", "other",
		},
		ThirdParty: append([]string(nil), thirdPartyBrands...),
	}
}

// CSVRules are the rules for the CSV export, which reports fine-grained
// product types such as "Badder House (Baller)".
func CSVRules() Rules {
	return Rules{
		Include: []string{
			"badder", "badder house", "badder house (baller)", "badder (baller)",
			"shatter", "sugar", "live resin", "resin",
			"flower", "cart",
			"pre roll", "pre roll 2", "pre roll pack", "pre roll infused",
			"rosin", "hash rosin", "diamonds",
			"baller jar", "concentrate",
		},
		Skip: []string{
			"misc.", "glass", "apparel", "vape", "battery", "nicotine",
			"gift card", "e rig", "edible",
		},
		ThirdParty: append([]string(nil), thirdPartyBrands...),
	}
}

// Filter is a compiled Rules.
type Filter struct {
	include    *matcher.MultiMatcher
	skip       map[string]struct{}
	thirdParty *matcher.MultiMatcher
}

// NewFilter compiles rules.
func NewFilter(rules Rules) *Filter {
	f := &Filter{
		include:    matcher.Keywords(rules.Include...),
		skip:       make(map[string]struct{}, len(rules.Skip)),
		thirdParty: matcher.Keywords(rules.ThirdParty...),
	}
	for _, s := range rules.Skip {
		f.skip[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return f
}

// Keep reports whether a line is house production. supplier may be empty.
func (f *Filter) Keep(category, name, supplier string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if _, skip := f.skip[category]; skip {
		return false
	}
	if !f.include.Match(category) {
		return false
	}
	return !f.thirdParty.MatchAny(name, supplier)
}

// Products returns the house-production products, preserving order.
func (f *Filter) Products(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Keep(p.Category, p.Name, p.SupplierName) {
			out = append(out, p)
		}
	}
	return out
}

// Records returns the house-production records, preserving order.
func (f *Filter) Records(records []inventory.POSProduct) []inventory.POSProduct {
	out := make([]inventory.POSProduct, 0, len(records))
	for _, r := range records {
		if f.Keep(r.Type, r.Name, "") {
			out = append(out, r)
		}
	}
	return out
}
