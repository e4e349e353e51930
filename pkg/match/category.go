package match

import (
	"strings"

	"github.com/stockmatch/stockmatch/pkg/inventory"
)

// nameRules are checked against the lower-cased POS name in order. They run
// before the type table: a product named "Afghani Badder" that the POS files
// under Flower is still Badder.
var nameRules = []struct {
	category inventory.Category
	needles  []string
}{
	{inventory.Badder, []string{"badder", "baller"}},
	{inventory.Shatter, []string{"shatter"}},
	{inventory.Sugar, []string{"sugar"}},
	{inventory.LiveResin, []string{"live resin"}},
	{inventory.Rosin, []string{"rosin"}},
	{inventory.Diamonds, []string{"diamond"}},
	{inventory.Prerolls, []string{"preroll", "pre roll", "pre-roll"}},
	{inventory.FullSpecOil, []string{"cart", "full spec"}},
}

// posTypes maps POS product types to production categories.
var posTypes = map[string]inventory.Category{
	"badder house":          inventory.Badder,
	"badder house (baller)": inventory.Badder,
	"badder (baller)":       inventory.Badder,
	"badder":                inventory.Badder,
	"shatter":               inventory.Shatter,
	"sugar":                 inventory.Sugar,
	"live resin":            inventory.LiveResin,
	"resin":                 inventory.LiveResin,
	"cart":                  inventory.FullSpecOil,
	"pre roll":              inventory.Prerolls,
	"pre roll 2":            inventory.Prerolls,
	"pre roll pack":         inventory.Prerolls,
	"pre roll infused":      inventory.Prerolls,
	"flower":                inventory.Flower,
	"rosin":                 inventory.Rosin,
	"hash rosin":            inventory.Rosin,
	"diamonds":              inventory.Diamonds,
}

// Classify infers the production category of a POS item. Name keywords win
// over the POS type; anything unrecognised is Flower.
func Classify(posType, posName string) inventory.Category {
	name := strings.ToLower(posName)
	for _, rule := range nameRules {
		for _, needle := range rule.needles {
			if strings.Contains(name, needle) {
				return rule.category
			}
		}
	}

	if category, ok := CategoryForType(posType); ok {
		return category
	}
	return inventory.Flower
}

// CategoryForType looks up a POS type in the type table. The raw lower-cased
// type is tried first, then its normalized form.
func CategoryForType(posType string) (inventory.Category, bool) {
	key := strings.ToLower(strings.TrimSpace(posType))
	if key == "" {
		return "", false
	}
	if category, ok := posTypes[key]; ok {
		return category, true
	}
	category, ok := posTypes[Normalize(key)]
	return category, ok
}
