package flowhub

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/stockmatch/stockmatch/internal/utils/ptr"
	"github.com/stockmatch/stockmatch/pkg/pos"
)

const defaultUnit = "units"

type cannabinoid struct {
	Name          string   `json:"name"`
	LowerRange    *float64 `json:"lowerRange"`
	UpperRange    *float64 `json:"upperRange"`
	UnitOfMeasure *string  `json:"unitOfMeasure"`
}

func (c cannabinoid) percent() (*float64, bool) {
	if c.UnitOfMeasure != nil && *c.UnitOfMeasure != "%" {
		return nil, false
	}
	if c.UpperRange != nil && *c.UpperRange != 0 {
		return c.UpperRange, true
	}
	return c.LowerRange, true
}

type inventoryItem struct {
	ProductID              json.RawMessage `json:"productId"`
	ProductName            string          `json:"productName"`
	ParentProductName      *string         `json:"parentProductName"`
	Category               string          `json:"category"`
	Quantity               float64         `json:"quantity"`
	InventoryUnitOfMeasure *string         `json:"inventoryUnitOfMeasure"`
	SKU                    string          `json:"sku"`
	StrainName             string          `json:"strainName"`
	SupplierName           string          `json:"supplierName"`
	ProductWeight          *float64        `json:"productWeight"`
	PreTaxPriceInPennies   *float64        `json:"preTaxPriceInPennies"`
	CannabinoidInformation []cannabinoid   `json:"cannabinoidInformation"`
}

// product converts a wire item. Items without a product name are dropped.
func (it inventoryItem) product() (pos.Product, bool) {
	if it.ProductName == "" {
		return pos.Product{}, false
	}

	p := pos.Product{
		ID:           rawID(it.ProductID),
		Name:         it.ProductName,
		ParentName:   it.ProductName,
		Category:     it.Category,
		Quantity:     it.Quantity,
		Unit:         defaultUnit,
		SKU:          it.SKU,
		StrainName:   it.StrainName,
		SupplierName: it.SupplierName,
		Weight:       it.ProductWeight,
	}
	if it.ParentProductName != nil && *it.ParentProductName != "" {
		p.ParentName = *it.ParentProductName
	}
	if it.InventoryUnitOfMeasure != nil && *it.InventoryUnitOfMeasure != "" {
		p.Unit = *it.InventoryUnitOfMeasure
	}
	if it.PreTaxPriceInPennies != nil {
		p.PriceCents = ptr.To(int64(*it.PreTaxPriceInPennies))
	}

	for _, c := range it.CannabinoidInformation {
		value, ok := c.percent()
		if !ok {
			continue
		}
		switch strings.ToLower(c.Name) {
		case "thc":
			p.THC = value
		case "cbd":
			p.CBD = value
		}
	}
	return p, true
}

// rawID accepts a string or numeric id.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if s, err := strconv.Unquote(string(raw)); err == nil {
		return s
	}
	return string(raw)
}
