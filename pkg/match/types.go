package match

import (
	"github.com/stockmatch/stockmatch/internal/utils/ptr"
	"github.com/stockmatch/stockmatch/pkg/inventory"
)

// ProductionOnlyReason is attached to every production-only entry.
const ProductionOnlyReason = "Not in POS inventory"

// MatchResult is the outcome for one POS item. The production fields are set
// only when Confidence is Auto or Review.
type MatchResult struct {
	POSName            string              `json:"pos_name" yaml:"pos_name"`
	POSType            string              `json:"pos_type" yaml:"pos_type"`
	POSQuantity        float64             `json:"pos_quantity" yaml:"pos_quantity"`
	POSCategory        inventory.Category  `json:"pos_category" yaml:"pos_category"`
	ProductionName     *string             `json:"production_name" yaml:"production_name"`
	ProductionQuantity *float64            `json:"production_quantity" yaml:"production_quantity"`
	ProductionCategory *inventory.Category `json:"production_category" yaml:"production_category"`
	SimilarityScore    int                 `json:"similarity_score" yaml:"similarity_score"`
	Confidence         Confidence          `json:"confidence" yaml:"confidence"`
	Confirmed          bool                `json:"confirmed,omitempty" yaml:"confirmed,omitempty"`
}

// HasProduction reports whether a production item is attached.
func (r MatchResult) HasProduction() bool {
	return r.ProductionName != nil
}

func (r *MatchResult) attach(p inventory.ProductionProduct) {
	r.ProductionName = ptr.To(p.Name)
	r.ProductionQuantity = ptr.To(p.Quantity)
	r.ProductionCategory = ptr.To(p.Category)
}

// ProductionOnly is a production item no POS item claimed.
type ProductionOnly struct {
	ProductionName     string             `json:"production_name" yaml:"production_name"`
	ProductionQuantity float64            `json:"production_quantity" yaml:"production_quantity"`
	ProductionCategory inventory.Category `json:"production_category" yaml:"production_category"`
	Reason             string             `json:"reason" yaml:"reason"`
}

// Result groups match results by confidence.
type Result struct {
	AutoMatched    []MatchResult    `json:"auto_matched" yaml:"auto_matched"`
	NeedsReview    []MatchResult    `json:"needs_review" yaml:"needs_review"`
	Unmatched      []MatchResult    `json:"unmatched" yaml:"unmatched"`
	ProductionOnly []ProductionOnly `json:"production_only" yaml:"production_only"`
}

func newResult() Result {
	return Result{
		AutoMatched:    []MatchResult{},
		NeedsReview:    []MatchResult{},
		Unmatched:      []MatchResult{},
		ProductionOnly: []ProductionOnly{},
	}
}

// Counts summarises a Result.
type Counts struct {
	AutoMatched    int `json:"auto_matched" yaml:"auto_matched"`
	NeedsReview    int `json:"needs_review" yaml:"needs_review"`
	Unmatched      int `json:"unmatched" yaml:"unmatched"`
	ProductionOnly int `json:"production_only" yaml:"production_only"`
}

// Counts returns the size of each group.
func (r Result) Counts() Counts {
	return Counts{
		AutoMatched:    len(r.AutoMatched),
		NeedsReview:    len(r.NeedsReview),
		Unmatched:      len(r.Unmatched),
		ProductionOnly: len(r.ProductionOnly),
	}
}

// Pair is a (POS name, production name) pair, both normalized.
type Pair struct {
	POS        string `json:"pos" yaml:"pos"`
	Production string `json:"production" yaml:"production"`
}
