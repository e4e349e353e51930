// Package match reconciles point-of-sale inventory against production
// inventory by fuzzy product name.
//
// Names are normalized, each POS item is classified into a category, and the
// best-scoring production item in that category is chosen. Learned overrides
// force (confirmed) or forbid (rejected) specific pairs.
package match

import "github.com/stockmatch/stockmatch/pkg/inventory"

// Engine matches POS items to production items. Its override tables are
// fixed at construction and it keeps no state between calls.
type Engine struct {
	opts *options
}

// New creates an Engine.
func New(opts ...Option) (*Engine, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Engine{opts: o}, nil
}

// candidate is a production item with its normalized name.
type candidate struct {
	product inventory.ProductionProduct
	norm    string
}

// catalog indexes production items by category, preserving input order.
type catalog struct {
	all        []candidate
	byCategory map[inventory.Category][]candidate
}

func newCatalog(production []inventory.ProductionProduct) *catalog {
	c := &catalog{
		all:        make([]candidate, 0, len(production)),
		byCategory: make(map[inventory.Category][]candidate),
	}
	for _, p := range production {
		cand := candidate{product: p, norm: Normalize(p.Name)}
		c.all = append(c.all, cand)
		c.byCategory[p.Category] = append(c.byCategory[p.Category], cand)
	}
	return c
}

// MatchProduct finds the best production item for a single POS item.
func (e *Engine) MatchProduct(pos inventory.POSProduct, production []inventory.ProductionProduct) MatchResult {
	return e.match(pos, newCatalog(production))
}

func (e *Engine) match(pos inventory.POSProduct, cat *catalog) MatchResult {
	posNorm := Normalize(pos.Name)
	category := Classify(pos.Type, pos.Name)

	result := MatchResult{
		POSName:     pos.Name,
		POSType:     pos.Type,
		POSQuantity: pos.Quantity,
		POSCategory: category,
	}

	if target, ok := e.opts.confirmed[posNorm]; ok {
		for _, cand := range cat.all {
			if cand.norm == target {
				result.attach(cand.product)
				result.SimilarityScore = 100
				result.Confidence = ConfidenceAuto
				result.Confirmed = true
				return result
			}
		}
	}

	candidates := cat.all
	if category != "" {
		candidates = cat.byCategory[category]
	}

	var best *candidate
	bestScore := 0
	for i := range candidates {
		cand := &candidates[i]
		if _, rejected := e.opts.rejected[Pair{POS: posNorm, Production: cand.norm}]; rejected {
			continue
		}

		score := Score(posNorm, cand.norm)
		if cand.product.Category == category {
			score = min(100, score+CategoryBonus)
		}
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	result.SimilarityScore = bestScore
	result.Confidence = tier(bestScore, e.opts.autoThreshold, e.opts.reviewThreshold)
	if best != nil && result.Confidence != ConfidenceNone {
		result.attach(best.product)
	}
	return result
}

type productionKey struct {
	name     string
	category inventory.Category
}

// MatchInventory matches every POS item, in order, and reports the
// production items that no POS item accounts for.
//
// Each production (name, category) takes at most one auto match per call:
// the first POS item to reach it claims it, and a later auto match on the
// same item is reported as needs-review with its score unchanged.
//
// A production item is production-only when it has positive quantity, no
// auto match claimed its (name, category), and no needs-review match names
// it. Production items that were merely the best low-scoring candidate of an
// unmatched POS item still count as production-only.
func (e *Engine) MatchInventory(pos []inventory.POSProduct, production []inventory.ProductionProduct) Result {
	cat := newCatalog(production)
	result := newResult()
	claimed := make(map[productionKey]struct{})
	inReview := make(map[string]struct{})

	for _, p := range pos {
		r := e.match(p, cat)
		if r.Confidence == ConfidenceAuto && r.HasProduction() {
			key := productionKey{*r.ProductionName, *r.ProductionCategory}
			if _, taken := claimed[key]; taken {
				r.Confidence = ConfidenceReview
			} else {
				claimed[key] = struct{}{}
			}
		}

		switch r.Confidence {
		case ConfidenceAuto:
			result.AutoMatched = append(result.AutoMatched, r)
		case ConfidenceReview:
			result.NeedsReview = append(result.NeedsReview, r)
			if r.HasProduction() {
				inReview[*r.ProductionName] = struct{}{}
			}
		default:
			result.Unmatched = append(result.Unmatched, r)
		}
	}

	for _, p := range production {
		if _, ok := claimed[productionKey{p.Name, p.Category}]; ok {
			continue
		}
		if _, ok := inReview[p.Name]; ok {
			continue
		}
		if p.Quantity <= 0 {
			continue
		}
		result.ProductionOnly = append(result.ProductionOnly, ProductionOnly{
			ProductionName:     p.Name,
			ProductionQuantity: p.Quantity,
			ProductionCategory: p.Category,
			Reason:             ProductionOnlyReason,
		})
	}
	return result
}
