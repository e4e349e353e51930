package match

import "github.com/stockmatch/stockmatch/pkg/errors"

type options struct {
	confirmed       map[string]string
	rejected        map[Pair]struct{}
	autoThreshold   int
	reviewThreshold int
}

func defaultOptions() *options {
	return &options{
		confirmed:       map[string]string{},
		rejected:        map[Pair]struct{}{},
		autoThreshold:   DefaultAutoThreshold,
		reviewThreshold: DefaultReviewThreshold,
	}
}

// Option configures an Engine.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithConfirmed adds learned matches: POS name to production name. Both
// sides are normalized on the way in.
func WithConfirmed(confirmed map[string]string) Option {
	return func(o *options) error {
		for posName, prodName := range confirmed {
			key := Normalize(posName)
			if key == "" {
				return errors.NewValidationError("confirmed", posName, "POS name normalizes to an empty string")
			}
			o.confirmed[key] = Normalize(prodName)
		}
		return nil
	}
}

// WithRejected adds pairs that must never be chosen as a match.
func WithRejected(pairs ...Pair) Option {
	return func(o *options) error {
		for _, p := range pairs {
			o.rejected[Pair{POS: Normalize(p.POS), Production: Normalize(p.Production)}] = struct{}{}
		}
		return nil
	}
}

// WithThresholds overrides the auto and review score thresholds.
func WithThresholds(auto, review int) Option {
	return func(o *options) error {
		if review < 0 || auto > 100 || review > auto {
			return errors.NewValidationError("thresholds", [2]int{auto, review},
				"require 0 <= review <= auto <= 100")
		}
		o.autoThreshold, o.reviewThreshold = auto, review
		return nil
	}
}
