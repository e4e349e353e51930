package match

import (
	"fmt"
	"strings"
)

// Confidence is the reliability tier of a match.
type Confidence int

// Confidence tiers. The zero value is ConfidenceNone.
const (
	ConfidenceNone Confidence = iota
	ConfidenceReview
	ConfidenceAuto
)

// Default score thresholds.
const (
	DefaultAutoThreshold   = 90
	DefaultReviewThreshold = 70
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceAuto:
		return "auto"
	case ConfidenceReview:
		return "review"
	case ConfidenceNone:
		return "none"
	}
	return fmt.Sprintf("Confidence(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Confidence) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "auto":
		*c = ConfidenceAuto
	case "review":
		*c = ConfidenceReview
	case "none", "":
		*c = ConfidenceNone
	default:
		return fmt.Errorf("unknown confidence %q", text)
	}
	return nil
}

// tier maps a final score onto a confidence.
func tier(score, auto, review int) Confidence {
	switch {
	case score >= auto:
		return ConfidenceAuto
	case score >= review:
		return ConfidenceReview
	}
	return ConfidenceNone
}
