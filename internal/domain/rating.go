package domain

import "fmt"

// DefaultMidpoint splits each axis of the default 1-10 scale into low and high halves.
const DefaultMidpoint = 5

// Scale is a closed integer range used to score one rating axis.
type Scale struct {
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
	Label string `yaml:"label"`
}

// DefaultScale is the 1-10 scale used for both axes unless a template says otherwise.
var DefaultScale = Scale{Min: 1, Max: 10}

// Validate checks that the scale describes a non-empty range.
func (s Scale) Validate() error {
	if s.Min >= s.Max {
		return validationErr("scale", fmt.Sprintf("min (%d) must be less than max (%d)", s.Min, s.Max))
	}
	return nil
}

// Contains reports whether v lies within [Min, Max].
func (s Scale) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

// Covers reports whether every value of inner also lies within s.
func (s Scale) Covers(inner Scale) bool {
	return inner.Min >= s.Min && inner.Max <= s.Max
}

// Check returns an OutOfRangeError naming field when v is outside the scale.
func (s Scale) Check(field string, v int) error {
	if !s.Contains(v) {
		return &OutOfRangeError{Field: field, Value: float64(v), Min: float64(s.Min), Max: float64(s.Max)}
	}
	return nil
}

// Axis names one of the two rating dimensions.
type Axis string

const (
	AxisAcuity              Axis = "acuity"
	AxisStrategicImportance Axis = "strategic_importance"
)

// ParseAxis accepts the axis names plus the short forms used on the command line.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "acuity", "a":
		return AxisAcuity, nil
	case "strategic_importance", "strategic-importance", "strategic", "s":
		return AxisStrategicImportance, nil
	}
	return "", validationErr("axis", fmt.Sprintf("unknown axis %q (want acuity or strategic)", s))
}

// Quadrant is one of the four acuity x strategic-importance buckets.
type Quadrant string

const (
	HighAcuityHighStrategic Quadrant = "high_acuity_high_strategic"
	HighAcuityLowStrategic  Quadrant = "high_acuity_low_strategic"
	LowAcuityHighStrategic  Quadrant = "low_acuity_high_strategic"
	LowAcuityLowStrategic   Quadrant = "low_acuity_low_strategic"
)

// Quadrants lists every quadrant in display order.
var Quadrants = []Quadrant{
	HighAcuityHighStrategic,
	HighAcuityLowStrategic,
	LowAcuityHighStrategic,
	LowAcuityLowStrategic,
}

// Label returns a short human-readable name for the quadrant.
func (q Quadrant) Label() string {
	switch q {
	case HighAcuityHighStrategic:
		return "High acuity / High strategic"
	case HighAcuityLowStrategic:
		return "High acuity / Low strategic"
	case LowAcuityHighStrategic:
		return "Low acuity / High strategic"
	case LowAcuityLowStrategic:
		return "Low acuity / Low strategic"
	default:
		return string(q)
	}
}

// Classify buckets a pair of scores. A score equal to the midpoint counts as high.
func Classify(acuity, strategicImportance, midpoint int) Quadrant {
	highAcuity := acuity >= midpoint
	highStrategic := strategicImportance >= midpoint
	switch {
	case highAcuity && highStrategic:
		return HighAcuityHighStrategic
	case highAcuity:
		return HighAcuityLowStrategic
	case highStrategic:
		return LowAcuityHighStrategic
	default:
		return LowAcuityLowStrategic
	}
}

// SuggestFocal is the default focal-area rule: operationally urgent but not strategic.
func SuggestFocal(q Quadrant) bool {
	return q == HighAcuityLowStrategic
}

// RatingModel bundles the scales and midpoint used to score and classify problems.
type RatingModel struct {
	Acuity              Scale
	StrategicImportance Scale
	Midpoint            int
}

// DefaultRatingModel uses the 1-10 scale on both axes with midpoint 5.
func DefaultRatingModel() RatingModel {
	return RatingModel{Acuity: DefaultScale, StrategicImportance: DefaultScale, Midpoint: DefaultMidpoint}
}

// ScaleFor returns the scale of the given axis.
func (m RatingModel) ScaleFor(axis Axis) Scale {
	if axis == AxisStrategicImportance {
		return m.StrategicImportance
	}
	return m.Acuity
}

// CheckScores validates both scores against their scales.
func (m RatingModel) CheckScores(acuity, strategicImportance int) error {
	if err := m.Acuity.Check(string(AxisAcuity), acuity); err != nil {
		return err
	}
	return m.StrategicImportance.Check(string(AxisStrategicImportance), strategicImportance)
}

// Classify buckets a pair of scores using the model's midpoint.
func (m RatingModel) Classify(acuity, strategicImportance int) Quadrant {
	return Classify(acuity, strategicImportance, m.Midpoint)
}
